package logging

import (
	"time"
)

func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Component names the subsystem writing the entry.
func Component(name string) Field {
	return String("component", name)
}

// Stage names a step of the ring pipeline (rings, linkages, pucker).
func Stage(name string) Field {
	return String("stage", name)
}

func AnalysisID(id string) Field {
	return String("analysis_id", id)
}

// RingID is the index of a ring within an analysis result.
func RingID(i int) Field {
	return Int("ring", i)
}

func Molecule(name string) Field {
	return String("molecule", name)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

func Path(p string) Field {
	return String("path", p)
}
