package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// New creates a logger writing to w in the given format.
func New(w io.Writer, level Level, format Format) Logger {
	if format == TextFormat {
		return NewTextLogger(w, level)
	}
	return NewJSONLogger(w, level)
}

// NewJSONLogger creates a new JSON logger
func NewJSONLogger(writer io.Writer, level Level) *JSONLogger {
	return &JSONLogger{out: &sink{writer: writer, level: level}}
}

// NewTextLogger creates a new key=value logger
func NewTextLogger(writer io.Writer, level Level) *TextLogger {
	return &TextLogger{out: &sink{writer: writer, level: level}}
}

func (s *sink) enabled(level Level) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return level >= s.level
}

func (s *sink) write(line []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.writer.Write(line)
}

func (s *sink) setLevel(level Level) {
	s.mu.Lock()
	s.level = level
	s.mu.Unlock()
}

func (s *sink) getLevel() Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// merge flattens preset and call-site fields; later keys win.
func merge(preset, fields []Field) map[string]any {
	if len(preset)+len(fields) == 0 {
		return nil
	}
	m := make(map[string]any, len(preset)+len(fields))
	for _, f := range preset {
		m[f.Key] = f.Value
	}
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	return m
}

func appendFields(preset, fields []Field) []Field {
	out := make([]Field, 0, len(preset)+len(fields))
	out = append(out, preset...)
	return append(out, fields...)
}

func (l *JSONLogger) log(level Level, msg string, fields []Field) {
	if !l.out.enabled(level) {
		return
	}
	entry := LogEntry{
		Time:    time.Now().Format(time.RFC3339Nano),
		Level:   level.String(),
		Message: msg,
		Fields:  merge(l.fields, fields),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		l.out.write([]byte(fmt.Sprintf("[ERROR] Failed to marshal log entry: %v\n", err)))
		return
	}
	l.out.write(append(data, '\n'))
}

func (l *JSONLogger) Debug(msg string, fields ...Field) { l.log(DebugLevel, msg, fields) }
func (l *JSONLogger) Info(msg string, fields ...Field)  { l.log(InfoLevel, msg, fields) }
func (l *JSONLogger) Warn(msg string, fields ...Field)  { l.log(WarnLevel, msg, fields) }
func (l *JSONLogger) Error(msg string, fields ...Field) { l.log(ErrorLevel, msg, fields) }

// With creates a child logger sharing the parent's writer and level
func (l *JSONLogger) With(fields ...Field) Logger {
	return &JSONLogger{out: l.out, fields: appendFields(l.fields, fields)}
}

func (l *JSONLogger) SetLevel(level Level) { l.out.setLevel(level) }
func (l *JSONLogger) GetLevel() Level      { return l.out.getLevel() }

func (l *TextLogger) log(level Level, msg string, fields []Field) {
	if !l.out.enabled(level) {
		return
	}
	m := merge(l.fields, fields)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(time.Now().Format("15:04:05.000"))
	b.WriteByte(' ')
	fmt.Fprintf(&b, "%-5s %s", level.String(), msg)
	for _, k := range keys {
		v := fmt.Sprint(m[k])
		if strings.ContainsAny(v, " \t\"=") {
			v = fmt.Sprintf("%q", v)
		}
		fmt.Fprintf(&b, " %s=%s", k, v)
	}
	b.WriteByte('\n')
	l.out.write([]byte(b.String()))
}

func (l *TextLogger) Debug(msg string, fields ...Field) { l.log(DebugLevel, msg, fields) }
func (l *TextLogger) Info(msg string, fields ...Field)  { l.log(InfoLevel, msg, fields) }
func (l *TextLogger) Warn(msg string, fields ...Field)  { l.log(WarnLevel, msg, fields) }
func (l *TextLogger) Error(msg string, fields ...Field) { l.log(ErrorLevel, msg, fields) }

// With creates a child logger sharing the parent's writer and level
func (l *TextLogger) With(fields ...Field) Logger {
	return &TextLogger{out: l.out, fields: appendFields(l.fields, fields)}
}

func (l *TextLogger) SetLevel(level Level) { l.out.setLevel(level) }
func (l *TextLogger) GetLevel() Level      { return l.out.getLevel() }

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger
	once          sync.Once
)

// DefaultLogger returns the process-wide logger. It writes to stderr and
// honours PAPERCHAIN_LOG_LEVEL and PAPERCHAIN_LOG_FORMAT.
func DefaultLogger() Logger {
	once.Do(func() {
		level := ParseLevel(os.Getenv("PAPERCHAIN_LOG_LEVEL"))
		format, err := ParseFormat(os.Getenv("PAPERCHAIN_LOG_FORMAT"))
		if err != nil {
			format = JSONFormat
		}
		defaultMu.Lock()
		if defaultLogger == nil {
			defaultLogger = New(os.Stderr, level, format)
		}
		defaultMu.Unlock()
	})
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefaultLogger replaces the process-wide logger
func SetDefaultLogger(logger Logger) {
	once.Do(func() {})
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
}

// StartTimer begins timing an operation
func StartTimer(logger Logger, msg string, fields ...Field) *TimedOperation {
	return &TimedOperation{
		logger: logger,
		msg:    msg,
		start:  time.Now(),
		fields: fields,
	}
}

// End logs the operation at debug level and returns its duration.
func (t *TimedOperation) End(fields ...Field) time.Duration {
	elapsed := time.Since(t.start)
	t.logger.Debug(t.msg, append(appendFields(t.fields, fields), Latency(elapsed))...)
	return elapsed
}

// EndError logs the operation as an error with its duration
func (t *TimedOperation) EndError(err error) time.Duration {
	elapsed := time.Since(t.start)
	t.logger.Error(t.msg, append(appendFields(t.fields, nil), Latency(elapsed), Error(err))...)
	return elapsed
}
