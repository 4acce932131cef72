package rings

// Progress is reported at every yield point of a long search.
type Progress struct {
	// Stage names the search that is running.
	Stage string
	// Done and Total count units of work (back edges, rings).
	Done, Total int
	// Found is the number of results collected so far.
	Found int
}

// Checkpoint is called at each yield point. Returning false stops the
// search, which then returns what it has found so far.
type Checkpoint func(Progress) bool

// Proceed calls the checkpoint; a nil Checkpoint always proceeds.
func (c Checkpoint) Proceed(p Progress) bool {
	if c == nil {
		return true
	}
	return c(p)
}

// Stage names used in Progress.
const (
	StageRings    = "rings"
	StageLinkages = "linkages"
	StagePucker   = "pucker"
)
