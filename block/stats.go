package block

// Stats counts the block reads and writes performed against one or more
// stores during a measured run.
//
// The counters only ever increase between resets; Reset zeroes both so
// successive operations can be measured independently. Stats is purely an
// observability aid and never affects store behavior.
//
// Stats is not safe for concurrent use; the access pattern of a squaring run
// is strictly sequential, matching the stores themselves.
type Stats struct {
	reads  uint64
	writes uint64
}

// NewStats creates a zeroed Stats collector.
func NewStats() *Stats {
	return &Stats{}
}

// Reads returns the number of block reads counted since the last reset.
func (s *Stats) Reads() uint64 {
	return s.reads
}

// Writes returns the number of block writes counted since the last reset.
func (s *Stats) Writes() uint64 {
	return s.writes
}

// Reset zeroes both counters.
func (s *Stats) Reset() {
	s.reads = 0
	s.writes = 0
}

func (s *Stats) countRead() {
	s.reads++
}

func (s *Stats) countWrite() {
	s.writes++
}
