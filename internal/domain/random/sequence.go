package random

// Sequence replays fixed draws, cycling when exhausted. Ints are reduced
// modulo n so one sequence serves any bound. Useful when a test needs to
// force a particular branch.
type Sequence struct {
	Ints   []int
	Floats []float64

	i, f int
}

// NewSequence builds a Sequence from fixed draws.
func NewSequence(ints []int, floats []float64) *Sequence {
	return &Sequence{Ints: ints, Floats: floats}
}

// Intn returns the next int modulo n, or 0 if no ints were given.
func (s *Sequence) Intn(n int) int {
	if len(s.Ints) == 0 || n <= 0 {
		return 0
	}
	v := s.Ints[s.i%len(s.Ints)]
	s.i++
	if v < 0 {
		v = -v
	}
	return v % n
}

// Float64 returns the next float, or 0 if no floats were given.
func (s *Sequence) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[s.f%len(s.Floats)]
	s.f++
	return v
}
