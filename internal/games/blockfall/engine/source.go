package engine

import "math/rand"

// PieceSource supplies the type of each newly generated piece.
type PieceSource interface {
	Next() PieceType
}

// RandomSource picks each piece uniformly and independently.
type RandomSource struct {
	rng *rand.Rand
}

// NewRandomSource returns a uniform source seeded with seed.
func NewRandomSource(seed int64) *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewSource(seed))}
}

// Next returns a uniformly chosen piece type.
func (s *RandomSource) Next() PieceType {
	return PieceTypes[s.rng.Intn(len(PieceTypes))]
}

// SequenceSource replays a fixed list of piece types, wrapping around.
// Useful for scripted games and tests.
type SequenceSource struct {
	types []PieceType
	pos   int
}

// NewSequenceSource returns a source that cycles through types.
// An empty list yields PieceO forever.
func NewSequenceSource(types ...PieceType) *SequenceSource {
	return &SequenceSource{types: types}
}

// Next returns the following type in the sequence.
func (s *SequenceSource) Next() PieceType {
	if len(s.types) == 0 {
		return PieceO
	}
	t := s.types[s.pos%len(s.types)]
	s.pos++
	return t
}
