package game

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// RandomSource abstracts randomness so every outcome in the rule evaluators
// can be replayed under a seed in tests.
type RandomSource interface {
	Float64() float64 // [0, 1)
	IntN(n int) int   // [0, n)
}

// cryptoRNG is the production source.
type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return float64(u) / (1 << 53)
}

func (c cryptoRNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return int(c.Float64() * float64(n))
}

func DefaultRNG() RandomSource { return cryptoRNG{} }

// seededRNG is replayable, for tests and balance simulations.
type seededRNG struct{ r *rand.Rand }

func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewSource(int64(seed)))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }
func (s *seededRNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.Intn(n)
}
