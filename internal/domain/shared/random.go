package shared

import (
	"math/rand/v2"
	"time"
)

// RandomSource is the only source of nondeterminism in the economy.
// Mining yields and generation-time pool sizes are drawn from it.
type RandomSource interface {
	// Float64 returns a value in [0.0, 1.0)
	Float64() float64
	// IntN returns a value in [0, n); n must be > 0
	IntN(n int) int
}

// NewSeededRandom returns a deterministic source. A zero seed is replaced
// with a time-derived one.
func NewSeededRandom(seed uint64) RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Uniform returns a value in [low, high) drawn from rng
func Uniform(rng RandomSource, low, high float64) float64 {
	return low + (high-low)*rng.Float64()
}

// RandIntInclusive returns a value in [low, high] drawn from rng
func RandIntInclusive(rng RandomSource, low, high int) int {
	if high <= low {
		return low
	}
	return low + rng.IntN(high-low+1)
}

// MockRandom replays fixed values for testing. Floats and ints cycle
// independently; an empty sequence yields 0.
type MockRandom struct {
	Floats []float64
	Ints   []int

	floatPos int
	intPos   int
}

// NewMockRandom creates a MockRandom that always returns f from Float64
func NewMockRandom(f float64) *MockRandom {
	return &MockRandom{Floats: []float64{f}}
}

func (m *MockRandom) Float64() float64 {
	if len(m.Floats) == 0 {
		return 0
	}
	v := m.Floats[m.floatPos%len(m.Floats)]
	m.floatPos++
	return v
}

func (m *MockRandom) IntN(n int) int {
	if len(m.Ints) == 0 || n <= 0 {
		return 0
	}
	v := m.Ints[m.intPos%len(m.Ints)]
	m.intPos++
	if v >= n {
		return n - 1
	}
	if v < 0 {
		return 0
	}
	return v
}
