package history

// lcgModulus and lcgMultiplier are the classic Park-Miller parameters; the +7
// increment keeps the sequence full-period for seeds that land on zero.
const (
	lcgMultiplier = 16807
	lcgIncrement  = 7
	lcgModulus    = 2147483647
)

// Rand is a deliberately bespoke seeded linear-congruential generator.
// The synthesizer must be reproducible from its seed parameters alone, so it
// never touches math/rand or any external entropy.
type Rand struct {
	seed int64
}

// NewRand creates a generator from an explicit seed.
func NewRand(seed int64) *Rand {
	seed %= lcgModulus
	if seed < 0 {
		seed += lcgModulus
	}
	return &Rand{seed: seed}
}

// SeedFor derives the generator seed from the series parameters. The first
// byte of seedKey ties distinct games/stores to distinct sequences.
func SeedFor(originalPrice, floorPrice float64, seedKey string) int64 {
	var keyCode int64
	if len(seedKey) > 0 {
		keyCode = int64(seedKey[0])
	}
	return int64(originalPrice*100) + int64(floorPrice*10) + keyCode
}

// Next advances the generator and returns a uniform value in [0, 1).
func (r *Rand) Next() float64 {
	r.seed = (r.seed*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(r.seed) / float64(lcgModulus)
}
