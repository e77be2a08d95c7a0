package engine

import "math/rand"

// RNG is the randomness source injected into every resolver entry point.
// Keeping dice rolls behind this interface makes turn resolution
// deterministic and replayable: a battle stores its seed, and each turn
// derives a fresh source from seed plus turn number.
type RNG interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// NewRNG returns a seeded RNG. *rand.Rand satisfies the interface.
func NewRNG(seed int64) RNG {
	return rand.New(rand.NewSource(seed))
}

// TurnRNG derives the RNG for a specific turn of a battle so any turn can
// be re-resolved bit-for-bit from the persisted seed and the turn log.
func TurnRNG(battleSeed int64, turnNumber int) RNG {
	return NewRNG(battleSeed + int64(turnNumber))
}
