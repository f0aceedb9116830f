package hunting

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// RNG is the source of randomness for shuffles, catch draws, spawn rolls and
// taxes. *rand.Rand satisfies it.
type RNG interface {
	IntN(n int) int
	Float64() float64
}

func NewSeededRNG(seed int64) *rand.Rand {
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

// shuffleAnimals is a Fisher-Yates pass from the tail, drawing j in [0, i].
func shuffleAnimals(rng RNG, animals []AnimalInstance) {
	for i := len(animals) - 1; i >= 1; i-- {
		j := rng.IntN(i + 1)
		animals[i], animals[j] = animals[j], animals[i]
	}
}
