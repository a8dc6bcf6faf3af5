package score

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const (
	StrategyRandom = "random"
	StrategyFixed  = "fixed"

	minRandomDelta = 0.1
	maxRandomDelta = 0.9
)

// DeltaStrategy decides how much a completed recommendation improves its goal score.
type DeltaStrategy interface {
	Next() float64
}

type randomDelta struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// RandomDelta draws uniformly from [0.1, 0.9).
func RandomDelta(rng *rand.Rand) DeltaStrategy {
	return &randomDelta{rng: rng}
}

func (r *randomDelta) Next() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return minRandomDelta + r.rng.Float64()*(maxRandomDelta-minRandomDelta)
}

type fixedDelta float64

func FixedDelta(delta float64) DeltaStrategy {
	return fixedDelta(delta)
}

func (f fixedDelta) Next() float64 {
	return float64(f)
}

// NewDeltaStrategy builds a strategy from configuration. A zero seed uses the clock.
func NewDeltaStrategy(name string, fixed float64, seed int64) (DeltaStrategy, error) {
	switch name {
	case "", StrategyRandom:
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return RandomDelta(rand.New(rand.NewSource(seed))), nil
	case StrategyFixed:
		if err := validateDelta(fixed); err != nil {
			return nil, err
		}
		return FixedDelta(fixed), nil
	default:
		return nil, fmt.Errorf("unknown delta strategy %q", name)
	}
}
