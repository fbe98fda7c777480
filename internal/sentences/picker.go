package sentences

import (
	"math/rand"
	"time"
)

// Picker selects sentences uniformly at random, with replacement.
type Picker struct {
	pool []string
	rnd  *rand.Rand
}

// NewPicker returns a Picker over pool drawing from rnd.
// It panics if pool is empty.
func NewPicker(pool []string, rnd *rand.Rand) *Picker {
	if len(pool) == 0 {
		panic("sentences: empty pool")
	}
	return &Picker{pool: append([]string(nil), pool...), rnd: rnd}
}

// NewSeeded returns a Picker with a deterministic source. A zero seed uses the current time.
func NewSeeded(pool []string, seed int64) *Picker {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewPicker(pool, rand.New(rand.NewSource(seed)))
}

// Pick returns a random member of the pool.
func (p *Picker) Pick() string {
	return p.pool[p.rnd.Intn(len(p.pool))]
}

// Pool returns a copy of the pool the picker draws from.
func (p *Picker) Pool() []string {
	return append([]string(nil), p.pool...)
}
