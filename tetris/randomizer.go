package tetris

import "math/rand/v2"

// Randomizer produces the sequence of spawned piece kinds.
type Randomizer interface {
	Next() Kind
}

// UniformRandomizer draws every kind independently with equal probability.
type UniformRandomizer struct {
	rng *rand.Rand
}

// NewUniformRandomizer returns a uniform randomizer seeded with seed.
func NewUniformRandomizer(seed uint64) *UniformRandomizer {
	return &UniformRandomizer{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *UniformRandomizer) Next() Kind {
	return Kind(r.rng.IntN(KindCount))
}

// BagRandomizer deals the seven kinds in shuffled bags, so every kind appears
// once per seven spawns.
type BagRandomizer struct {
	rng *rand.Rand
	bag []Kind
}

// NewBagRandomizer returns a 7-bag randomizer seeded with seed.
func NewBagRandomizer(seed uint64) *BagRandomizer {
	return &BagRandomizer{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *BagRandomizer) Next() Kind {
	if len(r.bag) == 0 {
		r.bag = []Kind{I, O, T, S, Z, J, L}
		r.rng.Shuffle(len(r.bag), func(i, j int) {
			r.bag[i], r.bag[j] = r.bag[j], r.bag[i]
		})
	}
	kind := r.bag[0]
	r.bag = r.bag[1:]
	return kind
}

// SequenceRandomizer replays a fixed list of kinds, cycling when exhausted.
// It is meant for tests and replays.
type SequenceRandomizer struct {
	kinds []Kind
	pos   int
}

func NewSequenceRandomizer(kinds ...Kind) *SequenceRandomizer {
	return &SequenceRandomizer{kinds: kinds}
}

func (r *SequenceRandomizer) Next() Kind {
	kind := r.kinds[r.pos%len(r.kinds)]
	r.pos++
	return kind
}
