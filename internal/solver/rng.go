package solver

// rng is a deterministic xorshift64 pseudo-random generator. The solver
// injects it explicitly so the search order, and therefore the chosen
// solution, is reproducible from the seed.
type rng struct {
	state uint64
}

const defaultSeed = 88172645463325252

func newRNG(seed uint64) *rng {
	if seed == 0 {
		seed = defaultSeed
	}
	return &rng{state: seed}
}

func (r *rng) next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// coin returns a uniformly random boolean.
func (r *rng) coin() bool {
	return r.next()&1 == 1
}
