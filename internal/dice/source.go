package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sync"
)

// Rand yields uniform integers in [0, n).
type Rand interface {
	IntN(n int) int
}

// Source hands out a Rand per call. Every successful Get must be paired with Put.
type Source interface {
	Get() (Rand, error)
	Put(Rand)
}

// PoolSource keeps a pool of PCG generators seeded from crypto/rand.
type PoolSource struct {
	pool sync.Pool
	seed func() (uint64, uint64, error)
}

func NewPoolSource() *PoolSource {
	return &PoolSource{seed: cryptoSeed}
}

func (p *PoolSource) Get() (Rand, error) {
	if r, ok := p.pool.Get().(*rand.Rand); ok {
		return r, nil
	}
	s1, s2, err := p.seed()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return rand.New(rand.NewPCG(s1, s2)), nil
}

func (p *PoolSource) Put(r Rand) {
	if rr, ok := r.(*rand.Rand); ok {
		p.pool.Put(rr)
	}
}

func cryptoSeed() (uint64, uint64, error) {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, 0, err
	}
	return binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:]), nil
}

// SeededSource is a single deterministic generator. Get holds a lock until Put,
// so concurrent callers are serialized and draw order stays reproducible.
type SeededSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewSeededSource(seed uint64) *SeededSource {
	return &SeededSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *SeededSource) Get() (Rand, error) {
	s.mu.Lock()
	return s.r, nil
}

func (s *SeededSource) Put(Rand) { s.mu.Unlock() }
