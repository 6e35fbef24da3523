package clock

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Clock is the time source for upload names and guard expiry.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func New() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Fixed is a settable clock for tests. It is safe for concurrent use.
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixed(t time.Time) *Fixed {
	return &Fixed{now: t}
}

func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	f.now = t
	f.mu.Unlock()
}

func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// Random yields the numeric suffix of generated file names.
type Random interface {
	Int63n(n int64) int64
}

type systemRandom struct{}

func NewRandom() Random {
	return systemRandom{}
}

func (systemRandom) Int63n(n int64) int64 {
	return rand.Int64N(n)
}

// Constant always returns v, reduced modulo n.
type Constant int64

func (c Constant) Int63n(n int64) int64 {
	return int64(c) % n
}
