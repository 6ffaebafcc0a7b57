package emu

import (
	"errors"
	"sync"
)

// TestingOutput records the samples it receives.
type TestingOutput struct {
	mu      sync.Mutex
	samples []uint8
	writes  int
	closed  int

	// failAfter makes Write fail once that many writes succeeded (0 means
	// never).
	failAfter int
}

var errOutputFull = errors.New("output full")

func (to *TestingOutput) Write(samples []uint8) error {
	to.mu.Lock()
	defer to.mu.Unlock()

	if to.failAfter > 0 && to.writes >= to.failAfter {
		return errOutputFull
	}
	to.writes++
	to.samples = append(to.samples, samples...)
	return nil
}

func (to *TestingOutput) Close() error {
	to.mu.Lock()
	defer to.mu.Unlock()

	to.closed++
	return nil
}

func (to *TestingOutput) Samples() []uint8 {
	to.mu.Lock()
	defer to.mu.Unlock()

	return to.samples
}
