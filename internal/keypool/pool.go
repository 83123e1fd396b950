// Package keypool implements a forward-only credential pool. Keys are handed
// out in configuration order and the cursor never rewinds, so a key that hit
// its quota is not retried until the process restarts.
package keypool

import (
	"strings"
	"sync"

	"github.com/vidbrief/vidbrief/internal/domain"
)

// PlaceholderKey stands in when no real keys are configured. Requests fail
// with a provider error instead of a startup crash, which keeps the static
// frontend and the status endpoint usable.
const PlaceholderKey = "your_google_api_key_here"

// Pool is a mutex-guarded credential pool.
type Pool struct {
	mu     sync.Mutex
	keys   []string
	cursor int
}

// New creates a pool from the given keys, dropping blank entries. An empty
// result falls back to a single placeholder key.
func New(keys []string) *Pool {
	cleaned := make([]string, 0, len(keys))
	for _, key := range keys {
		if strings.TrimSpace(key) != "" {
			cleaned = append(cleaned, key)
		}
	}

	if len(cleaned) == 0 {
		cleaned = []string{PlaceholderKey}
	}

	return &Pool{keys: cleaned}
}

// Current returns the key at the cursor without advancing.
func (p *Pool) Current() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cursor >= len(p.keys) {
		return "", domain.ErrPoolExhausted
	}

	return p.keys[p.cursor], nil
}

// Advance moves the cursor to the next key and returns it. At the last key
// the cursor stays put and ErrPoolExhausted comes back, so repeated calls
// are safe.
func (p *Pool) Advance() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cursor >= len(p.keys)-1 {
		return "", domain.ErrPoolExhausted
	}

	p.cursor++

	return p.keys[p.cursor], nil
}

// Status reports the rotation state. ActiveKey is 1-based for display.
func (p *Pool) Status() domain.KeyStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	return domain.KeyStatus{
		ActiveKey:     p.cursor + 1,
		TotalKeys:     len(p.keys),
		RemainingKeys: len(p.keys) - p.cursor - 1,
	}
}
