package mediafire

import (
	"sync"

	"github.com/bnema/mfimport/internal/domain"
)

const (
	DefaultPoolSize = 3
	MaxPoolSize     = 6
)

// ClampPoolSize bounds a requested capacity to [1, MaxPoolSize]. Zero or a
// negative value selects DefaultPoolSize.
func ClampPoolSize(n int) int {
	switch {
	case n <= 0:
		return DefaultPoolSize
	case n > MaxPoolSize:
		return MaxPoolSize
	default:
		return n
	}
}

// TokenPool holds the v2 session tokens of one login. A checked-out token is
// owned by exactly one request until it is released or rotated.
type TokenPool struct {
	mu       sync.Mutex
	capacity int
	tokens   []*domain.SessionToken
	received bool
}

func NewTokenPool(capacity int) *TokenPool {
	return &TokenPool{capacity: ClampPoolSize(capacity)}
}

// Checkout returns the first available token in insertion order, or nil.
func (p *TokenPool) Checkout() *domain.SessionToken {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, token := range p.tokens {
		if token.Available {
			token.Available = false
			return token
		}
	}
	return nil
}

func (p *TokenPool) Release(token *domain.SessionToken) {
	if token == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	token.Available = true
}

// RotateSecret advances the token secret and makes it available again.
func (p *TokenPool) RotateSecret(token *domain.SessionToken) {
	if token == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	token.RotateSecret()
	token.Available = true
}

// Admit stores a freshly issued token. A token arriving while the pool is
// full is accepted but not stored; the return value reports whether it was
// kept.
func (p *TokenPool) Admit(token *domain.SessionToken) bool {
	if token == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.received = true
	if len(p.tokens) >= p.capacity {
		return false
	}
	token.Available = true
	p.tokens = append(p.tokens, token)
	return true
}

// Reset drops every token. It runs on each login.
func (p *TokenPool) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tokens = nil
	p.received = false
}

// Received reports whether a token was admitted since the last Reset.
func (p *TokenPool) Received() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.received
}

func (p *TokenPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.tokens)
}

func (p *TokenPool) Capacity() int {
	return p.capacity
}
