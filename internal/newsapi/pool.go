package newsapi

import (
	"sync"
	"time"
)

// CredentialPool hands out API keys in fixed priority order. A key that
// fails is benched for a short cooldown so the other workers in the same
// fan-out stop retrying it; after the cooldown it rejoins the chain.
type CredentialPool struct {
	mu        sync.Mutex
	keys      []string
	deadUntil map[string]time.Time
	cooldown  time.Duration
}

// DefaultCooldown keeps a failed key benched for the duration of a
// typical fetch batch.
const DefaultCooldown = time.Minute

func NewCredentialPool(keys []string, cooldown time.Duration) *CredentialPool {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	cleaned := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			cleaned = append(cleaned, k)
		}
	}
	return &CredentialPool{
		keys:      cleaned,
		deadUntil: make(map[string]time.Time),
		cooldown:  cooldown,
	}
}

// Size returns the number of configured credentials.
func (p *CredentialPool) Size() int {
	return len(p.keys)
}

// Viable returns the keys worth trying, in priority order. When every
// key is benched the full chain comes back — an exhausted pool must
// still degrade to "try everything" rather than "try nothing".
func (p *CredentialPool) Viable() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	viable := make([]string, 0, len(p.keys))
	for _, k := range p.keys {
		if until, benched := p.deadUntil[k]; benched && now.Before(until) {
			continue
		}
		viable = append(viable, k)
	}
	if len(viable) == 0 {
		viable = append(viable, p.keys...)
	}
	return viable
}

// MarkDead benches a key for the cooldown window.
func (p *CredentialPool) MarkDead(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deadUntil[key] = time.Now().Add(p.cooldown)
}
