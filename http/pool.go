package http

import (
	"net/http"
	"sync"
	"time"
)

// ClientPool owns one reusable FacilitatorClient per facilitator URL. The
// first caller for a URL constructs the client; every later caller at any
// concurrency level receives the same instance. Entries are never evicted:
// the pool is bounded by the number of distinct facilitator URLs configured,
// which is operator-controlled and small.
type ClientPool struct {
	mu      sync.Mutex
	clients map[string]*FacilitatorClient
}

// NewClientPool creates an empty pool. A pool is typically shared by every
// gate in the process so routes pointing at the same facilitator reuse
// connections.
func NewClientPool() *ClientPool {
	return &ClientPool{clients: make(map[string]*FacilitatorClient)}
}

// Get returns the pooled client for url, creating it on first use with the
// given timeout. Lookup and insert happen in a single critical section so
// concurrent first callers cannot construct duplicates.
func (p *ClientPool) Get(url string, timeout time.Duration) *FacilitatorClient {
	p.mu.Lock()
	defer p.mu.Unlock()

	if client, ok := p.clients[url]; ok {
		return client
	}

	client := &FacilitatorClient{
		BaseURL: url,
		Client:  &http.Client{},
		Timeout: timeout,
	}
	p.clients[url] = client
	return client
}

// Len reports the number of pooled clients.
func (p *ClientPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.clients)
}
