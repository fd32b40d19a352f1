package app

import "sync"

// pendingPath hands a file path from the dialog goroutine to the render
// thread. The zero value is ready to use.
type pendingPath struct {
	mu   sync.Mutex
	path string
}

func (p *pendingPath) set(path string) {
	p.mu.Lock()
	p.path = path
	p.mu.Unlock()
}

// take returns the stored path and clears it, so each dialog result is
// processed exactly once.
func (p *pendingPath) take() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	path := p.path
	p.path = ""
	return path, path != ""
}
