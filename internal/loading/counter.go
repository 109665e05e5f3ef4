package loading

import "sync"

// Counter is a reference-counted loading indicator shared by every list.
// It never drops below zero.
type Counter struct {
	mu    sync.Mutex
	count int
}

func NewCounter() *Counter {
	return &Counter{}
}

func (c *Counter) Show() {
	c.mu.Lock()
	c.count++
	c.mu.Unlock()
}

func (c *Counter) Hide() {
	c.mu.Lock()
	if c.count > 0 {
		c.count--
	}
	c.mu.Unlock()
}

func (c *Counter) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count > 0
}

func (c *Counter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}
