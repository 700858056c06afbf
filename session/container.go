package session

import (
	"sync"
)

// Listener is called with the new snapshot after every dispatch.
type Listener func(State)

// Container owns the current State. It is created once and passed to every
// consumer; only the auth controller dispatches.
type Container struct {
	mu        sync.RWMutex
	state     State
	listeners map[int]Listener
	nextID    int
}

func NewContainer() *Container {
	return &Container{listeners: make(map[int]Listener)}
}

func (c *Container) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Dispatch applies action and notifies listeners outside the lock.
func (c *Container) Dispatch(action Action) State {
	c.mu.Lock()
	c.state = Reduce(c.state, action)
	state := c.state
	listeners := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.mu.Unlock()

	for _, l := range listeners {
		l(state)
	}
	return state
}

// Subscribe registers l and returns the func that removes it.
func (c *Container) Subscribe(l Listener) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = l
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}
