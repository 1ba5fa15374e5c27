package state

import "sync"

// Container holds the current value of one concern and pushes every change to
// its subscribers. Subscribers see the latest value only: if a subscriber
// falls behind, intermediate values are replaced rather than queued.
type Container[T any] struct {
	mu     sync.Mutex
	value  T
	subs   map[int]chan T
	nextID int
}

// NewContainer creates a container holding initial.
func NewContainer[T any](initial T) *Container[T] {
	return &Container[T]{
		value: initial,
		subs:  make(map[int]chan T),
	}
}

// Get returns the current value.
func (c *Container[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set replaces the value and notifies subscribers.
func (c *Container[T]) Set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(v)
}

// Update applies fn to the current value atomically and returns the result.
func (c *Container[T]) Update(fn func(T) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := fn(c.value)
	c.setLocked(v)
	return v
}

func (c *Container[T]) setLocked(v T) {
	c.value = v
	for _, ch := range c.subs {
		select {
		case ch <- v:
		default:
			// Drop the stale value the subscriber hasn't read yet.
			select {
			case <-ch:
			default:
			}
			ch <- v
		}
	}
}

// Subscribe returns a channel that immediately receives the current value and
// then every later one. The returned func unsubscribes and closes the channel.
func (c *Container[T]) Subscribe() (<-chan T, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	ch := make(chan T, 1)
	ch <- c.value
	c.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subs, id)
			close(ch)
		})
	}
}
