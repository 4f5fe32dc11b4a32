package game

// Commands buffers side effects queued while the session is locked. The Loop
// flushes the buffer after releasing the lock so listeners and persistence
// never run inside a tick.
type Commands struct {
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len reports the number of queued operations.
func (c *Commands) Len() int {
	return len(c.defers)
}

// Flush runs the queued functions in order and resets the buffer.
func (c *Commands) Flush() {
	for i, fn := range c.defers {
		fn()
		c.defers[i] = nil
	}
	c.defers = c.defers[:0]
}
