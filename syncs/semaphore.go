package syncs

import "context"

// Semaphore bounds the number of goroutines working at once.
type Semaphore chan struct{}

func NewSemaphore(n int) Semaphore {
	if n < 1 {
		n = 1
	}
	return make(chan struct{}, n)
}

// Acquire blocks until a slot is free or ctx is done.
func (s Semaphore) Acquire(ctx context.Context) error {
	select {
	case s <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s Semaphore) Release() {
	<-s
}
