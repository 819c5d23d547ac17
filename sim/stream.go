package sim

import "sync"

// defaultBuffer is the subscriber queue depth used when a caller does not
// size its own.
const defaultBuffer = 64

// stream fans one event type out to a set of bounded subscriber channels.
// Publish never blocks: a subscriber that has let its buffer fill loses
// the point rather than stalling the cadence that produced it.
type stream[T any] struct {
	mu   sync.RWMutex
	subs []chan T
}

// subscribe registers a new subscriber and returns its receive channel.
// buffer <= 0 selects the default depth.
func (s *stream[T]) subscribe(buffer int) <-chan T {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	ch := make(chan T, buffer)

	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()

	return ch
}

// publish hands v to every subscriber, dropping it for any whose buffer
// is full.
func (s *stream[T]) publish(v T) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ch := range s.subs {
		select {
		case ch <- v:
		default:
		}
	}
}
