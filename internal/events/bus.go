package events

import "sync"

// Bus is the process-wide cart-changed signal. The signal carries no payload;
// subscribers re-fetch whatever they need (count, full cart) themselves, which
// keeps the cart layer decoupled from every surface showing cart size.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]chan struct{}
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan struct{})}
}

// Subscribe registers an observer. The returned cancel func must be called
// when the observer goes away.
func (b *Bus) Subscribe() (<-chan struct{}, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan struct{}, 1)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
	return ch, cancel
}

// Publish broadcasts the cart-changed signal. Non-blocking: a subscriber that
// already has a pending signal is skipped, it will re-fetch anyway.
func (b *Bus) Publish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
