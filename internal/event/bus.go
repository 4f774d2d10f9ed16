package event

import "sync"

type Handler func(payload any)

// Bus is an in-process pub/sub. Each handler runs on its own goroutine,
// so delivery order across publishes is not guaranteed.
type Bus struct {
	handlers map[string][]Handler
	mu       sync.RWMutex
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
	}
}

func (b *Bus) Subscribe(event string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[event] = append(b.handlers[event], handler)
}

func (b *Bus) Publish(event string, payload any) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, h := range b.handlers[event] {
		go h(payload)
	}
}
