// Package event provides a simple in-process event dispatcher.
package event

import (
	"sync"

	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/workerpool"
)

// Event names fired by the application.
const (
	BillCreated   = "bill.created"
	StockAdjusted = "stock.adjusted"
	StockLow      = "stock.low"
	ItemCreated   = "item.created"
	ItemDeleted   = "item.deleted"
)

// Handler is a function that receives an event payload.
type Handler func(payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}
	pool     *workerpool.Pool
)

// Listen registers a handler for the given event name.
func Listen(event string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[event] = append(handlers[event], handler)
}

// Fire dispatches an event synchronously to all registered listeners.
func Fire(event string, payload interface{}) {
	for _, h := range snapshot(event) {
		h(payload)
	}
}

// FireAsync dispatches the event to all listeners without waiting. When a
// worker pool has been attached with UsePool, handlers are scheduled on it;
// otherwise each handler runs on its own goroutine.
func FireAsync(event string, payload interface{}) {
	hs := snapshot(event)
	if pool != nil {
		for _, h := range hs {
			h := h
			if err := pool.Submit(func() { h(payload) }); err != nil {
				go h(payload)
			}
		}
		return
	}
	for _, h := range hs {
		go h(payload)
	}
}

// UsePool routes FireAsync dispatch through the given worker pool.
func UsePool(p *workerpool.Pool) {
	mu.Lock()
	defer mu.Unlock()
	pool = p
}

// Flush removes all listeners (useful in tests).
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
}

func snapshot(event string) []Handler {
	mu.RLock()
	defer mu.RUnlock()
	hs := make([]Handler, len(handlers[event]))
	copy(hs, handlers[event])
	return hs
}
