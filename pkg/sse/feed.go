package sse

import (
	"net/http"
	"sync"
	"time"
)

// feedEvent is one named payload pushed to every feed subscriber.
type feedEvent struct {
	name string
	data any
}

var (
	feedMu   sync.Mutex
	feedSubs = map[chan feedEvent]struct{}{}
)

func subscribe() (chan feedEvent, func()) {
	ch := make(chan feedEvent, 16)

	feedMu.Lock()
	feedSubs[ch] = struct{}{}
	feedMu.Unlock()

	return ch, func() {
		feedMu.Lock()
		delete(feedSubs, ch)
		feedMu.Unlock()
	}
}

// PublishEvent pushes a named payload to every connected feed client.
// Slow clients drop events rather than blocking the publisher.
func PublishEvent(name string, payload any) {
	feedMu.Lock()
	defer feedMu.Unlock()

	for ch := range feedSubs {
		select {
		case ch <- feedEvent{name: name, data: payload}:
		default:
		}
	}
}

// Serve streams the event feed to one client. It is the plain-HTTP
// fallback for clients that cannot hold a WebSocket; both carry the same
// events.
func Serve(w http.ResponseWriter, r *http.Request) {
	stream := New(w, r)
	if stream == nil {
		return
	}

	ch, cancel := subscribe()
	defer cancel()

	heartbeat := time.NewTicker(25 * time.Second)
	defer heartbeat.Stop()

	stream.Comment("connected")
	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			stream.Comment("keepalive")
		case ev := <-ch:
			if err := stream.Send(ev.name, map[string]any{
				"event":   ev.name,
				"payload": ev.data,
				"at":      time.Now().UTC(),
			}); err != nil || stream.IsClosed() {
				return
			}
		}
	}
}
