package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/logger"
)

// Dashboard is the hub behind /ws/dashboard. The till UI and back-office
// screens subscribe here for live bill and stock activity.
var (
	dashboard     *Hub
	dashboardOnce sync.Once
)

func dashboardHub() *Hub {
	dashboardOnce.Do(func() {
		dashboard = NewHub()
		go dashboard.Run()
	})
	return dashboard
}

// Serve upgrades a connection onto the dashboard feed.
func Serve(w http.ResponseWriter, r *http.Request) {
	Upgrade(w, r, dashboardHub())
}

// PublishEvent broadcasts a named event with a JSON payload to every
// dashboard subscriber. Marshal failures are logged and dropped.
func PublishEvent(name string, payload any) {
	msg, err := json.Marshal(map[string]any{
		"event":   name,
		"payload": payload,
		"at":      time.Now().UTC(),
	})
	if err != nil {
		logger.Warn("ws: marshal dashboard event", "event", name, "error", err)
		return
	}
	dashboardHub().Broadcast <- msg
}
