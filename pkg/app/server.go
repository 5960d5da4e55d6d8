package app

// pkg/app/server.go — bridges Application → internal/server.
// The handler is built lazily so auto-migrations and route construction run
// after internal/server has connected the database.

import (
	"net/http"

	"github.com/Akibsaiyad14/clothsbillingandinventory/internal/server"
)

func startServer(a *Application) error {
	return server.Start(func() http.Handler {
		return buildHandler(a)
	})
}
