package routes

import (
	"net/http"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/controllers"
	appgraphql "github.com/Akibsaiyad14/clothsbillingandinventory/app/graphql"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/ctx"
	pkggraphql "github.com/Akibsaiyad14/clothsbillingandinventory/pkg/graphql"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/logger"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/middleware"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/rbac"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/response"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/router"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/sse"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/ws"
	"gorm.io/gorm"
)

// RegisterAPI mounts the full HTTP surface on r.
func RegisterAPI(r *router.Router, db *gorm.DB) {
	authController := controllers.NewAuthController(db)
	itemController := controllers.NewItemController(db)
	stockController := controllers.NewStockController(db)
	billController := controllers.NewBillController(db)
	reportController := controllers.NewReportController(db)

	r.Get("/healthz", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.HandleFunc("/ws/dashboard", ws.Serve)
	r.Get("/events/dashboard", "events.dashboard", sse.Serve)

	api := r.Group("/api")

	api.Post("/auth/register", "auth.register", ctx.Wrap(authController.Register))
	api.Post("/auth/login", "auth.login", ctx.Wrap(authController.Login))
	api.Post("/auth/refresh", "auth.refresh", ctx.Wrap(authController.Refresh))

	protected := api.Group("", middleware.AuthMiddleware)

	protected.Get("/items", "items.index", ctx.Wrap(itemController.Index))
	protected.Get("/items/{id}", "items.show", ctx.Wrap(itemController.Show))
	protected.Post("/items", "items.create", ctx.Wrap(itemController.Create))
	protected.Put("/items/{id}", "items.update", ctx.Wrap(itemController.Update))
	protected.Delete("/items/{id}", "items.delete", ctx.Wrap(itemController.Delete),
		rbac.HasRole("admin"))

	protected.Get("/items/{id}/stock", "stock.show", ctx.Wrap(stockController.Show))
	protected.Put("/items/{id}/stock", "stock.update", ctx.Wrap(stockController.Update))
	protected.Post("/items/{id}/stock/adjust", "stock.adjust", ctx.Wrap(stockController.Adjust))
	protected.Get("/stock/low", "stock.low", ctx.Wrap(stockController.LowStock))

	protected.Post("/bills", "bills.create", ctx.Wrap(billController.Create))
	protected.Get("/bills", "bills.index", ctx.Wrap(billController.Index))
	protected.Get("/bills/{id}", "bills.show", ctx.Wrap(billController.Show))
	protected.Get("/bills/number/{number}/download", "bills.download", ctx.Wrap(billController.Download))

	protected.Get("/reports/daily", "reports.daily", ctx.Wrap(reportController.Daily),
		rbac.HasRole("admin"))
	protected.Get("/reports/range", "reports.range", ctx.Wrap(reportController.Range),
		rbac.HasRole("admin"))

	if schema, err := appgraphql.NewSchema(db); err == nil {
		protected.Post("/graphql", "graphql", pkggraphql.Handler(schema))
	} else {
		logger.Error("graphql: schema build failed", "error", err)
	}
}
