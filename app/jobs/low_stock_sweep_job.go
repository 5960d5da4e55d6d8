package jobs

import (
	"fmt"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/repositories"
	"github.com/Akibsaiyad14/clothsbillingandinventory/config"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/database"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/event"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/logger"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/metrics"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/notification"
)

// LowStockSweepJob scans the catalog for items at or below their low stock
// threshold, refreshes the gauge, and fires a stock.low event per item so
// the dashboard feed picks them up. Scheduled daily, also dispatchable on
// demand from the CLI.
type LowStockSweepJob struct{}

func (j *LowStockSweepJob) Handle() error {
	repo := repositories.NewCatalogRepository(database.DB)

	items, err := repo.LowStock()
	if err != nil {
		return fmt.Errorf("jobs: low stock sweep: %w", err)
	}

	metrics.LowStockItems.Set(float64(len(items)))

	for _, item := range items {
		event.FireAsync(event.StockLow, item)
	}

	if admin := config.Get("ADMIN_EMAIL", ""); admin != "" && len(items) > 0 {
		notification.SendAsync(admin, &LowStockNotification{Items: items})
	}

	logger.Info("jobs: low stock sweep complete", "items", len(items))
	return nil
}
