package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_DailySales(t *testing.T) {
	db := newTestDB(t)
	billing := NewBillingService(db)
	reports := NewReportService(db)

	shirt := seedItem(t, db, "Report Shirt", 15.99, 100)
	jacket := seedItem(t, db, "Report Jacket", 35.99, 100)

	_, err := billing.CreateBill(context.Background(), CreateBillInput{
		CustomerName: "Morning Sale",
		Discount:     10,
		TaxRate:      5,
		Items: []BillLineInput{
			{ItemID: shirt.ID, Quantity: 2},
			{ItemID: jacket.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	_, err = billing.CreateBill(context.Background(), CreateBillInput{
		CustomerName: "Afternoon Sale",
		Items:        []BillLineInput{{ItemID: shirt.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	summary, err := reports.DailySales(time.Now())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.BillCount)
	assert.Equal(t, 4, summary.UnitsSold)
	assert.InDelta(t, 67.97+15.99, summary.GrossTotal, 1e-9)
	assert.InDelta(t, 64.23+15.99, summary.NetTotal, 1e-9)
	assert.InDelta(t, summary.NetTotal/2, summary.AverageBill, 1e-9)

	day := time.Now().Format("2006-01-02")
	assert.InDelta(t, summary.NetTotal, summary.ByDay[day], 1e-9)
	assert.Equal(t, map[string]int{"SHIRT": 4}, summary.ByCategory)

	// Ranked by revenue: 3 shirts at 47.97 beat 1 jacket at 35.99.
	require.Len(t, summary.TopItems, 2)
	assert.Equal(t, "Report Shirt", summary.TopItems[0].Name)
	assert.Equal(t, 3, summary.TopItems[0].Quantity)
	assert.InDelta(t, 47.97, summary.TopItems[0].Revenue, 1e-9)
	assert.Equal(t, "Report Jacket", summary.TopItems[1].Name)
}

func TestReportService_EmptyPeriod(t *testing.T) {
	db := newTestDB(t)
	reports := NewReportService(db)

	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	summary, err := reports.SalesBetween(from, from.AddDate(0, 0, 7))
	require.NoError(t, err)

	assert.Zero(t, summary.BillCount)
	assert.Zero(t, summary.GrossTotal)
	assert.Zero(t, summary.AverageBill)
	assert.Empty(t, summary.TopItems)
}
