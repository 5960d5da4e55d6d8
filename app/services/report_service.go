package services

import (
	"time"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/models"
	"github.com/Akibsaiyad14/clothsbillingandinventory/app/repositories"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/collection"
	"gorm.io/gorm"
)

// SalesSummary aggregates the bills committed inside one period.
type SalesSummary struct {
	From        time.Time          `json:"from"`
	To          time.Time          `json:"to"`
	BillCount   int                `json:"bill_count"`
	GrossTotal  float64            `json:"gross_total"`
	NetTotal    float64            `json:"net_total"`
	UnitsSold   int                `json:"units_sold"`
	ByDay       map[string]float64 `json:"by_day"`
	ByCategory  map[string]int     `json:"by_category"`
	TopItems    []ItemSales        `json:"top_items"`
	AverageBill float64            `json:"average_bill"`
}

// ItemSales is one row of the top-sellers breakdown.
type ItemSales struct {
	ItemID   uint    `json:"item_id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// ReportService builds read-only aggregates over committed bills. It never
// writes, so it runs outside any transaction.
type ReportService struct {
	bills *repositories.BillRepository
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{bills: repositories.NewBillRepository(db)}
}

// SalesBetween summarizes all bills created in [from, to).
func (s *ReportService) SalesBetween(from, to time.Time) (SalesSummary, error) {
	bills, err := s.bills.CreatedBetween(from, to)
	if err != nil {
		return SalesSummary{}, err
	}

	summary := SalesSummary{
		From:       from,
		To:         to,
		BillCount:  len(bills),
		GrossTotal: collection.Sum(bills, func(b models.Bill) float64 { return b.TotalAmount }),
		NetTotal:   collection.Sum(bills, func(b models.Bill) float64 { return b.FinalAmount }),
		ByDay:      map[string]float64{},
		ByCategory: map[string]int{},
	}

	lines := collection.Flatten(collection.Map(bills, func(b models.Bill) []models.BillItem { return b.Items }))
	summary.UnitsSold = int(collection.Sum(lines, func(l models.BillItem) float64 { return float64(l.Quantity) }))

	for _, b := range bills {
		summary.ByDay[b.CreatedAt.Format("2006-01-02")] += b.FinalAmount
	}

	for _, l := range lines {
		if l.Item != nil {
			summary.ByCategory[string(l.Item.Category)] += l.Quantity
		}
	}

	perItem := collection.GroupBy(lines, func(l models.BillItem) string {
		if l.Item != nil {
			return l.Item.Name
		}
		return "unknown"
	})
	for name, ls := range perItem {
		summary.TopItems = append(summary.TopItems, ItemSales{
			ItemID:   ls[0].ItemID,
			Name:     name,
			Quantity: int(collection.Sum(ls, func(l models.BillItem) float64 { return float64(l.Quantity) })),
			Revenue:  collection.Sum(ls, func(l models.BillItem) float64 { return l.Subtotal }),
		})
	}
	collection.SortBy(summary.TopItems, func(a, b ItemSales) bool { return a.Revenue > b.Revenue })
	summary.TopItems = collection.Take(summary.TopItems, 10)

	if summary.BillCount > 0 {
		summary.AverageBill = summary.NetTotal / float64(summary.BillCount)
	}
	return summary, nil
}

// DailySales is SalesBetween for one calendar day.
func (s *ReportService) DailySales(day time.Time) (SalesSummary, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return s.SalesBetween(start, start.AddDate(0, 0, 1))
}
