package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/jobs"
	"github.com/Akibsaiyad14/clothsbillingandinventory/app/models"
	"github.com/Akibsaiyad14/clothsbillingandinventory/app/repositories"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/event"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/logger"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/metrics"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/queue"
	"gorm.io/gorm"
)

// BillLineInput is one requested (item, quantity) pair.
type BillLineInput struct {
	ItemID   uint `json:"item_id"`
	Quantity int  `json:"quantity"`
}

// CreateBillInput is the full order request.
type CreateBillInput struct {
	CustomerName  string          `json:"customer_name"  validate:"required,max=200"`
	CustomerPhone string          `json:"customer_phone" validate:"nullable,max=20"`
	CustomerEmail string          `json:"customer_email" validate:"nullable,email"`
	Discount      float64         `json:"discount"       validate:"gte=0,lte=100"`
	TaxRate       float64         `json:"tax_rate"       validate:"gte=0"`
	Notes         string          `json:"notes"`
	Items         []BillLineInput `json:"items"`
}

// CreateBillResult is what the engine hands back to the HTTP layer: the
// committed bill and whether a delivery job was queued for it. Delivery is
// decoupled from the transaction — its later failure never unwinds the bill.
type CreateBillResult struct {
	Bill        models.Bill `json:"bill"`
	EmailQueued bool        `json:"email_queued"`
}

// BillingService is the order transaction engine. Every CreateBill call
// runs as one all-or-nothing database transaction: stock checks, stock
// decrements, bill number allocation, and the bill + line writes either all
// commit or leave no trace.
type BillingService struct {
	db *gorm.DB
}

func NewBillingService(db *gorm.DB) *BillingService {
	return &BillingService{db: db}
}

// CreateBill validates the order, decrements stock, and commits the bill.
//
// Deliberately not idempotent: the same input twice produces two bills and
// two decrements. Retries after an ambiguous failure must be driven by the
// caller checking for the first bill.
func (s *BillingService) CreateBill(ctx context.Context, in CreateBillInput) (CreateBillResult, error) {
	if len(in.Items) == 0 {
		metrics.OrdersRejected.WithLabelValues("validation").Inc()
		return CreateBillResult{}, ErrEmptyBill
	}
	for _, line := range in.Items {
		if line.Quantity < 1 {
			metrics.OrdersRejected.WithLabelValues("validation").Inc()
			return CreateBillResult{}, fmt.Errorf("billing: item %d: %w", line.ItemID, ErrInvalidQuantity)
		}
	}

	var bill models.Bill
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		bill, err = s.createBillTx(tx, in)
		return err
	})

	// The unique index on bill_number is the backstop for two concurrent
	// requests generating the same suffix between the existence pre-check
	// and commit. Losing that race aborts the whole transaction (so no
	// stock mutation survives); rerunning it regenerates a fresh number.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		metrics.BillNumberRetries.Inc()
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var txErr error
			bill, txErr = s.createBillTx(tx, in)
			return txErr
		})
	}

	if err != nil {
		s.countRejection(err)
		return CreateBillResult{}, err
	}

	s.afterCommit(ctx, &bill)

	return CreateBillResult{
		Bill:        bill,
		EmailQueued: s.queueDelivery(ctx, &bill),
	}, nil
}

// createBillTx is the transactional body: resolve and decrement every line
// in input order, then allocate a number and persist the bill with computed
// totals. Any returned error rolls back everything done so far.
func (s *BillingService) createBillTx(tx *gorm.DB, in CreateBillInput) (models.Bill, error) {
	items := make([]models.BillItem, 0, len(in.Items))
	subtotals := make([]float64, 0, len(in.Items))

	for _, line := range in.Items {
		var item models.ClothItem
		if err := tx.First(&item, line.ItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Bill{}, &ItemNotFoundError{ItemID: line.ItemID}
			}
			return models.Bill{}, fmt.Errorf("billing: resolve item %d: %w", line.ItemID, err)
		}

		ok, err := repositories.DecrementIfSufficient(tx, item.ID, line.Quantity)
		if err != nil && !errors.Is(err, repositories.ErrNoStockRecord) {
			return models.Bill{}, fmt.Errorf("billing: decrement stock for %q: %w", item.Name, err)
		}
		// Untracked items (no stock row) sell without a stock check.
		if err == nil && !ok {
			var stock models.Stock
			_ = tx.Where("item_id = ?", item.ID).First(&stock).Error
			return models.Bill{}, &InsufficientStockError{
				ItemName:  item.Name,
				Requested: line.Quantity,
				Available: stock.Quantity,
			}
		}

		// Capture the price at time of sale; later catalog edits must not
		// rewrite this line.
		subtotal := float64(line.Quantity) * item.Price
		items = append(items, models.BillItem{
			ItemID:    item.ID,
			Quantity:  line.Quantity,
			UnitPrice: item.Price,
		})
		subtotals = append(subtotals, subtotal)
	}

	number, err := s.allocateBillNumber(tx)
	if err != nil {
		return models.Bill{}, err
	}

	totals := ComputeTotals(subtotals, in.Discount, in.TaxRate)

	bill := models.Bill{
		BillNumber:    number,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		CustomerEmail: in.CustomerEmail,
		Discount:      in.Discount,
		TaxRate:       in.TaxRate,
		TotalAmount:   totals.TotalAmount,
		FinalAmount:   totals.FinalAmount,
		Notes:         in.Notes,
		Items:         items,
	}

	if err := tx.Create(&bill).Error; err != nil {
		return models.Bill{}, fmt.Errorf("billing: persist bill: %w", err)
	}

	return bill, nil
}

// allocateBillNumber generates candidates until one is free, bounded by
// billNumberAttempts.
func (s *BillingService) allocateBillNumber(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < billNumberAttempts; attempt++ {
		candidate := generateBillNumber(time.Now())

		taken, err := repositories.NumberExists(tx, candidate)
		if err != nil {
			return "", fmt.Errorf("billing: check bill number: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		metrics.BillNumberRetries.Inc()
	}
	return "", ErrBillNumberExhausted
}

func (s *BillingService) afterCommit(ctx context.Context, bill *models.Bill) {
	metrics.BillsCreated.Inc()
	metrics.BillAmount.Observe(bill.FinalAmount)
	for _, line := range bill.Items {
		metrics.StockUnitsSold.Add(float64(line.Quantity))
	}

	logger.WithCtx(ctx).Info("bill created",
		"bill_number", bill.BillNumber,
		"customer", bill.CustomerName,
		"final_amount", bill.FinalAmount,
		"lines", len(bill.Items),
	)

	event.Fire(event.BillCreated, *bill)
}

// queueDelivery hands the committed bill to the delivery collaborator.
// Strictly post-commit and best-effort: a queue failure is logged and
// reported via the EmailQueued flag, never as an order failure.
func (s *BillingService) queueDelivery(ctx context.Context, bill *models.Bill) bool {
	if bill.CustomerEmail == "" {
		return false
	}

	if err := queue.Dispatch(&jobs.BillEmailJob{BillID: bill.ID}); err != nil {
		logger.WithCtx(ctx).Warn("bill delivery dispatch failed",
			"bill_number", bill.BillNumber, "error", err)
		return false
	}
	return true
}

func (s *BillingService) countRejection(err error) {
	var notFound *ItemNotFoundError
	var insufficient *InsufficientStockError

	switch {
	case errors.As(err, &notFound):
		metrics.OrdersRejected.WithLabelValues("item_not_found").Inc()
	case errors.As(err, &insufficient):
		metrics.OrdersRejected.WithLabelValues("insufficient_stock").Inc()
	case errors.Is(err, ErrBillNumberExhausted):
		metrics.OrdersRejected.WithLabelValues("number_exhausted").Inc()
	}
}
