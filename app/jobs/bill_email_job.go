// Package jobs defines the background jobs processed by the queue workers.
package jobs

import (
	"fmt"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/documents"
	"github.com/Akibsaiyad14/clothsbillingandinventory/app/models"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/database"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/logger"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/mail"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/metrics"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/queue"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/storage"
)

// sendMail is swapped out in tests.
var sendMail = func(m *mail.Message) error { return m.Send() }

// BillEmailJob renders a committed bill and emails it to the customer.
// It runs strictly after the order transaction has committed; a failure
// here is retried by the queue and never affects the bill itself.
type BillEmailJob struct {
	BillID uint `json:"bill_id"`
}

func (j *BillEmailJob) Handle() error {
	var bill models.Bill
	err := database.DB.Preload("Items").Preload("Items.Item").First(&bill, j.BillID).Error
	if err != nil {
		return fmt.Errorf("jobs: load bill %d: %w", j.BillID, err)
	}

	if bill.CustomerEmail == "" {
		logger.Warn("jobs: bill has no customer email, skipping", "bill_number", bill.BillNumber)
		return nil
	}

	doc, err := documents.RenderBill(bill)
	if err != nil {
		metrics.DeliveryJobs.WithLabelValues("failed").Inc()
		return err
	}

	// Archive the rendered document so the download endpoint serves the
	// exact copy the customer received.
	name := documents.FileName(bill)
	if err := storage.Put("bills/"+name, doc); err != nil {
		logger.Warn("jobs: archive bill document failed", "bill_number", bill.BillNumber, "error", err)
	}

	msg := mail.To(bill.CustomerEmail).
		Subject(fmt.Sprintf("Your bill %s", bill.BillNumber)).
		Body(fmt.Sprintf("<p>Dear %s,</p><p>Thank you for your purchase. Your bill is attached.</p>", bill.CustomerName)).
		Attach(name, doc)

	if err := sendMail(msg); err != nil {
		metrics.DeliveryJobs.WithLabelValues("failed").Inc()
		return fmt.Errorf("jobs: send bill %s: %w", bill.BillNumber, err)
	}

	metrics.DeliveryJobs.WithLabelValues("sent").Inc()
	logger.Info("jobs: bill emailed", "bill_number", bill.BillNumber, "to", bill.CustomerEmail)
	return nil
}

// Register wires every job type into the queue's deserialization registry.
// Call once at boot before workers start.
func Register() {
	queue.Register("*jobs.BillEmailJob", func() queue.Job { return &BillEmailJob{} })
	queue.Register("*jobs.LowStockSweepJob", func() queue.Job { return &LowStockSweepJob{} })
}
