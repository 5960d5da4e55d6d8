package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/models"
	"github.com/Akibsaiyad14/clothsbillingandinventory/config"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/database"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/mail"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/storage"
)

func setupJobDB(t *testing.T) {
	t.Helper()

	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.ClothItem{}, &models.Stock{},
		&models.Bill{}, &models.BillItem{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	config.Set("STORAGE_LOCAL_ROOT", t.TempDir())
	storage.Connect()
}

func TestBillEmailJob_SendsRenderedBill(t *testing.T) {
	setupJobDB(t)

	bill := models.Bill{
		BillNumber:    "BILL-20260831-JOB001",
		CustomerName:  "Asha Patel",
		CustomerEmail: "asha@example.com",
		FinalAmount:   64.23,
		Items:         []models.BillItem{{ItemID: 1, Quantity: 2, UnitPrice: 15.99}},
	}
	require.NoError(t, database.DB.Create(&bill).Error)

	var sent *mail.Message
	orig := sendMail
	t.Cleanup(func() { sendMail = orig })
	sendMail = func(m *mail.Message) error {
		sent = m
		return nil
	}

	job := &BillEmailJob{BillID: bill.ID}
	require.NoError(t, job.Handle())
	require.NotNil(t, sent, "a message should have been handed to the mailer")

	// The rendered copy is archived for the download endpoint.
	doc, err := storage.Get("bills/BILL-20260831-JOB001.html")
	require.NoError(t, err)
	assert.Contains(t, string(doc), "BILL-20260831-JOB001")
}

func TestBillEmailJob_SkipsWithoutEmail(t *testing.T) {
	setupJobDB(t)

	bill := models.Bill{BillNumber: "BILL-20260831-JOB002", CustomerName: "Walk-in"}
	require.NoError(t, database.DB.Create(&bill).Error)

	called := false
	orig := sendMail
	t.Cleanup(func() { sendMail = orig })
	sendMail = func(m *mail.Message) error {
		called = true
		return nil
	}

	require.NoError(t, (&BillEmailJob{BillID: bill.ID}).Handle())
	assert.False(t, called)
}

func TestBillEmailJob_MissingBill(t *testing.T) {
	setupJobDB(t)

	err := (&BillEmailJob{BillID: 404}).Handle()
	assert.Error(t, err)
}
