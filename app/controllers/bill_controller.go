package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/documents"
	"github.com/Akibsaiyad14/clothsbillingandinventory/app/repositories"
	"github.com/Akibsaiyad14/clothsbillingandinventory/app/services"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/ctx"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/response"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/storage"
	"gorm.io/gorm"
)

type BillController struct {
	billing *services.BillingService
	bills   *repositories.BillRepository
}

func NewBillController(db *gorm.DB) *BillController {
	return &BillController{
		billing: services.NewBillingService(db),
		bills:   repositories.NewBillRepository(db),
	}
}

// Create runs the order transaction. Every failure mode maps to a status
// the till UI can act on: 422 for bad input, 404 for a vanished item, 409
// for an out-of-stock race losing the sale.
func (bc *BillController) Create(c *ctx.Context) {
	var input services.CreateBillInput
	if !c.BindJSON(&input) {
		return
	}

	result, err := bc.billing.CreateBill(c.Context(), input)
	if err != nil {
		var notFound *services.ItemNotFoundError
		var insufficient *services.InsufficientStockError
		switch {
		case errors.Is(err, services.ErrEmptyBill), errors.Is(err, services.ErrInvalidQuantity):
			c.Error(http.StatusUnprocessableEntity, err.Error())
		case errors.As(err, &notFound):
			c.NotFound(err.Error())
		case errors.As(err, &insufficient):
			c.Error(http.StatusConflict, err.Error())
		default:
			c.Error(http.StatusInternalServerError, "could not create bill")
		}
		return
	}

	c.Created(result)
}

func (bc *BillController) Index(c *ctx.Context) {
	filter := repositories.BillFilter{
		Customer: c.Query("customer"),
		Page:     atoiDefault(c.DefaultQuery("page", "1"), 1),
		PerPage:  atoiDefault(c.DefaultQuery("per_page", "20"), 20),
	}
	if from := c.Query("date_from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.Error(http.StatusUnprocessableEntity, "date_from must be YYYY-MM-DD")
			return
		}
		filter.DateFrom = &t
	}
	if to := c.Query("date_to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.Error(http.StatusUnprocessableEntity, "date_to must be YYYY-MM-DD")
			return
		}
		filter.DateTo = &t
	}

	bills, pagination, err := bc.bills.List(filter)
	if err != nil {
		c.Error(http.StatusInternalServerError, "could not list bills")
		return
	}
	response.Paginated(c.W, bills, pagination)
}

func (bc *BillController) Show(c *ctx.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(http.StatusUnprocessableEntity, "invalid bill id")
		return
	}

	bill, err := bc.bills.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.NotFound()
			return
		}
		c.Error(http.StatusInternalServerError, "could not load bill")
		return
	}
	c.Success(bill)
}

// Download serves the printable HTML document for a bill. The archived
// copy from the delivery job is preferred; otherwise it is rendered fresh.
func (bc *BillController) Download(c *ctx.Context) {
	bill, err := bc.bills.FindByNumber(c.Param("number"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.NotFound()
			return
		}
		c.Error(http.StatusInternalServerError, "could not load bill")
		return
	}

	name := documents.FileName(bill)
	doc, err := storage.Get("bills/" + name)
	if err != nil {
		doc, err = documents.RenderBill(bill)
		if err != nil {
			c.Error(http.StatusInternalServerError, "could not render bill")
			return
		}
	}

	c.SetHeader("Content-Type", "text/html; charset=utf-8")
	c.SetHeader("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Status(http.StatusOK)
	c.W.Write(doc) //nolint:errcheck
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
