package controllers

import (
	"net/http"
	"time"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/services"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/ctx"
	"gorm.io/gorm"
)

type ReportController struct {
	reports *services.ReportService
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{reports: services.NewReportService(db)}
}

// Daily returns the sales summary for one calendar day (default today).
func (rc *ReportController) Daily(c *ctx.Context) {
	day := time.Now()
	if d := c.Query("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			c.Error(http.StatusUnprocessableEntity, "date must be YYYY-MM-DD")
			return
		}
		day = parsed
	}

	summary, err := rc.reports.DailySales(day)
	if err != nil {
		c.Error(http.StatusInternalServerError, "could not build report")
		return
	}
	c.Success(summary)
}

// Range returns the sales summary for [from, to] inclusive of both days.
func (rc *ReportController) Range(c *ctx.Context) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		c.Error(http.StatusUnprocessableEntity, "from must be YYYY-MM-DD")
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		c.Error(http.StatusUnprocessableEntity, "to must be YYYY-MM-DD")
		return
	}

	summary, err := rc.reports.SalesBetween(from, to.AddDate(0, 0, 1))
	if err != nil {
		c.Error(http.StatusInternalServerError, "could not build report")
		return
	}
	c.Success(summary)
}
