package repositories

import (
	"time"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/models"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/response"
	"gorm.io/gorm"
)

// BillFilter narrows bill listings.
type BillFilter struct {
	Customer string     // icontains match on customer name
	DateFrom *time.Time // inclusive, start of day
	DateTo   *time.Time // inclusive, whole day
	Page     int
	PerPage  int
}

// BillRepository handles read access to committed bills. Writes happen only
// inside the billing engine's transaction; bills are never mutated here.
type BillRepository struct {
	db *gorm.DB
}

func NewBillRepository(db *gorm.DB) *BillRepository {
	return &BillRepository{db: db}
}

// NumberExists reports whether a bill number is already taken. The billing
// engine calls this on its own tx; the unique index is the backstop for the
// race two concurrent generators can still lose.
func NumberExists(tx *gorm.DB, number string) (bool, error) {
	var count int64
	err := tx.Model(&models.Bill{}).Where("bill_number = ?", number).Count(&count).Error
	return count > 0, err
}

// List returns bills matching the filter, newest first, paginated.
func (r *BillRepository) List(f BillFilter) ([]models.Bill, response.Pagination, error) {
	q := r.db.Model(&models.Bill{})

	if f.Customer != "" {
		q = q.Where("customer_name LIKE ?", "%"+f.Customer+"%")
	}
	if f.DateFrom != nil {
		q = q.Where("created_at >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		// Include the entire end day.
		q = q.Where("created_at < ?", f.DateTo.AddDate(0, 0, 1))
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	perPage := f.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, response.Pagination{}, err
	}

	var bills []models.Bill
	err := q.Preload("Items").Preload("Items.Item").
		Order("created_at desc").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&bills).Error

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return bills, response.Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}, err
}

// FindByID loads one bill with its lines and their catalog items.
func (r *BillRepository) FindByID(id uint) (models.Bill, error) {
	var bill models.Bill
	err := r.db.Preload("Items").Preload("Items.Item").First(&bill, id).Error
	return bill, err
}

// FindByNumber loads one bill by its externally visible number.
func (r *BillRepository) FindByNumber(number string) (models.Bill, error) {
	var bill models.Bill
	err := r.db.Preload("Items").Preload("Items.Item").
		Where("bill_number = ?", number).First(&bill).Error
	return bill, err
}

// CreatedBetween returns bills in [from, to), oldest first. Used by reports.
func (r *BillRepository) CreatedBetween(from, to time.Time) ([]models.Bill, error) {
	var bills []models.Bill
	err := r.db.Preload("Items").Preload("Items.Item").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at asc").
		Find(&bills).Error
	return bills, err
}
