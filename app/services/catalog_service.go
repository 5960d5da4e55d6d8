package services

import (
	"errors"
	"time"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/models"
	"github.com/Akibsaiyad14/clothsbillingandinventory/app/repositories"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/cache"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/event"
	"gorm.io/gorm"
)

// ErrInvalidCategory and ErrInvalidSize reject enum values outside the
// catalog's fixed sets.
var (
	ErrInvalidCategory = errors.New("catalog: unknown category")
	ErrInvalidSize     = errors.New("catalog: unknown size")
)

const itemListCacheKey = "catalog:items"

// CatalogService manages the cloth item catalog.
type CatalogService struct {
	items *repositories.CatalogRepository
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{items: repositories.NewCatalogRepository(db)}
}

// List returns catalog items matching f. The unfiltered listing is cached;
// every write path below forgets the key.
func (s *CatalogService) List(f repositories.ItemFilter) ([]models.ClothItem, error) {
	unfiltered := f == (repositories.ItemFilter{})
	if unfiltered {
		var cached []models.ClothItem
		if cache.Get(itemListCacheKey, &cached) {
			return cached, nil
		}
	}

	items, err := s.items.List(f)
	if err == nil && unfiltered {
		_ = cache.Set(itemListCacheKey, items, 5*time.Minute)
	}
	return items, err
}

func (s *CatalogService) Get(id uint) (models.ClothItem, error) {
	item, err := s.items.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ClothItem{}, &ItemNotFoundError{ItemID: id}
	}
	return item, err
}

// Create adds a catalog item together with a zero-quantity stock row.
func (s *CatalogService) Create(item *models.ClothItem) error {
	if !item.Category.Valid() {
		return ErrInvalidCategory
	}
	if !item.Size.Valid() {
		return ErrInvalidSize
	}

	if err := s.items.Create(item); err != nil {
		return err
	}

	cache.Forget(itemListCacheKey)
	event.FireAsync(event.ItemCreated, *item)
	return nil
}

func (s *CatalogService) Update(id uint, apply func(*models.ClothItem)) (models.ClothItem, error) {
	item, err := s.Get(id)
	if err != nil {
		return models.ClothItem{}, err
	}

	apply(&item)
	if !item.Category.Valid() {
		return models.ClothItem{}, ErrInvalidCategory
	}
	if !item.Size.Valid() {
		return models.ClothItem{}, ErrInvalidSize
	}

	if err := s.items.Update(&item); err != nil {
		return models.ClothItem{}, err
	}
	cache.Forget(itemListCacheKey)
	return item, nil
}

// Delete removes an item; items referenced by bill lines are protected and
// the delete is rejected with ErrItemHasBillingHistory.
func (s *CatalogService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.items.Delete(id); err != nil {
		return err
	}
	cache.Forget(itemListCacheKey)
	event.FireAsync(event.ItemDeleted, id)
	return nil
}
