package services

import (
	"cashback-service/internal/models"

	"gorm.io/gorm"
)

// CatalogService is the read-only collaborator surface into the offer
// catalog. Catalog CRUD lives in another system; this service only
// resolves an offer to its store, category and tracking URL.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

func (s *CatalogService) GetOffer(offerId int) (*models.Offer, error) {
	var offer models.Offer
	if err := s.DB.Preload("Store").First(&offer, offerId).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}
