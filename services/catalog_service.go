package services

import (
	"hostel-backend/models"

	"gorm.io/gorm"
)

// CatalogService serves the read side of hostels and rooms.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// ListHostels returns every hostel by name with its amenities.
func (s *CatalogService) ListHostels() ([]models.Hostel, error) {
	var hostels []models.Hostel
	err := s.DB.Preload("Amenities", func(db *gorm.DB) *gorm.DB {
		return db.Order("amenities.name")
	}).Order("name").Find(&hostels).Error
	return hostels, err
}

func (s *CatalogService) GetHostel(id uint) (*models.Hostel, error) {
	var hostel models.Hostel
	if err := s.DB.Preload("Amenities").First(&hostel, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &hostel, nil
}

// RoomsForHostel lists a hostel's rooms, cheapest first. It is also the only
// set of rooms a booking for that hostel may pick from.
func (s *CatalogService) RoomsForHostel(hostelID uint) ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Where("hostel_id = ?", hostelID).Order("price_per_night, id").Find(&rooms).Error
	return rooms, err
}
