package models

import "fmt"

// Hostel is a root catalog entity; rooms and bookings hang off it.
type Hostel struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:200;not null" json:"name"`
	City        string `gorm:"size:100;not null" json:"city"`
	Address     string `gorm:"size:255;not null" json:"address"`
	Description string `gorm:"type:text" json:"description"`
	// Image is a path relative to MEDIA_ROOT, e.g. "hostels/<uuid>.jpg".
	Image string `gorm:"size:255" json:"image,omitempty"`

	Amenities []Amenity `gorm:"many2many:hostel_amenities;" json:"amenities"`
	Rooms     []Room    `gorm:"foreignKey:HostelID;constraint:OnDelete:CASCADE;" json:"rooms,omitempty"`
}

func (h Hostel) String() string {
	return fmt.Sprintf("%s (%s)", h.Name, h.City)
}
