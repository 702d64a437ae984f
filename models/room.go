package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Room struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	HostelID uint   `gorm:"column:hostel_id;index;not null" json:"hostel_id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Beds     int    `gorm:"not null;check:beds >= 1" json:"beds"`

	PricePerNight decimal.Decimal `gorm:"column:price_per_night;type:decimal(8,2);not null" json:"price_per_night"`
	IsPrivate     bool            `gorm:"column:is_private;default:false" json:"is_private"`
	Image         string          `gorm:"size:255" json:"image,omitempty"`

	Hostel *Hostel `gorm:"foreignKey:HostelID;references:ID" json:"hostel,omitempty"`
}

func (r Room) String() string {
	if r.Hostel != nil {
		return fmt.Sprintf("%s - %s", r.Hostel.Name, r.Name)
	}
	return r.Name
}
