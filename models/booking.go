package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const DateLayout = "2006-01-02"

// Booking reserves a room for a date range. HostelID is stored separately from
// Room.HostelID; nothing keeps the two in sync after creation.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID   *uint `gorm:"column:user_id;index" json:"user_id,omitempty"`
	HostelID uint  `gorm:"column:hostel_id;index;not null" json:"hostel_id"`
	RoomID   uint  `gorm:"column:room_id;index;not null" json:"room_id"`

	GuestName  string         `gorm:"column:guest_name;size:120;not null" json:"guest_name"`
	GuestEmail string         `gorm:"column:guest_email;size:254;not null" json:"guest_email"`
	CheckIn    datatypes.Date `gorm:"column:check_in;not null" json:"check_in"`
	CheckOut   datatypes.Date `gorm:"column:check_out;not null" json:"check_out"`
	Guests     int            `gorm:"not null;check:guests >= 1" json:"guests"`
	CreatedAt  time.Time      `json:"created_at"`

	IsPaid        bool                `gorm:"column:is_paid;default:false" json:"is_paid"`
	PaidAt        *time.Time          `gorm:"column:paid_at" json:"paid_at,omitempty"`
	AmountPaid    decimal.NullDecimal `gorm:"column:amount_paid;type:decimal(8,2)" json:"amount_paid"`
	ReceiptNumber string              `gorm:"column:receipt_number;size:32;default:''" json:"receipt_number"`
	PaymentMethod string              `gorm:"column:payment_method;size:16;default:''" json:"payment_method,omitempty"`

	User   *User  `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	Hostel Hostel `gorm:"foreignKey:HostelID;references:ID;constraint:OnDelete:CASCADE;" json:"hostel"`
	Room   Room   `gorm:"foreignKey:RoomID;references:ID;constraint:OnDelete:CASCADE;" json:"room"`
}

func (b Booking) String() string {
	return fmt.Sprintf("%s - %s (%s to %s)", b.GuestName, b.Hostel.Name, FormatDate(b.CheckIn), FormatDate(b.CheckOut))
}

// Nights is the number of calendar days between check-in and check-out.
func (b Booking) Nights() int {
	in, out := calendarDay(b.CheckIn), calendarDay(b.CheckOut)
	return int(out.Sub(in).Hours() / 24)
}

// TotalPrice needs Room to be loaded.
func (b Booking) TotalPrice() decimal.Decimal {
	return b.Room.PricePerNight.Mul(decimal.NewFromInt(int64(b.Nights())))
}

// MarkPaid moves the booking into the paid state. Calling it again refreshes
// PaidAt and AmountPaid but keeps an already assigned receipt number.
func (b *Booking) MarkPaid(now time.Time) {
	b.IsPaid = true
	b.PaidAt = &now
	b.AmountPaid = decimal.NewNullDecimal(b.TotalPrice())
	if b.ReceiptNumber == "" {
		b.ReceiptNumber = ReceiptNumberFor(b.ID)
	}
}

func ReceiptNumberFor(id uint) string {
	return fmt.Sprintf("RCPT-%06d", id)
}

func FormatDate(d datatypes.Date) string {
	return calendarDay(d).Format(DateLayout)
}

// NewDate builds a datatypes.Date at midnight UTC.
func NewDate(year int, month time.Month, day int) datatypes.Date {
	return datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// NewDateFrom keeps only the calendar day of t, in t's own location.
func NewDateFrom(t time.Time) datatypes.Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD form value.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

func calendarDay(d datatypes.Date) time.Time {
	t := time.Time(d)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
