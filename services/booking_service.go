package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hostel-backend/models"
	"hostel-backend/utils"

	"gorm.io/gorm"
)

var PaymentMethods = []string{"card", "cash", "transfer"}

// BookingInput is the booking form. JSON clients send the same field names.
type BookingInput struct {
	GuestName  string `form:"guest_name" json:"guest_name" validate:"required,max=120"`
	GuestEmail string `form:"guest_email" json:"guest_email" validate:"required,email,max=254"`
	CheckIn    string `form:"check_in" json:"check_in" validate:"required"`
	CheckOut   string `form:"check_out" json:"check_out" validate:"required"`
	Guests     int    `form:"guests" json:"guests" validate:"gte=1"`
	RoomID     uint   `form:"room" json:"room" validate:"required"`
}

// PaymentInput is the payment confirmation form; Confirm takes checkbox values.
type PaymentInput struct {
	Method  string `form:"method" json:"method" validate:"required,oneof=card cash transfer"`
	Confirm string `form:"confirm" json:"confirm"`
}

// BookingService wraps *gorm.DB with the booking lifecycle: create, pay, look up.
type BookingService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db, Now: time.Now}
}

func (s *BookingService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// Create validates in against hostel and stores a booking owned by userID.
// Validation failures come back as utils.FormErrors.
func (s *BookingService) Create(userID uint, hostel *models.Hostel, in BookingInput) (*models.Booking, error) {
	in.GuestName = strings.TrimSpace(in.GuestName)
	in.GuestEmail = strings.TrimSpace(in.GuestEmail)
	in.CheckIn = strings.TrimSpace(in.CheckIn)
	in.CheckOut = strings.TrimSpace(in.CheckOut)

	errs := utils.ValidateForm(in)

	var checkIn, checkOut time.Time
	parsedIn, parsedOut := false, false
	if in.CheckIn != "" {
		if d, err := models.ParseDate(in.CheckIn); err != nil {
			errs.Add("check_in", utils.MsgInvalidDate)
		} else {
			checkIn, parsedIn = time.Time(d), true
		}
	}
	if in.CheckOut != "" {
		if d, err := models.ParseDate(in.CheckOut); err != nil {
			errs.Add("check_out", utils.MsgInvalidDate)
		} else {
			checkOut, parsedOut = time.Time(d), true
		}
	}

	var room models.Room
	if in.RoomID != 0 {
		err := s.DB.Where("id = ? AND hostel_id = ?", in.RoomID, hostel.ID).First(&room).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			errs.Add("room", utils.MsgInvalidChoice)
		case err != nil:
			return nil, fmt.Errorf("load room: %w", err)
		}
	}

	if parsedIn && parsedOut && !checkOut.After(checkIn) {
		errs.AddNonField("Check-out must be after check-in.")
	}
	if !errs.Empty() {
		return nil, errs
	}

	booking := models.Booking{
		UserID:     &userID,
		HostelID:   hostel.ID,
		RoomID:     room.ID,
		GuestName:  in.GuestName,
		GuestEmail: in.GuestEmail,
		CheckIn:    models.NewDateFrom(checkIn),
		CheckOut:   models.NewDateFrom(checkOut),
		Guests:     in.Guests,
	}
	if err := s.DB.Omit("User", "Hostel", "Room").Create(&booking).Error; err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	booking.Hostel = *hostel
	booking.Room = room
	return &booking, nil
}

// GetForUser loads a booking only if userID owns it.
func (s *BookingService) GetForUser(id, userID uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.Preload("Hostel").Preload("Room").
		Where("id = ? AND user_id = ?", id, userID).
		First(&booking).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &booking, nil
}

// ListForUser returns the user's bookings, newest first.
func (s *BookingService) ListForUser(userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Preload("Hostel").Preload("Room").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&bookings).Error
	return bookings, err
}

// Pay validates the payment form and marks the booking paid.
func (s *BookingService) Pay(booking *models.Booking, in PaymentInput) error {
	in.Method = strings.ToLower(strings.TrimSpace(in.Method))
	errs := utils.ValidateForm(in)
	if !utils.IsTruthy(in.Confirm) {
		errs.Add("confirm", utils.MsgRequired)
	}
	if !errs.Empty() {
		return errs
	}
	return s.MarkPaid(booking, in.Method)
}

// MarkPaid persists the paid transition. Room must be loaded so the amount
// reflects the current nightly price. There is no locking: concurrent calls
// both win and the last write stands.
func (s *BookingService) MarkPaid(booking *models.Booking, method string) error {
	booking.MarkPaid(s.now())
	booking.PaymentMethod = method
	err := s.DB.Model(&models.Booking{}).Where("id = ?", booking.ID).Updates(map[string]interface{}{
		"is_paid":        booking.IsPaid,
		"paid_at":        booking.PaidAt,
		"amount_paid":    booking.AmountPaid,
		"receipt_number": booking.ReceiptNumber,
		"payment_method": booking.PaymentMethod,
	}).Error
	if err != nil {
		return fmt.Errorf("mark booking %d paid: %w", booking.ID, err)
	}
	return nil
}
