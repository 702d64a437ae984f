package controllers

import (
	"fmt"
	"time"

	"hostel-backend/models"
)

type hostelView struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	City        string   `json:"city"`
	Address     string   `json:"address"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url,omitempty"`
	Amenities   []string `json:"amenities"`
	URL         string   `json:"url"`
	BookURL     string   `json:"book_url"`
}

type roomView struct {
	ID            uint   `json:"id"`
	HostelID      uint   `json:"hostel_id"`
	Name          string `json:"name"`
	Beds          int    `json:"beds"`
	PricePerNight string `json:"price_per_night"`
	IsPrivate     bool   `json:"is_private"`
	ImageURL      string `json:"image_url,omitempty"`
}

type bookingView struct {
	ID            uint       `json:"id"`
	Hostel        ref        `json:"hostel"`
	Room          ref        `json:"room"`
	GuestName     string     `json:"guest_name"`
	GuestEmail    string     `json:"guest_email"`
	CheckIn       string     `json:"check_in"`
	CheckOut      string     `json:"check_out"`
	Guests        int        `json:"guests"`
	Nights        int        `json:"nights"`
	TotalPrice    string     `json:"total_price"`
	CreatedAt     time.Time  `json:"created_at"`
	IsPaid        bool       `json:"is_paid"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	AmountPaid    *string    `json:"amount_paid,omitempty"`
	ReceiptNumber string     `json:"receipt_number,omitempty"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	PaymentURL    string     `json:"payment_url"`
	ReceiptURL    string     `json:"receipt_url,omitempty"`
}

type ref struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func mediaURL(path string) string {
	if path == "" {
		return ""
	}
	return "/media/" + path
}

func newHostelView(h models.Hostel) hostelView {
	names := make([]string, 0, len(h.Amenities))
	for _, a := range h.Amenities {
		names = append(names, a.Name)
	}
	return hostelView{
		ID:          h.ID,
		Name:        h.Name,
		City:        h.City,
		Address:     h.Address,
		Description: h.Description,
		ImageURL:    mediaURL(h.Image),
		Amenities:   names,
		URL:         fmt.Sprintf("/hostels/%d/", h.ID),
		BookURL:     fmt.Sprintf("/hostels/%d/book/", h.ID),
	}
}

func newRoomView(r models.Room) roomView {
	return roomView{
		ID:            r.ID,
		HostelID:      r.HostelID,
		Name:          r.Name,
		Beds:          r.Beds,
		PricePerNight: r.PricePerNight.StringFixed(2),
		IsPrivate:     r.IsPrivate,
		ImageURL:      mediaURL(r.Image),
	}
}

func newRoomViews(rooms []models.Room) []roomView {
	out := make([]roomView, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, newRoomView(r))
	}
	return out
}

func newBookingView(b models.Booking) bookingView {
	v := bookingView{
		ID:            b.ID,
		Hostel:        ref{ID: b.HostelID, Name: b.Hostel.Name},
		Room:          ref{ID: b.RoomID, Name: b.Room.Name},
		GuestName:     b.GuestName,
		GuestEmail:    b.GuestEmail,
		CheckIn:       models.FormatDate(b.CheckIn),
		CheckOut:      models.FormatDate(b.CheckOut),
		Guests:        b.Guests,
		Nights:        b.Nights(),
		TotalPrice:    b.TotalPrice().StringFixed(2),
		CreatedAt:     b.CreatedAt,
		IsPaid:        b.IsPaid,
		PaidAt:        b.PaidAt,
		ReceiptNumber: b.ReceiptNumber,
		PaymentMethod: b.PaymentMethod,
		PaymentURL:    fmt.Sprintf("/bookings/%d/payment/", b.ID),
	}
	if b.AmountPaid.Valid {
		amount := b.AmountPaid.Decimal.StringFixed(2)
		v.AmountPaid = &amount
	}
	if b.IsPaid {
		v.ReceiptURL = fmt.Sprintf("/bookings/%d/receipt/", b.ID)
	}
	return v
}
