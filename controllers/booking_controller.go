package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"hostel-backend/middleware"
	"hostel-backend/models"
	"hostel-backend/services"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	BookingSvc *services.BookingService
	CatalogSvc *services.CatalogService
	ReceiptSvc *services.ReceiptService
}

func NewBookingController(bookings *services.BookingService, catalog *services.CatalogService, receipts *services.ReceiptService) *BookingController {
	return &BookingController{BookingSvc: bookings, CatalogSvc: catalog, ReceiptSvc: receipts}
}

// ---------------------------
// Booking creation
// ---------------------------

// BookingForm (GET /hostels/:id/book/)
func (ctrl *BookingController) BookingForm(c *gin.Context) {
	hostel, rooms, ok := ctrl.loadHostel(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"hostel": newHostelView(*hostel),
		"form": gin.H{
			"fields": []string{"guest_name", "guest_email", "check_in", "check_out", "guests", "room"},
			"rooms":  newRoomViews(rooms),
		},
	})
}

// CreateBooking (POST /hostels/:id/book/)
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	hostel, _, ok := ctrl.loadHostel(c)
	if !ok {
		return
	}
	var in services.BookingInput
	if !bindForm(c, &in) {
		return
	}
	user := middleware.CurrentUser(c)
	booking, err := ctrl.BookingSvc.Create(user.ID, hostel, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, successURL(booking.ID))
}

func (ctrl *BookingController) loadHostel(c *gin.Context) (*models.Hostel, []models.Room, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, nil, false
	}
	hostel, err := ctrl.CatalogSvc.GetHostel(id)
	if err != nil {
		respondError(c, err)
		return nil, nil, false
	}
	rooms, err := ctrl.CatalogSvc.RoomsForHostel(hostel.ID)
	if err != nil {
		respondError(c, err)
		return nil, nil, false
	}
	return hostel, rooms, true
}

// ---------------------------
// Owned booking views
// ---------------------------

// BookingSuccess (GET /bookings/:id/success/)
func (ctrl *BookingController) BookingSuccess(c *gin.Context) {
	booking, ok := ctrl.ownedBooking(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": newBookingView(*booking)})
}

// ListBookings (GET /bookings/) is the current user's booking history.
func (ctrl *BookingController) ListBookings(c *gin.Context) {
	user := middleware.CurrentUser(c)
	bookings, err := ctrl.BookingSvc.ListForUser(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	views := make([]bookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, newBookingView(b))
	}
	c.JSON(http.StatusOK, gin.H{"bookings": views})
}

// PaymentPage (GET /bookings/:id/payment/)
func (ctrl *BookingController) PaymentPage(c *gin.Context) {
	booking, ok := ctrl.ownedBooking(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking": newBookingView(*booking),
		"form": gin.H{
			"fields":  []string{"method", "confirm"},
			"methods": services.PaymentMethods,
			"confirm": "I confirm the payment amount.",
		},
	})
}

// ConfirmPayment (POST /bookings/:id/payment/) marks the booking paid. There is
// no gateway; a valid confirmation is enough.
func (ctrl *BookingController) ConfirmPayment(c *gin.Context) {
	booking, ok := ctrl.ownedBooking(c)
	if !ok {
		return
	}
	var in services.PaymentInput
	if !bindForm(c, &in) {
		return
	}
	if err := ctrl.BookingSvc.Pay(booking, in); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, successURL(booking.ID))
}

// Receipt (GET /bookings/:id/receipt/) downloads the PDF, or sends unpaid
// bookings to the payment step.
func (ctrl *BookingController) Receipt(c *gin.Context) {
	booking, ok := ctrl.ownedBooking(c)
	if !ok {
		return
	}
	if !booking.IsPaid {
		c.Redirect(http.StatusFound, fmt.Sprintf("/bookings/%d/payment/", booking.ID))
		return
	}

	var buf bytes.Buffer
	if err := ctrl.ReceiptSvc.Render(&buf, booking); err != nil {
		respondError(c, fmt.Errorf("render receipt for booking %d: %w", booking.ID, err))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="receipt-%d.pdf"`, booking.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (ctrl *BookingController) ownedBooking(c *gin.Context) (*models.Booking, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}
	user := middleware.CurrentUser(c)
	booking, err := ctrl.BookingSvc.GetForUser(id, user.ID)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return booking, true
}

func successURL(id uint) string {
	return fmt.Sprintf("/bookings/%d/success/", id)
}
