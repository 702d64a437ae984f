package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBooking() Booking {
	return Booking{
		ID:       7,
		HostelID: 1,
		RoomID:   2,
		CheckIn:  NewDate(2024, time.January, 1),
		CheckOut: NewDate(2024, time.January, 4),
		Guests:   1,
		Hostel:   Hostel{ID: 1, Name: "Kariakoo Hub", City: "Dar es Salaam"},
		Room:     Room{ID: 2, HostelID: 1, Name: "Dorm A", Beds: 6, PricePerNight: decimal.RequireFromString("20000.00")},
	}
}

func TestBookingNightsAndTotal(t *testing.T) {
	b := sampleBooking()

	assert.Equal(t, 3, b.Nights())
	assert.True(t, b.TotalPrice().Equal(decimal.RequireFromString("60000.00")), "got %s", b.TotalPrice())
}

func TestBookingNightsAcrossMonthAndLeapDay(t *testing.T) {
	b := sampleBooking()
	b.CheckIn = NewDate(2024, time.February, 27)
	b.CheckOut = NewDate(2024, time.March, 2)

	assert.Equal(t, 4, b.Nights())
}

func TestBookingNightsIgnoresTimeOfDay(t *testing.T) {
	b := sampleBooking()
	loc := time.FixedZone("EAT", 3*60*60)
	b.CheckIn = NewDateFrom(time.Date(2024, time.May, 10, 23, 30, 0, 0, loc))
	b.CheckOut = NewDateFrom(time.Date(2024, time.May, 12, 0, 15, 0, 0, loc))

	assert.Equal(t, 2, b.Nights())
}

func TestMarkPaidAssignsReceiptOnce(t *testing.T) {
	b := sampleBooking()
	first := time.Date(2024, time.January, 5, 9, 30, 0, 0, time.UTC)

	b.MarkPaid(first)
	require.True(t, b.IsPaid)
	require.NotNil(t, b.PaidAt)
	assert.Equal(t, first, *b.PaidAt)
	assert.Equal(t, "RCPT-000007", b.ReceiptNumber)
	require.True(t, b.AmountPaid.Valid)
	assert.True(t, b.AmountPaid.Decimal.Equal(decimal.NewFromInt(60000)))

	b.Room.PricePerNight = decimal.RequireFromString("25000.00")
	second := first.Add(time.Hour)
	b.MarkPaid(second)

	assert.Equal(t, "RCPT-000007", b.ReceiptNumber)
	assert.Equal(t, second, *b.PaidAt)
	assert.True(t, b.AmountPaid.Decimal.Equal(decimal.NewFromInt(75000)))
}

func TestMarkPaidKeepsExistingReceiptNumber(t *testing.T) {
	b := sampleBooking()
	b.ReceiptNumber = "MANUAL-1"

	b.MarkPaid(time.Now())

	assert.Equal(t, "MANUAL-1", b.ReceiptNumber)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-04")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-04", FormatDate(d))

	_, err = ParseDate("04/01/2024")
	assert.Error(t, err)
}

func TestStringers(t *testing.T) {
	b := sampleBooking()
	b.GuestName = "Asha"

	assert.Equal(t, "Asha - Kariakoo Hub (2024-01-01 to 2024-01-04)", b.String())
	assert.Equal(t, "Kariakoo Hub (Dar es Salaam)", b.Hostel.String())
	assert.Equal(t, "Dorm A", b.Room.String())
}
