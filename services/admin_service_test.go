package services

import (
	"testing"
	"time"

	"hostel-backend/models"
	"hostel-backend/testutil"
	"hostel-backend/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func TestAdminAmenities(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAdminService(db)

	wifi, err := svc.CreateAmenity(AmenityInput{Name: " WiFi "})
	require.NoError(t, err)
	assert.Equal(t, "WiFi", wifi.Name)
	_, err = svc.CreateAmenity(AmenityInput{Name: "Kitchen"})
	require.NoError(t, err)

	_, err = svc.CreateAmenity(AmenityInput{Name: "WiFi"})
	errs, ok := utils.AsFormErrors(err)
	require.True(t, ok)
	assert.True(t, errs.Has("name"))

	found, err := svc.ListAmenities("wi")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "WiFi", found[0].Name)

	hostel, err := svc.CreateHostel(HostelInput{Name: "Moshi Inn", City: "Moshi", Address: "Kibo Rd", AmenityIDs: []uint{wifi.ID}})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteAmenity(wifi.ID))
	assert.ErrorIs(t, svc.DeleteAmenity(wifi.ID), ErrNotFound)

	got, err := svc.GetHostel(hostel.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Amenities)
}

func TestAdminHostelWithInlineRooms(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAdminService(db)
	wifi, err := svc.CreateAmenity(AmenityInput{Name: "WiFi"})
	require.NoError(t, err)
	kitchen, err := svc.CreateAmenity(AmenityInput{Name: "Kitchen"})
	require.NoError(t, err)

	hostel, err := svc.CreateHostel(HostelInput{
		Name:       "Arusha Backpackers",
		City:       "Arusha",
		Address:    "Sokoine Rd",
		AmenityIDs: []uint{wifi.ID},
		Rooms: []RoomInput{
			{Name: "Private", Beds: 1, PricePerNight: price("35000"), IsPrivate: true},
			{Name: "Dorm", Beds: 8, PricePerNight: price("12000.50")},
		},
	})
	require.NoError(t, err)

	got, err := svc.GetHostel(hostel.ID)
	require.NoError(t, err)
	require.Len(t, got.Rooms, 2)
	assert.Equal(t, "Dorm", got.Rooms[0].Name)
	assert.Equal(t, hostel.ID, got.Rooms[0].HostelID)
	require.Len(t, got.Amenities, 1)

	updated, err := svc.UpdateHostel(hostel.ID, HostelInput{
		Name:       "Arusha Backpackers",
		City:       "Arusha",
		Address:    "Sokoine Rd 12",
		AmenityIDs: []uint{kitchen.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Sokoine Rd 12", updated.Address)
	require.Len(t, updated.Amenities, 1)
	assert.Equal(t, "Kitchen", updated.Amenities[0].Name)

	listed, err := svc.ListHostels("ARUSHA")
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestAdminHostelValidation(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAdminService(db)

	_, err := svc.CreateHostel(HostelInput{
		Name:       "Lodge",
		AmenityIDs: []uint{99},
		Rooms:      []RoomInput{{Name: "", Beds: 0, PricePerNight: price("-1")}},
	})
	errs, ok := utils.AsFormErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{utils.MsgRequired}, errs["city"])
	assert.Equal(t, []string{utils.MsgRequired}, errs["address"])
	assert.Equal(t, []string{"Select a valid choice. 99 is not one of the available choices."}, errs["amenities"])
	assert.True(t, errs.Has("rooms[0].name"))
	assert.True(t, errs.Has("rooms[0].beds"))
	assert.True(t, errs.Has("rooms[0].price_per_night"))

	var count int64
	require.NoError(t, db.Model(&models.Hostel{}).Count(&count).Error)
	assert.Zero(t, count)

	_, err = svc.UpdateHostel(42, HostelInput{Name: "x", City: "y", Address: "z"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminRooms(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAdminService(db)
	moshi := testutil.CreateHostel(t, db, "Moshi Inn", "Moshi")
	arusha := testutil.CreateHostel(t, db, "Arusha Backpackers", "Arusha")

	_, err := svc.CreateRoom(RoomInput{Name: "Suite", Beds: 2, PricePerNight: price("1.005")})
	errs, ok := utils.AsFormErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{utils.MsgRequired}, errs["hostel"])
	assert.Equal(t, []string{"Ensure that there are no more than 2 decimal places."}, errs["price_per_night"])

	_, err = svc.CreateRoom(RoomInput{HostelID: 99, Name: "Suite", Beds: 2, PricePerNight: price("1000000")})
	errs, ok = utils.AsFormErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{utils.MsgInvalidChoice}, errs["hostel"])
	assert.True(t, errs.Has("price_per_night"))

	_, err = svc.CreateRoom(RoomInput{HostelID: moshi.ID, Name: "Suite", Beds: 2})
	errs, ok = utils.AsFormErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{utils.MsgRequired}, errs["price_per_night"])

	free, err := svc.CreateRoom(RoomInput{HostelID: moshi.ID, Name: "Staff bunk", Beds: 1, PricePerNight: price("0")})
	require.NoError(t, err)
	assert.True(t, free.PricePerNight.IsZero())

	room, err := svc.CreateRoom(RoomInput{HostelID: moshi.ID, Name: "Suite", Beds: 2, PricePerNight: price("30000.00"), IsPrivate: true})
	require.NoError(t, err)
	_, err = svc.CreateRoom(RoomInput{HostelID: arusha.ID, Name: "Dorm", Beds: 6, PricePerNight: price("9000")})
	require.NoError(t, err)

	private := true
	rooms, err := svc.ListRooms(RoomFilter{IsPrivate: &private})
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "Moshi Inn", rooms[0].Hostel.Name)

	user := testutil.CreateUser(t, db, "asha", false)
	booking := testutil.CreateBooking(t, db, user, room)

	moved, err := svc.UpdateRoom(room.ID, RoomInput{HostelID: arusha.ID, Name: "Suite", Beds: 2, PricePerNight: price("30000.00"), IsPrivate: true})
	require.NoError(t, err)
	assert.Equal(t, arusha.ID, moved.HostelID)
	assert.Equal(t, "Arusha Backpackers", moved.Hostel.Name)

	stored, err := svc.GetBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, moshi.ID, stored.HostelID, "bookings keep their own hostel")

	old, err := svc.SetRoomImage(room.ID, "rooms/a.png")
	require.NoError(t, err)
	assert.Empty(t, old)
	old, err = svc.SetRoomImage(room.ID, "rooms/b.png")
	require.NoError(t, err)
	assert.Equal(t, "rooms/a.png", old)

	deleted, err := svc.DeleteRoom(room.ID)
	require.NoError(t, err)
	assert.Equal(t, "rooms/b.png", deleted.Image)
	_, err = svc.GetBooking(booking.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminDeleteHostelCascades(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAdminService(db)
	user := testutil.CreateUser(t, db, "asha", false)
	moshi := testutil.CreateHostel(t, db, "Moshi Inn", "Moshi")
	other := testutil.CreateHostel(t, db, "Arusha Backpackers", "Arusha")
	room := testutil.CreateRoom(t, db, moshi, "Dorm", "10000")
	keep := testutil.CreateBooking(t, db, user, testutil.CreateRoom(t, db, other, "Bunk", "8000"))
	testutil.CreateBooking(t, db, user, room)

	deleted, err := svc.DeleteHostel(moshi.ID)
	require.NoError(t, err)
	require.Len(t, deleted.Rooms, 1)

	counts, err := svc.Counts()
	require.NoError(t, err)
	assert.Equal(t, AdminCounts{Users: 1, Hostels: 1, Rooms: 1, Bookings: 1}, counts)

	_, err = svc.GetBooking(keep.ID)
	assert.NoError(t, err)
	_, err = svc.DeleteHostel(moshi.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminBookings(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAdminService(db)
	asha := testutil.CreateUser(t, db, "asha", false)
	juma := testutil.CreateUser(t, db, "juma", false)
	hostel := testutil.CreateHostel(t, db, "Moshi Inn", "Moshi")
	room := testutil.CreateRoom(t, db, hostel, "Dorm", "10000")

	first := testutil.CreateBooking(t, db, asha, room)
	second := testutil.CreateBooking(t, db, juma, room)
	require.NoError(t, db.Model(first).Updates(map[string]interface{}{
		"created_at": time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		"is_paid":    true,
	}).Error)
	require.NoError(t, db.Model(second).Update("created_at", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)).Error)

	all, err := svc.ListBookings(BookingFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	require.NotNil(t, all[0].User)
	assert.Equal(t, "juma", all[0].User.Username)

	byUser, err := svc.ListBookings(BookingFilter{Query: "JUMA"})
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, second.ID, byUser[0].ID)

	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	recent, err := svc.ListBookings(BookingFilter{HostelID: hostel.ID, CreatedFrom: &from})
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, second.ID, recent[0].ID)

	counts, err := svc.Counts()
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.Bookings)
	assert.Equal(t, int64(1), counts.Paid)

	require.NoError(t, svc.DeleteBooking(first.ID))
	assert.ErrorIs(t, svc.DeleteBooking(first.ID), ErrNotFound)
}
