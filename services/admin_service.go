package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hostel-backend/models"
	"hostel-backend/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var maxRoomPrice = decimal.RequireFromString("999999.99")

type AmenityInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

type HostelInput struct {
	Name        string      `json:"name" validate:"required,max=200"`
	City        string      `json:"city" validate:"required,max=100"`
	Address     string      `json:"address" validate:"required,max=255"`
	Description string      `json:"description"`
	AmenityIDs  []uint      `json:"amenities"`
	Rooms       []RoomInput `json:"rooms" validate:"-"`
}

// RoomInput.HostelID is ignored for rooms created inline with a hostel.
type RoomInput struct {
	HostelID      uint                `json:"hostel"`
	Name          string              `json:"name" validate:"required,max=100"`
	Beds          int                 `json:"beds" validate:"gte=1"`
	PricePerNight decimal.NullDecimal `json:"price_per_night"`
	IsPrivate     bool                `json:"is_private"`
}

type RoomFilter struct {
	HostelID  uint
	IsPrivate *bool
}

type BookingFilter struct {
	HostelID    uint
	RoomID      uint
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Query       string
}

type AdminCounts struct {
	Users     int64 `json:"users"`
	Amenities int64 `json:"amenities"`
	Hostels   int64 `json:"hostels"`
	Rooms     int64 `json:"rooms"`
	Bookings  int64 `json:"bookings"`
	Paid      int64 `json:"paid_bookings"`
}

// AdminService backs the staff-only management screens.
type AdminService struct {
	DB *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{DB: db}
}

func (s *AdminService) Counts() (AdminCounts, error) {
	var out AdminCounts
	for _, q := range []struct {
		model    any
		dst      *int64
		paidOnly bool
	}{
		{&models.User{}, &out.Users, false},
		{&models.Amenity{}, &out.Amenities, false},
		{&models.Hostel{}, &out.Hostels, false},
		{&models.Room{}, &out.Rooms, false},
		{&models.Booking{}, &out.Bookings, false},
		{&models.Booking{}, &out.Paid, true},
	} {
		tx := s.DB.Model(q.model)
		if q.paidOnly {
			tx = tx.Where("is_paid = ?", true)
		}
		if err := tx.Count(q.dst).Error; err != nil {
			return out, err
		}
	}
	return out, nil
}

// ----------------------------------------------------
// Amenities
// ----------------------------------------------------

func (s *AdminService) ListAmenities(q string) ([]models.Amenity, error) {
	var amenities []models.Amenity
	tx := s.DB.Order("name")
	if q = strings.TrimSpace(q); q != "" {
		tx = tx.Where("LOWER(name) LIKE ?", likePattern(q))
	}
	err := tx.Find(&amenities).Error
	return amenities, err
}

func (s *AdminService) CreateAmenity(in AmenityInput) (*models.Amenity, error) {
	in.Name = strings.TrimSpace(in.Name)
	if errs := utils.ValidateForm(in); !errs.Empty() {
		return nil, errs
	}
	amenity := models.Amenity{Name: in.Name}
	if err := s.DB.Create(&amenity).Error; err != nil {
		if isDuplicateKey(err) {
			errs := utils.FormErrors{}
			errs.Add("name", "Amenity with this Name already exists.")
			return nil, errs
		}
		return nil, err
	}
	return &amenity, nil
}

func (s *AdminService) DeleteAmenity(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM hostel_amenities WHERE amenity_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Amenity{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ----------------------------------------------------
// Hostels
// ----------------------------------------------------

func (s *AdminService) ListHostels(q string) ([]models.Hostel, error) {
	var hostels []models.Hostel
	tx := s.DB.Preload("Amenities").Order("name")
	if q = strings.TrimSpace(q); q != "" {
		p := likePattern(q)
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(city) LIKE ?", p, p)
	}
	err := tx.Find(&hostels).Error
	return hostels, err
}

// GetHostel loads a hostel with amenities and its rooms inline.
func (s *AdminService) GetHostel(id uint) (*models.Hostel, error) {
	var hostel models.Hostel
	err := s.DB.Preload("Amenities").Preload("Rooms", func(db *gorm.DB) *gorm.DB {
		return db.Order("price_per_night, id")
	}).First(&hostel, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &hostel, nil
}

func (s *AdminService) CreateHostel(in HostelInput) (*models.Hostel, error) {
	in = trimHostel(in)
	errs := utils.ValidateForm(in)
	amenities, err := s.amenitiesFor(in.AmenityIDs, errs)
	if err != nil {
		return nil, err
	}
	rooms := make([]models.Room, 0, len(in.Rooms))
	for i, r := range in.Rooms {
		r.Name = strings.TrimSpace(r.Name)
		for field, msgs := range validateRoom(r) {
			for _, msg := range msgs {
				errs.Add(fmt.Sprintf("rooms[%d].%s", i, field), msg)
			}
		}
		rooms = append(rooms, models.Room{
			Name:          r.Name,
			Beds:          r.Beds,
			PricePerNight: r.PricePerNight.Decimal,
			IsPrivate:     r.IsPrivate,
		})
	}
	if !errs.Empty() {
		return nil, errs
	}

	hostel := models.Hostel{
		Name:        in.Name,
		City:        in.City,
		Address:     in.Address,
		Description: in.Description,
		Amenities:   amenities,
		Rooms:       rooms,
	}
	if err := s.DB.Create(&hostel).Error; err != nil {
		return nil, fmt.Errorf("create hostel: %w", err)
	}
	return &hostel, nil
}

func (s *AdminService) UpdateHostel(id uint, in HostelInput) (*models.Hostel, error) {
	var hostel models.Hostel
	if err := s.DB.First(&hostel, id).Error; err != nil {
		return nil, notFound(err)
	}

	in = trimHostel(in)
	errs := utils.ValidateForm(in)
	amenities, err := s.amenitiesFor(in.AmenityIDs, errs)
	if err != nil {
		return nil, err
	}
	if !errs.Empty() {
		return nil, errs
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&hostel).Updates(map[string]interface{}{
			"name":        in.Name,
			"city":        in.City,
			"address":     in.Address,
			"description": in.Description,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&hostel).Association("Amenities").Replace(amenities)
	})
	if err != nil {
		return nil, fmt.Errorf("update hostel %d: %w", id, err)
	}
	return s.GetHostel(id)
}

// DeleteHostel removes the hostel together with its rooms, their bookings and
// the hostel's own bookings.
func (s *AdminService) DeleteHostel(id uint) (*models.Hostel, error) {
	var hostel models.Hostel
	if err := s.DB.Preload("Rooms").First(&hostel, id).Error; err != nil {
		return nil, notFound(err)
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		rooms := tx.Model(&models.Room{}).Select("id").Where("hostel_id = ?", id)
		if err := tx.Where("hostel_id = ? OR room_id IN (?)", id, rooms).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("hostel_id = ?", id).Delete(&models.Room{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&hostel).Association("Amenities").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Hostel{}, id).Error
	})
	if err != nil {
		return nil, fmt.Errorf("delete hostel %d: %w", id, err)
	}
	return &hostel, nil
}

// SetHostelImage swaps the stored image path and returns the previous one.
func (s *AdminService) SetHostelImage(id uint, path string) (string, error) {
	var hostel models.Hostel
	if err := s.DB.First(&hostel, id).Error; err != nil {
		return "", notFound(err)
	}
	old := hostel.Image
	if err := s.DB.Model(&hostel).Update("image", path).Error; err != nil {
		return "", err
	}
	return old, nil
}

// ----------------------------------------------------
// Rooms
// ----------------------------------------------------

func (s *AdminService) ListRooms(f RoomFilter) ([]models.Room, error) {
	var rooms []models.Room
	tx := s.DB.Preload("Hostel").Order("hostel_id, name")
	if f.HostelID != 0 {
		tx = tx.Where("hostel_id = ?", f.HostelID)
	}
	if f.IsPrivate != nil {
		tx = tx.Where("is_private = ?", *f.IsPrivate)
	}
	err := tx.Find(&rooms).Error
	return rooms, err
}

func (s *AdminService) CreateRoom(in RoomInput) (*models.Room, error) {
	in.Name = strings.TrimSpace(in.Name)
	errs := validateRoom(in)
	if err := s.checkHostel(in.HostelID, errs); err != nil {
		return nil, err
	}
	if !errs.Empty() {
		return nil, errs
	}
	room := models.Room{
		HostelID:      in.HostelID,
		Name:          in.Name,
		Beds:          in.Beds,
		PricePerNight: in.PricePerNight.Decimal,
		IsPrivate:     in.IsPrivate,
	}
	if err := s.DB.Omit("Hostel").Create(&room).Error; err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}
	return &room, nil
}

// UpdateRoom may move a room to another hostel. Existing bookings keep their
// own hostel_id.
func (s *AdminService) UpdateRoom(id uint, in RoomInput) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		return nil, notFound(err)
	}
	in.Name = strings.TrimSpace(in.Name)
	errs := validateRoom(in)
	if err := s.checkHostel(in.HostelID, errs); err != nil {
		return nil, err
	}
	if !errs.Empty() {
		return nil, errs
	}
	err := s.DB.Model(&room).Updates(map[string]interface{}{
		"hostel_id":       in.HostelID,
		"name":            in.Name,
		"beds":            in.Beds,
		"price_per_night": in.PricePerNight.Decimal,
		"is_private":      in.IsPrivate,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("update room %d: %w", id, err)
	}
	if err := s.DB.Preload("Hostel").First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *AdminService) DeleteRoom(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		return nil, notFound(err)
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		return tx.Delete(&room).Error
	})
	if err != nil {
		return nil, fmt.Errorf("delete room %d: %w", id, err)
	}
	return &room, nil
}

func (s *AdminService) SetRoomImage(id uint, path string) (string, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		return "", notFound(err)
	}
	old := room.Image
	if err := s.DB.Model(&room).Update("image", path).Error; err != nil {
		return "", err
	}
	return old, nil
}

// ----------------------------------------------------
// Bookings
// ----------------------------------------------------

func (s *AdminService) ListBookings(f BookingFilter) ([]models.Booking, error) {
	var bookings []models.Booking
	tx := s.DB.Model(&models.Booking{}).
		Preload("Hostel").Preload("Room").Preload("User").
		Order("bookings.created_at DESC, bookings.id DESC")
	if f.HostelID != 0 {
		tx = tx.Where("bookings.hostel_id = ?", f.HostelID)
	}
	if f.RoomID != 0 {
		tx = tx.Where("bookings.room_id = ?", f.RoomID)
	}
	if f.CreatedFrom != nil {
		tx = tx.Where("bookings.created_at >= ?", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		tx = tx.Where("bookings.created_at < ?", *f.CreatedTo)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		p := likePattern(q)
		tx = tx.Joins("LEFT JOIN users ON users.id = bookings.user_id").
			Where("LOWER(bookings.guest_name) LIKE ? OR LOWER(bookings.guest_email) LIKE ? OR LOWER(users.username) LIKE ? OR LOWER(users.email) LIKE ?", p, p, p, p)
	}
	err := tx.Select("bookings.*").Find(&bookings).Error
	return bookings, err
}

func (s *AdminService) GetBooking(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Hostel").Preload("Room").Preload("User").First(&booking, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &booking, nil
}

func (s *AdminService) DeleteBooking(id uint) error {
	res := s.DB.Delete(&models.Booking{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ----------------------------------------------------
// helpers
// ----------------------------------------------------

func (s *AdminService) amenitiesFor(ids []uint, errs utils.FormErrors) ([]models.Amenity, error) {
	amenities := []models.Amenity{}
	if len(ids) == 0 {
		return amenities, nil
	}
	if err := s.DB.Where("id IN ?", ids).Find(&amenities).Error; err != nil {
		return nil, err
	}
	found := make(map[uint]bool, len(amenities))
	for _, a := range amenities {
		found[a.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			errs.Add("amenities", fmt.Sprintf("Select a valid choice. %d is not one of the available choices.", id))
		}
	}
	return amenities, nil
}

func (s *AdminService) checkHostel(id uint, errs utils.FormErrors) error {
	if id == 0 {
		errs.Add("hostel", utils.MsgRequired)
		return nil
	}
	var hostel models.Hostel
	err := s.DB.Select("id").First(&hostel, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		errs.Add("hostel", utils.MsgInvalidChoice)
		return nil
	}
	return err
}

func validateRoom(in RoomInput) utils.FormErrors {
	errs := utils.ValidateForm(in)
	if !in.PricePerNight.Valid {
		errs.Add("price_per_night", utils.MsgRequired)
		return errs
	}
	p := in.PricePerNight.Decimal
	switch {
	case p.IsNegative():
		errs.Add("price_per_night", "Ensure this value is greater than or equal to 0.")
	case p.Exponent() < -2 && !p.Equal(p.Round(2)):
		errs.Add("price_per_night", "Ensure that there are no more than 2 decimal places.")
	case p.GreaterThan(maxRoomPrice):
		errs.Add("price_per_night", "Ensure that there are no more than 8 digits in total.")
	}
	return errs
}

func trimHostel(in HostelInput) HostelInput {
	in.Name = strings.TrimSpace(in.Name)
	in.City = strings.TrimSpace(in.City)
	in.Address = strings.TrimSpace(in.Address)
	in.Description = strings.TrimSpace(in.Description)
	return in
}

func likePattern(q string) string {
	return "%" + strings.ToLower(q) + "%"
}
