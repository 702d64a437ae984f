// Package testutil holds shared fixtures for package tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"hostel-backend/config"
	"hostel-backend/models"
	"hostel-backend/utils"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewDB opens a private in-memory sqlite database with the full schema.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", name, dbSeq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

// CreateUser stores a user whose password is "s3cret-pass".
func CreateUser(t *testing.T, db *gorm.DB, username string, staff bool) *models.User {
	t.Helper()
	hash, err := utils.HashPassword(Password)
	require.NoError(t, err)
	u := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
		IsStaff:  staff,
		IsActive: true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

const Password = "s3cret-pass"

func CreateHostel(t *testing.T, db *gorm.DB, name, city string) *models.Hostel {
	t.Helper()
	h := &models.Hostel{Name: name, City: city, Address: "1 " + name + " Street"}
	require.NoError(t, db.Create(h).Error)
	return h
}

func CreateRoom(t *testing.T, db *gorm.DB, hostel *models.Hostel, name, price string) *models.Room {
	t.Helper()
	r := &models.Room{
		HostelID:      hostel.ID,
		Name:          name,
		Beds:          4,
		PricePerNight: decimal.RequireFromString(price),
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

// CreateBooking stores a 2024-01-01 to 2024-01-04 booking of room for user.
func CreateBooking(t *testing.T, db *gorm.DB, user *models.User, room *models.Room) *models.Booking {
	t.Helper()
	b := &models.Booking{
		HostelID:   room.HostelID,
		RoomID:     room.ID,
		GuestName:  "Asha Guest",
		GuestEmail: "asha@example.com",
		CheckIn:    models.NewDate(2024, time.January, 1),
		CheckOut:   models.NewDate(2024, time.January, 4),
		Guests:     1,
	}
	if user != nil {
		b.UserID = &user.ID
	}
	require.NoError(t, db.Create(b).Error)
	return b
}
