package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hostel-backend/models"
	"hostel-backend/utils"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var defaultAmenities = []string{"Wi-Fi", "Hot shower", "Shared kitchen", "Laundry", "Lockers", "24h security"}

// SeedDatabase inserts the default amenities on an empty catalog and makes
// sure a superuser exists when ADMIN_PASSWORD is configured.
func SeedDatabase(db *gorm.DB, s Settings) {
	// ---------------- Amenities ----------------
	var amenityCount int64
	db.Model(&models.Amenity{}).Count(&amenityCount)
	if amenityCount == 0 {
		amenities := make([]models.Amenity, 0, len(defaultAmenities))
		for _, name := range defaultAmenities {
			amenities = append(amenities, models.Amenity{Name: name})
		}
		if err := db.Create(&amenities).Error; err != nil {
			log.Printf("warning: failed to seed amenities: %v", err)
		} else {
			log.Println("Amenities seeded")
		}
	}

	// ---------------- Superuser ----------------
	if strings.TrimSpace(s.AdminPassword) == "" {
		return
	}
	var superCount int64
	db.Model(&models.User{}).Where("is_superuser = ?", true).Count(&superCount)
	if superCount > 0 {
		return
	}
	hash, err := utils.HashPassword(s.AdminPassword)
	if err != nil {
		log.Printf("warning: failed to hash default admin password: %v", err)
		return
	}
	admin := models.User{
		Username:    s.AdminUsername,
		Email:       s.AdminEmail,
		Password:    hash,
		IsStaff:     true,
		IsSuperuser: true,
		IsActive:    true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("warning: failed to create default admin: %v", err)
		return
	}
	log.Printf("Superuser %q seeded", admin.Username)
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

// resolveDialector picks the driver: MYSQL_URL / DATABASE_URL by scheme, then
// split DB_* variables for MySQL, then a local sqlite file.
func resolveDialector(s Settings) (gorm.Dialector, string, error) {
	raw := strings.TrimSpace(s.MySQLURL)
	if raw == "" {
		raw = strings.TrimSpace(s.DatabaseURL)
	}

	if raw != "" {
		switch {
		case strings.HasPrefix(raw, "mysql://"):
			dsn, err := mysqlDSNFromURL(raw)
			if err != nil {
				return nil, "", err
			}
			return mysql.Open(dsn), "mysql", nil
		case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
			return postgres.Open(raw), "postgres", nil
		case strings.HasPrefix(raw, "sqlite://"):
			return sqlite.Open(strings.TrimPrefix(raw, "sqlite://")), "sqlite", nil
		}
		// bare go-sql-driver DSN
		return mysql.Open(raw), "mysql", nil
	}

	if strings.TrimSpace(s.DBHost) != "" {
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			s.DBUser, s.DBPass, s.DBHost, s.DBPort, s.DBName,
		)
		return mysql.Open(dsn), "mysql", nil
	}

	if s.SQLitePath == "" {
		return nil, "", errors.New("no database configured")
	}
	return sqlite.Open(s.SQLitePath + "?_pragma=foreign_keys(1)"), "sqlite", nil
}

// Migrate creates or updates the schema, parents before children.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Amenity{},
		&models.Hostel{},
		&models.Room{},
		&models.Booking{},
	)
}

func ConnectDatabase(s Settings) (*gorm.DB, error) {
	dialector, driver, err := resolveDialector(s)
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if s.Debug {
		level = logger.Info
	}
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      level,
			Colorful:      s.Debug,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: newLogger, TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetConnMaxLifetime(10 * time.Minute)
		if driver == "sqlite" {
			sqlDB.SetMaxOpenConns(1)
		}
	} else {
		log.Printf("info: cannot get raw sql.DB: %v", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	SeedDatabase(db, s)

	log.Printf("Database ready (%s)", driver)
	return db, nil
}
