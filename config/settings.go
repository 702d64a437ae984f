package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Settings is the process configuration, read from the environment (and .env
// when main loaded one).
type Settings struct {
	SecretKey string `envconfig:"SECRET_KEY" default:"dev-secret-key-change-me"`
	Debug     bool   `envconfig:"DEBUG" default:"true"`
	Port      string `envconfig:"PORT" default:"5000"`

	AllowedHosts []string `envconfig:"ALLOWED_HOSTS"`
	CorsOrigins  []string `envconfig:"CORS_ORIGINS"`

	// Render.com deployments force production mode.
	Render             string `envconfig:"RENDER"`
	RenderExternalHost string `envconfig:"RENDER_EXTERNAL_HOSTNAME"`

	DatabaseURL string `envconfig:"DATABASE_URL"`
	MySQLURL    string `envconfig:"MYSQL_URL"`
	DBUser      string `envconfig:"DB_USER" default:"root"`
	DBPass      string `envconfig:"DB_PASS"`
	DBHost      string `envconfig:"DB_HOST"`
	DBPort      string `envconfig:"DB_PORT" default:"3306"`
	DBName      string `envconfig:"DB_NAME" default:"hostel_db"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"db.sqlite3"`

	MediaRoot  string `envconfig:"MEDIA_ROOT" default:"media"`
	ServeMedia bool   `envconfig:"SERVE_MEDIA" default:"false"`
	StaticRoot string `envconfig:"STATIC_ROOT" default:"static"`

	SessionTTLHours int `envconfig:"SESSION_TTL_HOURS" default:"336"`

	AdminUsername string `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
}

func Load() (Settings, error) {
	var s Settings
	if err := envconfig.Process("", &s); err != nil {
		return s, fmt.Errorf("load settings: %w", err)
	}
	s.normalize()
	return s, nil
}

func (s *Settings) normalize() {
	s.RenderExternalHost = strings.TrimSpace(s.RenderExternalHost)
	if s.RenderExternalHost != "" || strings.TrimSpace(s.Render) != "" {
		s.Debug = false
	}

	hosts := make([]string, 0, len(s.AllowedHosts)+1)
	for _, h := range s.AllowedHosts {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	if s.RenderExternalHost != "" {
		hosts = append(hosts, s.RenderExternalHost)
	}
	if len(hosts) == 0 {
		hosts = []string{"localhost", "127.0.0.1"}
	}
	s.AllowedHosts = hosts
}

func (s Settings) SessionTTL() time.Duration {
	if s.SessionTTLHours <= 0 {
		return 14 * 24 * time.Hour
	}
	return time.Duration(s.SessionTTLHours) * time.Hour
}

// MediaServed reports whether /media/ should be served by this process.
func (s Settings) MediaServed() bool {
	return s.Debug || s.ServeMedia
}

// Addr is the listen address for the HTTP server.
func (s Settings) Addr() string {
	return ":" + s.Port
}
