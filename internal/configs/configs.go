/*
Package configs is responsible for loading and parsing the application's configuration settings.

Settings come from operating system environment variables: the running environment, port,
log level, CORS allowed origins, token secret, the teacher's identity and passcode, and
how the breakout rooms are seeded.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	EnvDevelopment = "development"

	defaultPort         = 8080
	defaultLogLevel     = "info"
	defaultTeacherName  = "Teacher Name"
	defaultDevPasscode  = "teacher"
	defaultDevJWTSecret = "your_default_insecure_secret_key_change_me"
	maxRooms            = 26
)

// DefaultRoomNames are used when ROOM_NAMES is not set.
var DefaultRoomNames = []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon"}

// AppConfig contains all configuration parameters required for the application to run.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int
	LogLevel    string

	// Security Settings
	AllowedOrigins  []string
	JWTSecret       string
	TeacherPasscode string

	// Classroom Settings
	TeacherName string
	SeedDemo    bool
	RoomNames   []string
}

// IsDevelopment reports whether the server runs in the development environment.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// LoadConfig reads and parses the application configuration from environment variables.
// Every item has a default outside of the secrets, which are only defaulted in development.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// --- General Server Settings ---
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = EnvDevelopment
	}

	cfg.Port = defaultPort
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
		}
		cfg.Port = port
	}

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	// --- Security Settings ---
	cfg.AllowedOrigins = splitList(os.Getenv("ALLOWED_ORIGINS"))

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("JWT_SECRET environment variable is required in %s environment for security", cfg.Environment)
		}
		cfg.JWTSecret = defaultDevJWTSecret
	}

	cfg.TeacherPasscode = os.Getenv("TEACHER_PASSCODE")
	if cfg.TeacherPasscode == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("TEACHER_PASSCODE environment variable is required in %s environment", cfg.Environment)
		}
		cfg.TeacherPasscode = defaultDevPasscode
	}

	// --- Classroom Settings ---
	cfg.TeacherName = strings.TrimSpace(os.Getenv("TEACHER_NAME"))
	if cfg.TeacherName == "" {
		cfg.TeacherName = defaultTeacherName
	}

	cfg.SeedDemo = cfg.IsDevelopment()
	if seedStr := os.Getenv("SEED_DEMO"); seedStr != "" {
		seed, err := strconv.ParseBool(seedStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SEED_DEMO environment variable: %w", err)
		}
		cfg.SeedDemo = seed
	}

	cfg.RoomNames = splitList(os.Getenv("ROOM_NAMES"))
	if len(cfg.RoomNames) == 0 {
		cfg.RoomNames = append([]string(nil), DefaultRoomNames...)
	}
	if len(cfg.RoomNames) > maxRooms {
		return nil, fmt.Errorf("ROOM_NAMES lists %d rooms, at most %d are allowed", len(cfg.RoomNames), maxRooms)
	}

	return cfg, nil
}

func splitList(s string) []string {
	out := []string{}
	for _, item := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
