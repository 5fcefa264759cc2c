package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultCanvasWidth  = 1280
	defaultCanvasHeight = 720
)

// Settings is the process configuration shared by the server and the CLI.
type Settings struct {
	Port         string
	LogLevel     string
	LogFormat    string
	CanvasWidth  int
	CanvasHeight int
	OutputLabel  string
}

// Load reads the .env file from the current working directory and sets
// environment variables. If .env does not exist, Load returns an error but
// callers can ignore it and use system env or defaults. Pass one or more paths
// to load from specific files (e.g. ".env"); with no paths, ".env" is used.
func Load(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	return godotenv.Load(paths...)
}

// FromEnv reads Settings from the environment, falling back to defaults for
// anything unset. Non-positive canvas sizes fall back to 1280x720.
func FromEnv() Settings {
	s := Settings{
		Port:         GetEnv("PORT", "8080"),
		LogLevel:     GetEnv("LOG_LEVEL", "info"),
		LogFormat:    GetEnv("LOG_FORMAT", "json"),
		CanvasWidth:  GetEnvInt("CANVAS_WIDTH", defaultCanvasWidth),
		CanvasHeight: GetEnvInt("CANVAS_HEIGHT", defaultCanvasHeight),
		OutputLabel:  GetEnv("OUTPUT_LABEL", ""),
	}
	if s.CanvasWidth <= 0 {
		s.CanvasWidth = defaultCanvasWidth
	}
	if s.CanvasHeight <= 0 {
		s.CanvasHeight = defaultCanvasHeight
	}
	return s
}

// GetEnv returns the value of the environment variable named by key, or fallback
// if the variable is unset or empty.
func GetEnv(key, fallback string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return fallback
}

// GetEnvInt returns the integer value of the environment variable named by key,
// or fallback if the variable is unset, empty, or not a valid integer.
func GetEnvInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return fallback
}
