package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL   = "http://localhost:3000"
	DefaultAddr     = ":3000"
	DefaultDataFile = "users.json"
	DefaultTheme    = "classic"
)

// Config is everything read from the environment (and an optional .env).
type Config struct {
	APIURL   string // PROFILE_API_URL
	Token    string // PROFILE_TOKEN
	UserID   string // PROFILE_USER_ID
	Theme    string // PROFILE_THEME
	LogFile  string // PROFILE_LOG_FILE
	DataFile string // PROFILE_DATA_FILE (serve)
	Addr     string // PROFILE_ADDR (serve)
}

// Load reads envFiles (".env" when none given) into the process environment
// and builds a Config from it. Missing env files are ignored.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	cfg := Config{
		APIURL:   getenv("PROFILE_API_URL", DefaultAPIURL),
		Token:    getenv("PROFILE_TOKEN", ""),
		UserID:   getenv("PROFILE_USER_ID", ""),
		Theme:    getenv("PROFILE_THEME", DefaultTheme),
		LogFile:  getenv("PROFILE_LOG_FILE", ""),
		DataFile: getenv("PROFILE_DATA_FILE", DefaultDataFile),
		Addr:     getenv("PROFILE_ADDR", DefaultAddr),
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	return cfg, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
