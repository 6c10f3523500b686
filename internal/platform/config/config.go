package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	RegulatedMode   bool
	LogLevel        slog.Level
	MaxDropBytes    int64
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
}

// DefaultMaxDropBytes caps a dropped document. Card XML with an embedded photo
// stays well under this.
const DefaultMaxDropBytes int64 = 1 << 20

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return fromLookup(os.Getenv)
}

func fromLookup(getenv func(string) string) Server {
	addr := getenv("EID_READER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Server{
		Addr:            addr,
		RegulatedMode:   getenv("REGULATED_MODE") == "true",
		LogLevel:        parseLevel(getenv("LOG_LEVEL")),
		MaxDropBytes:    parseInt64(getenv("EID_MAX_DROP_BYTES"), DefaultMaxDropBytes),
		ShutdownTimeout: parseDuration(getenv("SHUTDOWN_TIMEOUT"), 10*time.Second),
		ReadTimeout:     parseDuration(getenv("HTTP_READ_TIMEOUT"), 15*time.Second),
		WriteTimeout:    parseDuration(getenv("HTTP_WRITE_TIMEOUT"), 15*time.Second),
		IdleTimeout:     parseDuration(getenv("HTTP_IDLE_TIMEOUT"), 60*time.Second),
	}
}

func parseLevel(v string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseInt64(v string, fallback int64) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func parseDuration(v string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
