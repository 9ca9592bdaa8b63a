package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Timings holds every delay the room state machine schedules.
type Timings struct {
	ResultDelay    time.Duration
	BotPlayMin     time.Duration
	BotPlayMax     time.Duration
	BotRevealDelay time.Duration
	BotPickDelay   time.Duration
}

// Rules are the gameplay constants shared by every room.
type Rules struct {
	HandSize             int
	DrawRights           int
	MinPlayers           int
	DefaultTargetScore   int
	DefaultRoundDuration time.Duration
	HideUnrevealedOwners bool
}

type Config struct {
	HTTPAddr       string
	AllowedOrigins []string
	LogLevel       string
	LogPretty      bool
	CardsFile      string

	Rules   Rules
	Timings Timings

	RoomIdleGrace time.Duration
	SweepInterval time.Duration

	WSMessageRate  float64
	WSMessageBurst int
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func getenvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		HTTPAddr:       ":3001",
		AllowedOrigins: []string{"*"},
		LogLevel:       "info",
		LogPretty:      true,
		Rules: Rules{
			HandSize:             10,
			DrawRights:           3,
			MinPlayers:           3,
			DefaultTargetScore:   10,
			DefaultRoundDuration: 60 * time.Second,
		},
		Timings: Timings{
			ResultDelay:    5 * time.Second,
			BotPlayMin:     5 * time.Second,
			BotPlayMax:     20 * time.Second,
			BotRevealDelay: 3 * time.Second,
			BotPickDelay:   4 * time.Second,
		},
		RoomIdleGrace:  2 * time.Minute,
		SweepInterval:  30 * time.Second,
		WSMessageRate:  10,
		WSMessageBurst: 20,
	}
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	_ = godotenv.Load()

	d := Default()
	cfg := Config{
		HTTPAddr:       getenv("HTTP_ADDR", d.HTTPAddr),
		AllowedOrigins: getenvList("ALLOWED_ORIGINS", d.AllowedOrigins),
		LogLevel:       getenv("LOG_LEVEL", d.LogLevel),
		LogPretty:      getenvBool("LOG_PRETTY", d.LogPretty),
		CardsFile:      getenv("CARDS_FILE", d.CardsFile),
		Rules: Rules{
			HandSize:             getenvInt("HAND_SIZE", d.Rules.HandSize),
			DrawRights:           getenvInt("DRAW_RIGHTS", d.Rules.DrawRights),
			MinPlayers:           getenvInt("MIN_PLAYERS", d.Rules.MinPlayers),
			DefaultTargetScore:   getenvInt("TARGET_SCORE", d.Rules.DefaultTargetScore),
			DefaultRoundDuration: getenvDuration("ROUND_DURATION", d.Rules.DefaultRoundDuration),
			HideUnrevealedOwners: getenvBool("HIDE_UNREVEALED_OWNERS", d.Rules.HideUnrevealedOwners),
		},
		Timings: Timings{
			ResultDelay:    getenvDuration("RESULT_DELAY", d.Timings.ResultDelay),
			BotPlayMin:     getenvDuration("BOT_PLAY_MIN", d.Timings.BotPlayMin),
			BotPlayMax:     getenvDuration("BOT_PLAY_MAX", d.Timings.BotPlayMax),
			BotRevealDelay: getenvDuration("BOT_REVEAL_DELAY", d.Timings.BotRevealDelay),
			BotPickDelay:   getenvDuration("BOT_PICK_DELAY", d.Timings.BotPickDelay),
		},
		RoomIdleGrace:  getenvDuration("ROOM_IDLE_GRACE", d.RoomIdleGrace),
		SweepInterval:  getenvDuration("SWEEP_INTERVAL", d.SweepInterval),
		WSMessageRate:  getenvFloat("WS_MSG_RATE", d.WSMessageRate),
		WSMessageBurst: getenvInt("WS_MSG_BURST", d.WSMessageBurst),
	}
	cfg.normalize(d)
	return cfg
}

// normalize replaces values that would break the game loop with defaults.
func (c *Config) normalize(d Config) {
	if c.Rules.HandSize < 1 {
		c.Rules.HandSize = d.Rules.HandSize
	}
	if c.Rules.DrawRights < 0 {
		c.Rules.DrawRights = d.Rules.DrawRights
	}
	if c.Rules.MinPlayers < 1 {
		c.Rules.MinPlayers = d.Rules.MinPlayers
	}
	if c.Rules.DefaultTargetScore < 1 {
		c.Rules.DefaultTargetScore = d.Rules.DefaultTargetScore
	}
	if c.Timings.BotPlayMax < c.Timings.BotPlayMin {
		c.Timings.BotPlayMax = c.Timings.BotPlayMin
	}
	if c.WSMessageRate <= 0 {
		c.WSMessageRate = d.WSMessageRate
	}
	if c.WSMessageBurst < 1 {
		c.WSMessageBurst = d.WSMessageBurst
	}
}
