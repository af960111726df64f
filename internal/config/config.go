package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// State backends.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config holds all configuration of the tracker binary.
type Config struct {
	LogLevel     string        `yaml:"log_level" env:"EUREKALINK_LOG_LEVEL"`
	TickInterval time.Duration `yaml:"tick_interval" env:"EUREKALINK_TICK_INTERVAL"`

	// Snapshot feed: JSON lines file, .zst compressed or "-" for stdin.
	Feed string `yaml:"feed" env:"EUREKALINK_FEED"`

	// Event journal directory, empty disables the journal.
	JournalDir string `yaml:"journal_dir" env:"EUREKALINK_JOURNAL_DIR"`

	State   StateConfig   `yaml:"state"`
	Notify  NotifyConfig  `yaml:"notify"`
	Matcher MatcherConfig `yaml:"matcher"`
	Bunny   BunnyConfig   `yaml:"bunny"`
	Tracker TrackerConfig `yaml:"tracker"`

	// Z offset added to map markers per territory.
	MarkerOffsets map[uint16]float32 `yaml:"marker_offsets"`
}

// StateConfig selects where stats are persisted.
type StateConfig struct {
	Backend  string         `yaml:"backend" env:"EUREKALINK_STATE_BACKEND"`
	Path     string         `yaml:"path" env:"EUREKALINK_STATE_PATH"`
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	// URL overrides the individual fields when set.
	URL      string `yaml:"url" env:"EUREKALINK_DSN"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password" env:"EUREKALINK_DB_PASSWORD"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// NotifyConfig selects outputs and message formatting.
type NotifyConfig struct {
	EchoPop       bool          `yaml:"echo_pop"`
	PopToast      bool          `yaml:"pop_toast"`
	PlaySound     bool          `yaml:"play_sound"`
	SoundID       uint32        `yaml:"sound_id"`
	Broadcast     bool          `yaml:"broadcast" env:"EUREKALINK_BROADCAST"`
	ChatFormat    string        `yaml:"chat_format"`
	UseShortNames bool          `yaml:"use_short_names"`
	ShowPullTimer bool          `yaml:"show_pull_timer"`
	UseEorzeaTime bool          `yaml:"use_eorzea_time"`
	TwelveHour    bool          `yaml:"twelve_hour"`
	PullMinutes   int           `yaml:"pull_minutes"`
	EchoFairies   bool          `yaml:"echo_fairies"`
	FairyToast    bool          `yaml:"fairy_toast"`
	EchoFound     bool          `yaml:"echo_found"`
	Cooldown      time.Duration `yaml:"cooldown"`
}

// MatcherConfig tunes coffer matching.
type MatcherConfig struct {
	Epsilon    float32       `yaml:"epsilon"`
	Debounce   time.Duration `yaml:"debounce"`
	NearRadius float64       `yaml:"near_radius"`
}

// BunnyConfig tunes the bunny respawn panel.
type BunnyConfig struct {
	RespawnMin int64 `yaml:"respawn_min"` // seconds
	RespawnMax int64 `yaml:"respawn_max"`
	ShowPanel  bool  `yaml:"show_panel"`
	OnlyEasy   bool  `yaml:"only_easy"`
}

// TrackerConfig configures the external tracker service.
type TrackerConfig struct {
	SocketURL string        `yaml:"socket_url" env:"EUREKALINK_TRACKER_SOCKET_URL"`
	PublicURL string        `yaml:"public_url" env:"EUREKALINK_TRACKER_PUBLIC_URL"`
	Instance  string        `yaml:"instance" env:"EUREKALINK_TRACKER_INSTANCE"`
	Password  string        `yaml:"password" env:"EUREKALINK_TRACKER_PASSWORD"`
	Timeout   time.Duration `yaml:"timeout"`
}

// Default returns Config with sensible defaults.
func Default() Config {
	return Config{
		LogLevel:     "info",
		TickInterval: time.Second,
		Feed:         "-",
		JournalDir:   "journal",
		State: StateConfig{
			Backend: BackendFile,
			Path:    "data/eurekalink.yaml",
			Database: DatabaseConfig{
				Host:     "127.0.0.1",
				Port:     5432,
				User:     "eurekalink",
				Password: "eurekalink",
				DBName:   "eurekalink",
				SSLMode:  "disable",
			},
		},
		Notify: NotifyConfig{
			EchoPop:       true,
			PopToast:      true,
			PlaySound:     true,
			SoundID:       36,
			ChatFormat:    "/sh $n pop: $p. Pull in $t",
			ShowPullTimer: true,
			PullMinutes:   27,
			EchoFairies:   true,
			Cooldown:      20 * time.Second,
		},
		Matcher: MatcherConfig{
			Epsilon:    0.5,
			Debounce:   20 * time.Second,
			NearRadius: 50,
		},
		Bunny: BunnyConfig{
			RespawnMin: 530,
			RespawnMax: 1000,
		},
		Tracker: TrackerConfig{
			SocketURL: "wss://ffxiv-eureka.com/socket/websocket",
			PublicURL: "https://ffxiv-eureka.com/",
			Timeout:   15 * time.Second,
		},
		MarkerOffsets: map[uint16]float32{827: 475},
	}
}

// Load loads config from a YAML file and applies EUREKALINK_* environment
// overrides. If the file doesn't exist, defaults are used.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would break the engine.
func (c Config) Validate() error {
	switch c.State.Backend {
	case BackendFile:
		if c.State.Path == "" {
			return fmt.Errorf("state.path is required for the file backend")
		}
	case BackendPostgres:
	default:
		return fmt.Errorf("unknown state backend %q", c.State.Backend)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive")
	}
	if c.Matcher.Epsilon <= 0 {
		return fmt.Errorf("matcher.epsilon must be positive")
	}
	if c.Bunny.RespawnMin > c.Bunny.RespawnMax {
		return fmt.Errorf("bunny.respawn_min %d exceeds respawn_max %d", c.Bunny.RespawnMin, c.Bunny.RespawnMax)
	}
	return nil
}
