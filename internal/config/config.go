package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/cwarden/schedule/internal/calendar"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	// Storage settings
	StoreBackend  string `yaml:"store_backend"`
	StoreDir      string `yaml:"store_dir"`
	StoreKey      string `yaml:"store_key"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	WatchStore    bool   `yaml:"watch_store"`

	// Display settings
	TimeFormat  string `yaml:"time_format"` // "12h" or "24h"
	DateFormat  string `yaml:"date_format"`
	StartupView string `yaml:"startup_view"`

	// UI settings
	Colors      map[string]string `yaml:"colors"`
	KeyBindings map[string]string `yaml:"bindings"` // key -> action

	// Behavior settings
	ConfirmDelete   bool   `yaml:"confirm_delete"`
	WrapText        bool   `yaml:"wrap_text"`
	DefaultColor    string `yaml:"default_color"`
	DefaultDuration int    `yaml:"default_duration"` // minutes

	// Logging
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

func DefaultConfig() *Config {
	return &Config{
		StoreBackend: BackendFile,
		StoreDir:     defaultDataDir(),
		StoreKey:     "scheduleEvents",
		RedisAddr:    "localhost:6379",
		WatchStore:   true,

		TimeFormat:  "12h",
		DateFormat:  "Jan 2, 2006",
		StartupView: "week",

		Colors: map[string]string{
			"normal":   "252",
			"today":    "220",
			"selected": "205",
			"weekend":  "39",
			"header":   "220",
			"help":     "241",
			"grid":     "238",
		},

		KeyBindings: map[string]string{
			"q":      "quit",
			"?":      "help",
			"t":      "today",
			"n":      "new_event",
			"a":      "quick_add",
			"e":      "edit_event",
			"x":      "delete_event",
			"l":      "next_period",
			"h":      "prev_period",
			"j":      "next_day",
			"k":      "prev_day",
			"J":      "next_week",
			"K":      "prev_week",
			"m":      "month_view",
			"w":      "week_view",
			"d":      "day_view",
			"tab":    "next_event",
			"ctrl+d": "scroll_down",
			"ctrl+u": "scroll_up",
			"right":  "next_period",
			"left":   "prev_period",
			"down":   "next_day",
			"up":     "prev_day",
		},

		ConfirmDelete:   true,
		WrapText:        true,
		DefaultColor:    calendar.DefaultColor,
		DefaultDuration: 60,

		LogLevel: "info",
		LogFile:  filepath.Join(defaultDataDir(), "schedule.log"),
	}
}

// Paths returns the config file locations, most specific first.
func Paths() []string {
	home, _ := os.UserHomeDir()
	paths := []string{os.Getenv("SCHEDULE_CONFIG")}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths,
			filepath.Join(xdg, "schedule", "schedulerc"),
			filepath.Join(xdg, "schedule", "config.yaml"))
	}
	return append(paths,
		filepath.Join(home, ".config", "schedule", "schedulerc"),
		filepath.Join(home, ".config", "schedule", "config.yaml"),
		filepath.Join(home, ".schedulerc"),
	)
}

// LoadConfig reads the first config file found in Paths, then applies
// environment overrides.
func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	for _, path := range Paths() {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			if err := config.loadFromFile(path); err != nil {
				return nil, fmt.Errorf("error loading config from %s: %w", path, err)
			}
			break
		}
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	return config, config.Validate()
}

// LoadFile reads exactly path; a missing file is an error.
func LoadFile(path string) (*Config, error) {
	config := DefaultConfig()
	if err := config.loadFromFile(path); err != nil {
		return nil, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	return config, config.Validate()
}

// LoadDotEnv loads .env files from the working directory and the config
// directory. Variables already in the environment win.
func LoadDotEnv() error {
	candidates := []string{".env"}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "schedule", ".env"))
	}

	var files []string
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			files = append(files, path)
		}
	}
	if len(files) == 0 {
		return nil
	}
	return godotenv.Load(files...)
}

func (c *Config) loadFromFile(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return c.loadYAML(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := c.parseLine(line); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	return scanner.Err()
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return err
	}
	c.StoreDir = expandHome(c.StoreDir)
	c.LogFile = expandHome(c.LogFile)
	return nil
}

var (
	setRe   = regexp.MustCompile(`^set\s+(\w+)\s+(.+)$`)
	bindRe  = regexp.MustCompile(`^bind\s+(\S+)\s+(\S+)$`)
	colorRe = regexp.MustCompile(`^color\s+(\w+)\s+(.+)$`)
)

func (c *Config) parseLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	// set variable value
	if matches := setRe.FindStringSubmatch(line); matches != nil {
		return c.setVariable(matches[1], matches[2])
	}

	// bind key action
	if matches := bindRe.FindStringSubmatch(line); matches != nil {
		c.KeyBindings[matches[1]] = matches[2]
		return nil
	}

	// color element color_spec
	if matches := colorRe.FindStringSubmatch(line); matches != nil {
		c.Colors[matches[1]] = strings.Trim(matches[2], `"'`)
		return nil
	}

	return fmt.Errorf("unknown config line: %s", line)
}

func (c *Config) setVariable(name, value string) error {
	// Remove quotes if present
	value = strings.Trim(value, `"'`)

	switch name {
	case "store_backend":
		c.StoreBackend = strings.ToLower(value)

	case "store_dir":
		c.StoreDir = expandHome(value)

	case "store_key":
		c.StoreKey = value

	case "redis_addr":
		c.RedisAddr = value

	case "redis_password":
		c.RedisPassword = value

	case "redis_db":
		db, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid redis_db: %s", value)
		}
		c.RedisDB = db

	case "watch_store":
		c.WatchStore = parseBool(value)

	case "time_format":
		c.TimeFormat = strings.ToLower(value)

	case "date_format":
		c.DateFormat = value

	case "startup_view":
		c.StartupView = strings.ToLower(value)

	case "confirm_delete":
		c.ConfirmDelete = parseBool(value)

	case "wrap_text":
		c.WrapText = parseBool(value)

	case "default_color":
		c.DefaultColor = strings.ToUpper(value)

	case "default_duration":
		minutes, err := strconv.Atoi(value)
		if err != nil || minutes <= 0 {
			return fmt.Errorf("invalid default_duration: %s", value)
		}
		c.DefaultDuration = minutes

	case "log_level":
		c.LogLevel = value

	case "log_file":
		c.LogFile = expandHome(value)

	default:
		return fmt.Errorf("unknown config variable: %s", name)
	}

	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("SCHEDULE_STORE_BACKEND"); v != "" {
		c.StoreBackend = strings.ToLower(v)
	}
	if v := os.Getenv("SCHEDULE_STORE_DIR"); v != "" {
		c.StoreDir = expandHome(v)
	}
	if v := os.Getenv("SCHEDULE_REDIS_ADDR"); v != "" {
		c.RedisAddr = v
	}
	if v := os.Getenv("SCHEDULE_REDIS_PASSWORD"); v != "" {
		c.RedisPassword = v
	}
	if v := os.Getenv("SCHEDULE_REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SCHEDULE_REDIS_DB: %s", v)
		}
		c.RedisDB = db
	}
	if v := os.Getenv("SCHEDULE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate rejects settings the rest of the program cannot use.
func (c *Config) Validate() error {
	var errs []error

	switch c.StoreBackend {
	case BackendFile, BackendRedis, BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("invalid store_backend: %s", c.StoreBackend))
	}
	if c.StoreBackend == BackendFile && c.StoreDir == "" {
		errs = append(errs, errors.New("store_dir is required for the file backend"))
	}
	switch c.TimeFormat {
	case "12h", "24h":
	default:
		errs = append(errs, fmt.Errorf("invalid time_format: %s", c.TimeFormat))
	}
	if _, err := calendar.ParseViewMode(c.StartupView); err != nil {
		errs = append(errs, fmt.Errorf("invalid startup_view: %w", err))
	}
	if !calendar.IsSwatch(c.DefaultColor) {
		errs = append(errs, fmt.Errorf("invalid default_color: %s", c.DefaultColor))
	}
	if c.DefaultDuration <= 0 {
		errs = append(errs, fmt.Errorf("invalid default_duration: %d", c.DefaultDuration))
	}

	return errors.Join(errs...)
}

// TwelveHour reports whether times are shown as "9:00 AM".
func (c *Config) TwelveHour() bool {
	return c.TimeFormat == "12h"
}

// View returns the startup view mode.
func (c *Config) View() calendar.ViewMode {
	mode, _ := calendar.ParseViewMode(c.StartupView)
	return mode
}

// Action returns the action bound to key, if any.
func (c *Config) Action(key string) string {
	return c.KeyBindings[key]
}

func parseBool(value string) bool {
	return strings.ToLower(value) == "true" || value == "1"
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "schedule")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "schedule")
}

// EnsureDir creates dir for files the program writes (store, log).
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil && !errors.Is(err, fs.ErrExist) {
		return err
	}
	return nil
}
