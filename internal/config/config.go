package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

const (
	configFileBase = "scrub_in_config"

	// DefaultLookbackDays is how many days of history before a generation window
	// seed the fairness counters when lookbackDays is not set
	DefaultLookbackDays = 14
)

// RecurringUnavailability marks a staff member unavailable on every date matched by an RRule
type RecurringUnavailability struct {
	StaffID int64  `yaml:"staffID" validate:"required,gt=0"`
	RRule   string `yaml:"rrule" validate:"required"`
	Reason  string `yaml:"reason,omitempty"`
}

// Catalog tags stored shift and duty types with explicit categories by name
type Catalog struct {
	ShiftCategories map[string]string `yaml:"shiftCategories,omitempty" validate:"dive,keys,required,endkeys,oneof=day evening night"`
	DutyCategories  map[string]string `yaml:"dutyCategories,omitempty" validate:"dive,keys,required,endkeys,oneof=pre duty post"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL string `yaml:"databaseURL" validate:"required"`

	DefaultUnit  string `yaml:"defaultUnit,omitempty"`
	LookbackDays *int   `yaml:"lookbackDays,omitempty" validate:"omitempty,min=0,max=366"`

	RosterSheetID   string `yaml:"rosterSheetID,omitempty"`
	RosterTab       string `yaml:"rosterTab,omitempty" validate:"required_with=RosterSheetID"`
	ScheduleSheetID string `yaml:"scheduleSheetID,omitempty"`
	GmailSender     string `yaml:"gmailSender,omitempty" validate:"omitempty,email"`

	Catalog                 Catalog                   `yaml:"catalog,omitempty"`
	RecurringUnavailability []RecurringUnavailability `yaml:"recurringUnavailability,omitempty" validate:"dive"`
}

// Lookback returns the configured history window in days, or DefaultLookbackDays
func (c *Config) Lookback() int {
	if c.LookbackDays == nil {
		return DefaultLookbackDays
	}
	return *c.LookbackDays
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from scrub_in_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration for an environment.
// For example, env="test" will look for "scrub_in_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findFile(fileName(configFileBase, env, "yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, entry := range cfg.RecurringUnavailability {
		if _, err := rrule.StrToRRule(entry.RRule); err != nil {
			return fmt.Errorf("invalid rrule in recurringUnavailability[%d]: %w", i, err)
		}
	}

	return nil
}

func fileName(base, env, ext string) string {
	if env == "" {
		return base + "." + ext
	}
	return base + "." + env + "." + ext
}

// findFile searches for name in the current directory, then the home directory
func findFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", name)
}
