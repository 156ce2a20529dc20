package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/alexshd/foam"
)

// runConfig is the settings of one optimizer run. Sources are applied in
// order: defaults, YAML file, FOAM_* environment, command-line flags.
type runConfig struct {
	Scenario  string  `yaml:"scenario" validate:"required,scenario"`
	Steps     int     `yaml:"steps" validate:"gte=0,lte=1000000"`
	Eta       float64 `yaml:"eta" validate:"gt=0"`
	Epsilon   float64 `yaml:"epsilon" validate:"gt=0,lt=1"`
	Alignment float64 `yaml:"alignment" validate:"gte=0"`
	Probe     string  `yaml:"probe" validate:"oneof=real complex"`
	LogLevel  string  `yaml:"log_level" validate:"oneof=debug info warn error"`
}

var configValidate *validator.Validate

func init() {
	configValidate = validator.New()

	// scenario: the value names a built-in scenario
	if err := configValidate.RegisterValidation("scenario", validateScenario); err != nil {
		panic(fmt.Sprintf("register scenario validator: %v", err))
	}
}

func validateScenario(fl validator.FieldLevel) bool {
	return slices.Contains(foam.Scenarios(), fl.Field().String())
}

// defaultRunConfig mirrors the demo drivers: 50 steps of η = 0.1 with the
// goal-alignment term switched on so single-index scenarios move.
func defaultRunConfig() runConfig {
	return runConfig{
		Scenario:  "good-evil",
		Steps:     foam.DefaultSteps,
		Eta:       0.1,
		Epsilon:   foam.DefaultEpsilon,
		Alignment: 1.0,
		Probe:     foam.ProbeReal.String(),
		LogLevel:  "info",
	}
}

// loadRunConfig applies the YAML file at path (if any) and the environment
// on top of the defaults. A path that was named but cannot be read is an
// error.
func loadRunConfig(path string, getenv func(string) string) (runConfig, error) {
	cfg := defaultRunConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvironment(getenv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// resolveLogLevel layers --log-level over the file and FOAM_LOG_LEVEL, the
// same way run resolves it.
func resolveLogLevel(root *rootOptions, getenv func(string) string) (string, error) {
	cfg, err := loadRunConfig(root.configPath, getenv)
	if err != nil {
		return "", err
	}
	if root.logLevel != "" {
		cfg.LogLevel = strings.ToLower(root.logLevel)
	}
	return cfg.LogLevel, nil
}

func (c *runConfig) applyEnvironment(getenv func(string) string) error {
	if v := getenv("FOAM_STEPS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: FOAM_STEPS=%q", foam.ErrInvalidConfig, v)
		}
		c.Steps = n
	}
	if v := getenv("FOAM_ETA"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: FOAM_ETA=%q", foam.ErrInvalidConfig, v)
		}
		c.Eta = f
	}
	if v := getenv("FOAM_LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	return nil
}

// validate checks struct tags and reports every failing field at once.
func (c runConfig) validate() error {
	err := configValidate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", foam.ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("%w: %s", foam.ErrInvalidConfig, strings.Join(msgs, "; "))
}

// optimizer converts the run settings to the library's optimizer config.
func (c runConfig) optimizer() (foam.Config, error) {
	probe, err := foam.ParseProbe(c.Probe)
	if err != nil {
		return foam.Config{}, err
	}
	cfg := foam.DefaultConfig()
	cfg.Eta = c.Eta
	cfg.Epsilon = c.Epsilon
	cfg.Steps = c.Steps
	cfg.Probe = probe
	return cfg, nil
}
