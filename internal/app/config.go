package app

import (
	"errors"
	"time"
)

// Config holds everything one run needs.
type Config struct {
	ScenarioPath string
	Vars         map[string]string

	LogFormat string
	LogLevel  string

	MetricsAddr     string // empty: no /metrics endpoint
	ViewerURL       string // empty: no viewer stream
	ViewerNamespace string

	// StepDelay overrides the scenario's robot delay when >= 0.
	StepDelay time.Duration
	PlanOnly  bool
	Verify    bool
}

// NewConfig validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ScenarioPath == "" {
		return nil, errors.New("ScenarioPath is a required configuration field and cannot be empty")
	}
	if cfg.ViewerNamespace == "" {
		cfg.ViewerNamespace = "/"
	}

	return &cfg, nil
}
