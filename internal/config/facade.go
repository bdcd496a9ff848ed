package config

import (
	"fmt"
	"math"
	"time"
)

// FacadeConfig controls the simulated transport in front of the store.
type FacadeConfig struct {
	MinLatency    time.Duration `env:"FACADE_MIN_LATENCY" envDefault:"400ms"`
	MaxLatency    time.Duration `env:"FACADE_MAX_LATENCY" envDefault:"800ms"`
	FailureRate   float64       `env:"FACADE_FAILURE_RATE" envDefault:"0"`
	CurrentUserID string        `env:"CURRENT_USER_ID" envDefault:"u1"`
}

func (c FacadeConfig) validate() error {
	if c.MinLatency < 0 || c.MaxLatency < 0 {
		return fmt.Errorf("%s/%s: must not be negative", envMinLatency, envMaxLatency)
	}
	if c.MaxLatency < c.MinLatency {
		return fmt.Errorf("%s: %s is below %s %s", envMaxLatency, c.MaxLatency, envMinLatency, c.MinLatency)
	}
	if math.IsNaN(c.FailureRate) || c.FailureRate < 0 || c.FailureRate > 1 {
		return fmt.Errorf("%s: must be within [0, 1], got %v", envFailureRate, c.FailureRate)
	}
	return nil
}
