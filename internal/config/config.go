// Package config provides configuration utilities for the application.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultAPIBase is the local loopback backend used when nothing else is
// configured.
const DefaultAPIBase = "http://127.0.0.1:8000"

// Request deadlines. Agent calls sit behind an LLM round trip; direct
// reconcile calls scan every order document, so they get longer.
const (
	DefaultAgentTimeout     = 120 * time.Second
	DefaultReconcileTimeout = 180 * time.Second
)

// APIBase resolves the backend base URL from config/env (RECON_API_BASE or
// api.base in the config file), stripping any trailing slash.
func APIBase() string {
	base := viper.GetString("api.base")
	if base == "" {
		base = DefaultAPIBase
	}
	return strings.TrimRight(base, "/")
}

// AgentTimeout returns the per-request deadline for agent calls.
func AgentTimeout() time.Duration {
	if d := viper.GetDuration("api.agent_timeout"); d > 0 {
		return d
	}
	return DefaultAgentTimeout
}

// ReconcileTimeout returns the per-request deadline for direct reconcile and
// export calls.
func ReconcileTimeout() time.Duration {
	if d := viper.GetDuration("api.reconcile_timeout"); d > 0 {
		return d
	}
	return DefaultReconcileTimeout
}
