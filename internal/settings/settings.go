// Copyright (c) Berk D. Demir and the runitor contributors.
// SPDX-License-Identifier: 0BSD

// Package settings resolves the credential and client options of the
// command line tools from the process environment.
package settings

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"bdd.fi/x/hcmon/internal/optional"
)

// Environment variables.
const (
	CheckIDEnv   = "HEALTHCHECKS_CHECK_ID"  // credential of cmd/monitor
	TokenEnv     = "HEALTHCHECKS_TOKEN"     // credential of cmd/hcctl
	UserAgentEnv = "HEALTHCHECKS_USERAGENT" // optional User-Agent override
	PingURLEnv   = "HEALTHCHECKS_PING_URL"
	APIURLEnv    = "HEALTHCHECKS_API_URL"
	RetriesEnv   = "HEALTHCHECKS_RETRIES"
	TimeoutEnv   = "HEALTHCHECKS_TIMEOUT"
)

// DotEnvFile is loaded from the working directory when it exists. Variables
// already set in the environment take precedence.
const DotEnvFile = ".env"

// MinTimeout is the shortest accepted HEALTHCHECKS_TIMEOUT.
const MinTimeout = 100 * time.Millisecond

var ErrMissingCredential = errors.New("credential is not set")

// Settings is resolved once per invocation and passed by value.
type Settings struct {
	Credential string
	UserAgent  optional.Optional[string]

	// BaseURL is empty unless overridden; clients then use their default.
	BaseURL string
	Retries uint
	Timeout time.Duration
}

// Load reads the credential from credentialEnv and the shared client
// options. urlEnv names the variable overriding the API base URL.
func Load(credentialEnv, urlEnv string) (Settings, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Settings{}, fmt.Errorf("load %s: %w", DotEnvFile, err)
	}

	v := viper.New()
	v.SetDefault("retries", 2)
	v.SetDefault("timeout", 5*time.Second)

	for key, env := range map[string]string{
		"credential": credentialEnv,
		"user_agent": UserAgentEnv,
		"base_url":   urlEnv,
		"retries":    RetriesEnv,
		"timeout":    TimeoutEnv,
	} {
		if err := v.BindEnv(key, env); err != nil {
			return Settings{}, err
		}
	}

	s := Settings{
		Credential: v.GetString("credential"),
		BaseURL:    v.GetString("base_url"),
	}

	if len(s.Credential) == 0 {
		return Settings{}, fmt.Errorf("%w: %s must be set", ErrMissingCredential, credentialEnv)
	}

	if ua := v.GetString("user_agent"); len(ua) > 0 {
		s.UserAgent = optional.Some(ua)
	}

	retries, err := castUint(v, "retries", RetriesEnv)
	if err != nil {
		return Settings{}, err
	}
	s.Retries = retries

	timeout, err := castTimeout(v, "timeout", TimeoutEnv)
	if err != nil {
		return Settings{}, err
	}
	s.Timeout = timeout

	return s, nil
}

func castUint(v *viper.Viper, key, env string) (uint, error) {
	n, err := cast.ToUintE(v.Get(key))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", env, err)
	}

	return n, nil
}

// castTimeout reads a duration such as "30s". A bare integer is a number of
// seconds.
func castTimeout(v *viper.Viper, key, env string) (time.Duration, error) {
	raw := v.Get(key)
	if s, ok := raw.(string); ok {
		if n, err := cast.ToUintE(s); err == nil {
			raw = time.Duration(n) * time.Second
		}
	}

	d, err := cast.ToDurationE(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", env, err)
	}

	if d < MinTimeout {
		return 0, fmt.Errorf("invalid %s: %s is shorter than %s", env, d, MinTimeout)
	}

	return d, nil
}
