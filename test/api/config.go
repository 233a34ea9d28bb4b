/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type TestConfig struct {
	BaseURL           string
	Username          string
	Password          string
	AuthToken         string
	RequestTimeout    time.Duration
	TestTimeout       time.Duration
	ValidateResponses bool
	SkipIntegration   bool
	DebugLogging      bool
	LogRequests       bool
	LogResponses      bool
}

// UseTwin reports whether no remote service is configured, in which case
// callers run against the in-process story twin.
func (c *TestConfig) UseTwin() bool {
	return c.BaseURL == ""
}

// UseServer points the config at a locally started service with its own
// credentials. Any pre-issued token was not issued by it, so it is dropped.
func (c *TestConfig) UseServer(baseURL, username, password string) {
	c.BaseURL = baseURL
	c.Username = username
	c.Password = password
	c.AuthToken = ""
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error if required configuration values are missing.
func LoadTestConfig() (*TestConfig, error) {
	config := LoadTestConfigFromEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadTestConfigFromEnv is LoadTestConfig without validation, for callers
// that apply their own overrides first.
func LoadTestConfigFromEnv() *TestConfig {
	loadEnvFile()

	return &TestConfig{
		BaseURL:           strings.TrimSuffix(os.Getenv("API_BASE_URL"), "/"),
		Username:          os.Getenv("API_USERNAME"),
		Password:          os.Getenv("API_PASSWORD"),
		AuthToken:         os.Getenv("API_AUTH_TOKEN"),
		RequestTimeout:    getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		TestTimeout:       getDurationWithDefault("TEST_TIMEOUT", 5*time.Minute),
		ValidateResponses: getBoolWithDefault("VALIDATE_RESPONSES", true),
		SkipIntegration:   getBoolWithDefault("SKIP_INTEGRATION", false),
		DebugLogging:      getBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:       getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:      getBoolWithDefault("LOG_RESPONSES", false),
	}
}

// Validate checks that all required configuration values are set.
func (c *TestConfig) Validate() error {
	return validateRequiredFields(c)
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func loadEnvFile() {
	envPaths := []string{
		"../../.env", // From test/api/suites directory
		"test/.env",  // From the repository root
	}

	var envPath string
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// Variables already present in the environment take precedence.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

// validateRequiredFields checks that all required configuration values are set.
// Credentials are only needed when a remote service is targeted and no
// pre-issued token is available.
func validateRequiredFields(config *TestConfig) error {
	if config.UseTwin() || config.AuthToken != "" {
		return nil
	}

	var missing []string

	required := []struct {
		envVar string
		value  string
	}{
		{"API_USERNAME", config.Username},
		{"API_PASSWORD", config.Password},
	}

	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s. Please set these environment variables or add them to a .env file, or the gh secrets", strings.Join(missing, ", "))
	}

	return nil
}
