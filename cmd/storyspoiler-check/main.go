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

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/unikorn-cloud/storyspoiler/test/api"
	"github.com/unikorn-cloud/storyspoiler/test/api/twin"
)

var errNoBaseURL = errors.New("no base URL given, set --base-url or API_BASE_URL, or use --twin")

// Options layers command line flags over the environment configuration.
type Options struct {
	config *api.TestConfig
	twin   bool
}

// AddFlags registers flags defaulting to the values already in the config.
func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.config.BaseURL, "base-url", o.config.BaseURL, "Story API base URL.")
	f.StringVar(&o.config.Username, "username", o.config.Username, "User to log in as.")
	f.StringVar(&o.config.Password, "password", o.config.Password, "Password for the user.")
	f.DurationVar(&o.config.RequestTimeout, "request-timeout", o.config.RequestTimeout, "Timeout for each request.")
	f.BoolVar(&o.config.DebugLogging, "debug", o.config.DebugLogging, "Enable debug logging.")
	f.BoolVar(&o.twin, "twin", false, "Run against an in-process story twin instead of a live service.")
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

func run(ctx context.Context, logger logr.Logger, zl *zap.Logger, options *Options) error {
	config := options.config
	config.BaseURL = strings.TrimSuffix(config.BaseURL, "/")

	if options.twin {
		twinConfig := twin.DefaultConfig()

		_, server := twin.NewServer(twinConfig)
		defer server.Close()

		config.UseServer(server.URL, twinConfig.Username, twinConfig.Password)

		logger.Info("started story twin", "url", server.URL)
	}

	if config.UseTwin() {
		return errNoBaseURL
	}

	if err := config.Validate(); err != nil {
		return err
	}

	harnessLog := zap.NewStdLog(zl.Named("client")).Writer()

	anonymous, err := api.NewAPIClientWithConfig(config)
	if err != nil {
		return err
	}

	anonymous.SetLogWriter(harnessLog)

	defer func() {
		if err := anonymous.Close(context.WithoutCancel(ctx)); err != nil {
			logger.Error(err, "closing client")
		}
	}()

	client, err := api.NewSession(ctx, config, anonymous)
	if err != nil {
		return err
	}

	client.SetLogWriter(harnessLog)

	defer func() {
		if err := client.Close(context.WithoutCancel(ctx)); err != nil {
			logger.Error(err, "closing session")
		}
	}()

	logger.Info("running story lifecycle", "url", config.BaseURL)

	report, runErr := api.RunStoryLifecycle(ctx, client, api.NewStoryDraft().Build(), api.NewEditedStoryDraft().Build())

	for _, step := range report.Steps {
		logger.Info("step passed", "step", step.Name, "storyID", report.StoryID, "message", step.Message)
	}

	if runErr == nil {
		logger.Info("lifecycle passed", "storyID", report.StoryID, "stories", report.StoryCount)
	}

	var summary strings.Builder

	if err := client.Metrics().WriteSummary(&summary); err != nil {
		logger.Error(err, "writing metrics summary")
	}

	for _, line := range strings.Split(strings.TrimSpace(summary.String()), "\n") {
		if line != "" {
			logger.Info("requests", "summary", line)
		}
	}

	return runErr
}

func main() {
	options := &Options{
		config: api.LoadTestConfigFromEnv(),
	}

	options.AddFlags(pflag.CommandLine)

	pflag.Parse()

	zl, err := newLogger(options.config.DebugLogging)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	logger := zapr.NewLogger(zl).WithName("storyspoiler-check")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	ctx, timeout := context.WithTimeout(ctx, options.config.TestTimeout)

	err = run(ctx, logger, zl, options)

	timeout()
	cancel()

	if err != nil {
		logger.Error(err, "story lifecycle failed")
	}

	_ = zl.Sync()

	if err != nil {
		os.Exit(1)
	}
}
