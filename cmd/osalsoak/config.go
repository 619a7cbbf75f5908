// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	applicationName = "osalsoak"

	FileFlag      = "file"
	PortFlag      = "port"
	WorkersFlag   = "workers"
	DurationFlag  = "duration"
	TimeoutMsFlag = "timeout-ms"
	HoldMsFlag    = "hold-ms"
	MetricsFlag   = "metrics"

	soakKey = "soak"
)

// SoakConfig describes one soak run
type SoakConfig struct {
	// Workers is the number of goroutines contending on the mutex
	Workers int

	// Duration is how long the soak runs
	Duration time.Duration

	// TimeoutMs is the Lock timeout used by every worker.  Negative waits forever.
	TimeoutMs float64

	// HoldMs is how long a worker holds the mutex, delayed through the port
	HoldMs float64

	// Metrics is the listen address of the metrics server.  Empty disables the server.
	Metrics string
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(applicationName, pflag.ContinueOnError)
	fs.StringP(FileFlag, "f", "", "the fully qualified configuration file")
	fs.String(PortFlag, "", "the osal port: freertos, linux, or noop")
	fs.Int(WorkersFlag, 4, "the number of contending workers")
	fs.Duration(DurationFlag, 5*time.Second, "how long the soak runs")
	fs.Float64(TimeoutMsFlag, 10, "the Lock timeout in milliseconds; negative waits forever")
	fs.Float64(HoldMsFlag, 1, "how long each worker holds the mutex, in milliseconds")
	fs.String(MetricsFlag, "", "listen address for /metrics, e.g. :9090")
	return fs
}

// addStandardConfigPaths adds the standard *nix-style configuration paths
func addStandardConfigPaths(v *viper.Viper) {
	v.AddConfigPath(fmt.Sprintf("/etc/%s", applicationName))
	v.AddConfigPath(fmt.Sprintf("$HOME/%s", applicationName))
	v.AddConfigPath(".")
}

// newViper parses the command line and reads configuration.  Flags override the file.  A missing
// configuration file is only an error when one was named explicitly.
func newViper(fs *pflag.FlagSet, arguments []string) (*viper.Viper, error) {
	if err := fs.Parse(arguments); err != nil {
		return nil, err
	}

	v := viper.New()
	addStandardConfigPaths(v)
	v.SetConfigName(applicationName)

	explicit, _ := fs.GetString(FileFlag)
	if len(explicit) > 0 {
		v.SetConfigFile(explicit)
	}

	bindings := map[string]string{
		"osal.port":      PortFlag,
		"soak.workers":   WorkersFlag,
		"soak.duration":  DurationFlag,
		"soak.timeoutMs": TimeoutMsFlag,
		"soak.holdMs":    HoldMsFlag,
		"soak.metrics":   MetricsFlag,
	}

	for key, flag := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, errors.Wrapf(err, "unable to bind flag %s", flag)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if len(explicit) > 0 || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "unable to read configuration")
		}
	}

	return v, nil
}

// newSoakConfig extracts and validates the soak section.
func newSoakConfig(v *viper.Viper) (SoakConfig, error) {
	var (
		c   SoakConfig
		err error
	)

	if c.Workers, err = cast.ToIntE(v.Get(soakKey + ".workers")); err != nil {
		return SoakConfig{}, errors.Wrap(err, "invalid workers")
	}

	if c.Duration, err = cast.ToDurationE(v.Get(soakKey + ".duration")); err != nil {
		return SoakConfig{}, errors.Wrap(err, "invalid duration")
	}

	if c.TimeoutMs, err = cast.ToFloat64E(v.Get(soakKey + ".timeoutMs")); err != nil {
		return SoakConfig{}, errors.Wrap(err, "invalid timeout")
	}

	if c.HoldMs, err = cast.ToFloat64E(v.Get(soakKey + ".holdMs")); err != nil {
		return SoakConfig{}, errors.Wrap(err, "invalid hold")
	}

	c.Metrics = cast.ToString(v.Get(soakKey + ".metrics"))

	if c.Workers < 1 {
		return SoakConfig{}, errors.Errorf("at least one worker is required, got %d", c.Workers)
	}

	if c.Duration <= 0 {
		return SoakConfig{}, errors.Errorf("the duration must be positive, got %s", c.Duration)
	}

	return c, nil
}
