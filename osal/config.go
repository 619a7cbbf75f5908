// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package osal

import (
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/xmidt-org/osal/clock"
	"github.com/xmidt-org/osal/rtos"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

const (
	// ConfigKey is the Viper subkey under which port configuration is stored.
	// FromViper *does not* assume this key.
	ConfigKey = "osal"
)

// Config selects and configures a port.
type Config struct {
	// Port is the port name.  The empty string selects Linux.
	Port string `json:"port"`

	// TickRateHz is the simulated kernel tick rate for the FreeRTOS port.
	TickRateHz float64 `json:"tickRateHz"`

	// MaxMutexes bounds the simulated kernel heap for the FreeRTOS port.  Zero is unlimited.
	MaxMutexes int `json:"maxMutexes"`

	// PollInterval is the mutex polling interval for the Linux port.
	PollInterval time.Duration `json:"pollInterval"`
}

// Sub returns the standard child Viper, using ConfigKey, for this package.
// If passed nil, this function returns nil.
func Sub(v *viper.Viper) *viper.Viper {
	if v != nil {
		return v.Sub(ConfigKey)
	}

	return nil
}

// FromViper produces a Config from a (possibly nil) Viper instance.  Durations may be given as
// strings such as "5ms".
func FromViper(v *viper.Viper) (Config, error) {
	var c Config
	if v != nil {
		err := v.Unmarshal(&c, viper.DecodeHook(mapstructure.StringToTimeDurationHookFunc()))

		if err != nil {
			return Config{}, errors.Wrap(err, "unable to unmarshal osal configuration")
		}
	}

	return c, nil
}

// New builds the port named by the configuration.  The FreeRTOS port runs on a simulated kernel
// using the system clock.  A nil logger selects sallust.Default().
func New(c Config, logger *zap.Logger) (Interface, error) {
	if logger == nil {
		logger = sallust.Default()
	}

	switch strings.ToLower(c.Port) {
	case FreeRTOS:
		k := rtos.NewKernel(&rtos.Options{
			TickRateHz: c.TickRateHz,
			MaxMutexes: c.MaxMutexes,
			Clock:      clock.System(),
			Logger:     logger,
		})

		return NewFreeRTOS(k, logger), nil

	case Linux, "":
		return NewLinux(clock.System(), c.PollInterval), nil

	case Noop:
		return NewNoop(), nil

	default:
		return nil, errors.Errorf("unsupported osal port: %s", c.Port)
	}
}
