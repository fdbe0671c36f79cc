// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// startup requirements. Every failing group contributes its own error, so
// the caller sees all problems at once.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("%w: unsupported db driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver))
	}
	if cfg.Storage.DB.DSN == "" {
		errs = append(errs, fmt.Errorf("%w: empty database DSN", ErrInvalidStorageConfigs))
	}

	if cfg.App.TokenSignKey == "" {
		errs = append(errs, fmt.Errorf("%w: empty token sign key", ErrInvalidAppConfigs))
	}
	if cfg.App.TokenIssuer == "" {
		errs = append(errs, fmt.Errorf("%w: empty token issuer", ErrInvalidAppConfigs))
	}
	if cfg.App.SessionDuration <= 0 {
		errs = append(errs, fmt.Errorf("%w: session duration must be positive", ErrInvalidAppConfigs))
	}

	if cfg.Server.HTTPAddress == "" {
		errs = append(errs, fmt.Errorf("%w: empty http address", ErrInvalidServerConfigs))
	}
	if cfg.Server.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: request timeout must be positive", ErrInvalidServerConfigs))
	}

	if cfg.Workers.SessionSweepInterval <= 0 {
		errs = append(errs, fmt.Errorf("%w: session sweep interval must be positive", ErrInvalidWorkerConfigs))
	}

	return errors.Join(errs...)
}
