package config

import (
	"fmt"

	verrors "git.home.luguber.info/inful/vaultsync/internal/errors"
)

var validAuthTypes = map[string]bool{"": true, "none": true, "token": true, "basic": true, "ssh": true}

var backoffNormalizer = newNormalizer("retry backoff", map[string]string{
	"fixed":       "fixed",
	"linear":      "linear",
	"exponential": "exponential",
}, "")

// Validate checks a configuration after defaults have been applied.
func Validate(cfg *Config) error {
	if cfg.Source.Path == "" {
		return verrors.ConfigRequired("source.path")
	}
	if cfg.Destination.Path == "" {
		return verrors.ConfigRequired("destination.path")
	}
	if cfg.Watch.Debounce < 0 {
		return verrors.ValidationFailed("watch.debounce", "must not be negative")
	}
	if cfg.Watch.Interval < 0 {
		return verrors.ValidationFailed("watch.interval", "must not be negative")
	}
	if err := logLevelNormalizer.Check(cfg.Logging.Level); err != nil {
		return verrors.ValidationFailed("logging.level", err.Error())
	}
	if err := logFormatNormalizer.Check(cfg.Logging.Format); err != nil {
		return verrors.ValidationFailed("logging.format", err.Error())
	}

	if git := cfg.Source.Git; git != nil {
		if git.URL == "" {
			return verrors.ConfigRequired("source.git.url")
		}
		if git.Auth != nil && !validAuthTypes[git.Auth.Type] {
			return verrors.ValidationFailed("source.git.auth.type", fmt.Sprintf("unsupported auth type %q", git.Auth.Type))
		}
		if err := backoffNormalizer.Check(git.Retry.Backoff); err != nil {
			return verrors.ValidationFailed("source.git.retry.backoff", err.Error())
		}
		if git.Retry.MaxRetries < 0 || git.Retry.Initial < 0 || git.Retry.Max < 0 {
			return verrors.ValidationFailed("source.git.retry", "must not be negative")
		}
	}
	return nil
}
