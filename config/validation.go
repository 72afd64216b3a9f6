package config

import (
	"fmt"
	"strings"
)

// ValidateConfig checks that every value the server cannot run without is set.
// Redis and S3 are optional subsystems and are not validated here.
func ValidateConfig(cfg *Config) error {
	var errs []string

	required := map[string]string{
		"server port": cfg.ServerPort,
		"db host":     cfg.DBHost,
		"db port":     cfg.DBPort,
		"db user":     cfg.DBUser,
		"db password": cfg.DBPassword,
		"db name":     cfg.DBName,
		"jwt secret":  cfg.JWTSecret,
	}
	for name, value := range required {
		if value == "" {
			errs = append(errs, fmt.Sprintf("required configuration value %q is not set", name))
		}
	}

	if cfg.S3Bucket != "" && cfg.AWSRegion == "" {
		errs = append(errs, "aws region is required when an s3 bucket is configured")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}
	return nil
}
