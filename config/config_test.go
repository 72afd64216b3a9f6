package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())

	t.Setenv("ENV", "test")
	assert.Equal(t, Test, GetEnvironment())

	// CI detection wins over ENV
	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}

func TestValidateConfig(t *testing.T) {
	valid := &Config{
		ServerPort: "8080",
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "postgres",
		DBPassword: "secret",
		DBName:     "recipes",
		JWTSecret:  "jwt-secret",
	}
	assert.NoError(t, ValidateConfig(valid))

	missing := *valid
	missing.JWTSecret = ""
	assert.Error(t, ValidateConfig(&missing))

	// S3 is optional, but a bucket without a region is a misconfiguration
	s3 := *valid
	s3.S3Bucket = "images"
	assert.Error(t, ValidateConfig(&s3))
	s3.AWSRegion = "us-east-1"
	assert.NoError(t, ValidateConfig(&s3))
}
