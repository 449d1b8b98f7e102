package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DEFAULT_FINE", "")
	t.Setenv("REWARD_RATE", "")
	t.Setenv("DUPLICATE_WINDOW", "")
	t.Setenv("DUPLICATE_TOLERANCE", "")
	t.Setenv("SUMMARY_CACHE_TTL", "")

	cfg := Load()

	assert.Equal(t, 115, cfg.DefaultFine)
	assert.InDelta(t, 0.10, cfg.RewardRate, 1e-9)
	assert.Equal(t, 2*time.Hour, cfg.DuplicateWindow)
	assert.InDelta(t, 0.001, cfg.DuplicateTolerance, 1e-12)
	assert.Equal(t, time.Duration(0), cfg.SummaryCacheTTL)
	assert.Equal(t, int64(8<<20), cfg.EvidenceMaxBytes)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DEFAULT_FINE", "90")
	t.Setenv("DUPLICATE_WINDOW", "30m")
	t.Setenv("S3_USE_SSL", "true")
	t.Setenv("SUMMARY_CACHE_TTL", "1m")

	cfg := Load()

	assert.Equal(t, 90, cfg.DefaultFine)
	assert.Equal(t, 30*time.Minute, cfg.DuplicateWindow)
	assert.True(t, cfg.S3UseSSL)
	assert.Equal(t, time.Minute, cfg.SummaryCacheTTL)
}

func TestMalformedValuesFallBack(t *testing.T) {
	t.Setenv("DEFAULT_FINE", "lots")
	t.Setenv("DUPLICATE_TOLERANCE", "near")
	t.Setenv("JWT_ACCESS_EXPIRY", "soon")

	cfg := Load()

	assert.Equal(t, 115, cfg.DefaultFine)
	assert.InDelta(t, 0.001, cfg.DuplicateTolerance, 1e-12)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "5432", DBSSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())
}
