package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDurationOrDefault(t *testing.T) {
	assert.Equal(t, 5*time.Second, ParseDurationOrDefault("", 5*time.Second))
	assert.Equal(t, 5*time.Second, ParseDurationOrDefault("soon", 5*time.Second))
	assert.Equal(t, 5*time.Second, ParseDurationOrDefault("-1s", 5*time.Second))
	assert.Equal(t, 250*time.Millisecond, ParseDurationOrDefault(" 250ms ", 5*time.Second))
}

func TestCheckDuration(t *testing.T) {
	assert.NoError(t, CheckDuration("server.shutdown_timeout", ""))
	assert.NoError(t, CheckDuration("server.shutdown_timeout", "10s"))
	assert.EqualError(t, CheckDuration("server.shutdown_timeout", "0s"), "server.shutdown_timeout must be positive")
	err := CheckDuration("server.http.read_timeout", "ten")
	assert.ErrorContains(t, err, "server.http.read_timeout is invalid")
}
