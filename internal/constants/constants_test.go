package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialLabel(t *testing.T) {
	assert.Equal(t, "UNKNOWN", InitialLabel)
}

func TestDefaults(t *testing.T) {
	assert.Positive(t, DefaultSMTPTimeout)
	assert.Positive(t, DefaultNotifyConcurrency)
	assert.NotEmpty(t, DefaultRedisKeyPrefix)
	assert.Equal(t, ".buildwatch", BuildwatchHome)
}
