package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"news-dashboard/internal/pkg/config"
)

func TestValidateCronSchedule(t *testing.T) {
	valid := []string{"*/30 * * * *", "0 */6 * * *", "30 5 * * 1-5"}
	for _, schedule := range valid {
		assert.NoError(t, config.ValidateCronSchedule(schedule), "schedule %s", schedule)
	}

	invalid := []string{"", "every half hour", "* * * *", "61 * * * *"}
	for _, schedule := range invalid {
		assert.Error(t, config.ValidateCronSchedule(schedule), "schedule %s", schedule)
	}
}

func TestValidateTimezone(t *testing.T) {
	assert.NoError(t, config.ValidateTimezone("UTC"))
	assert.NoError(t, config.ValidateTimezone("Europe/London"))
	assert.Error(t, config.ValidateTimezone(""))
	assert.Error(t, config.ValidateTimezone("Mars/Olympus_Mons"))
}

func TestValidateDuration(t *testing.T) {
	assert.NoError(t, config.ValidateDuration(30*time.Minute, time.Minute, 4*time.Hour))
	assert.Error(t, config.ValidateDuration(30*time.Second, time.Minute, 4*time.Hour))
	assert.Error(t, config.ValidateDuration(5*time.Hour, time.Minute, 4*time.Hour))
}

func TestValidateIntRange(t *testing.T) {
	assert.NoError(t, config.ValidateIntRange(9091, 1024, 65535))
	assert.Error(t, config.ValidateIntRange(80, 1024, 65535))
	assert.Error(t, config.ValidateIntRange(70000, 1024, 65535))
}

func TestValidatePositiveDuration(t *testing.T) {
	assert.NoError(t, config.ValidatePositiveDuration(time.Second))
	assert.Error(t, config.ValidatePositiveDuration(0))
	assert.Error(t, config.ValidatePositiveDuration(-time.Second))
}
