package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateDurationRange(t *testing.T) {
	tests := []struct {
		name    string
		d       time.Duration
		min     time.Duration
		max     time.Duration
		wantErr string
	}{
		{"範囲内", time.Minute, time.Second, time.Hour, ""},
		{"下限ちょうど", time.Second, time.Second, time.Hour, ""},
		{"上限ちょうど", time.Hour, time.Second, time.Hour, ""},
		{"下限未満", time.Millisecond, time.Second, time.Hour, "below minimum"},
		{"上限超過", 2 * time.Hour, time.Second, time.Hour, "exceeds maximum"},
		{"範囲が逆", time.Minute, time.Hour, time.Second, "invalid range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDurationRange(tt.d, tt.min, tt.max)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidatePositiveAndNonNegative(t *testing.T) {
	assert.NoError(t, ValidatePositiveDuration(time.Second))
	assert.Error(t, ValidatePositiveDuration(0))
	assert.NoError(t, ValidateNonNegativeDuration(0))
	assert.Error(t, ValidateNonNegativeDuration(-time.Second))
}
