package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeRangeFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid one-hour range", input: "09:00-10:00"},
		{name: "valid last slot", input: "16:00-17:00"},
		{name: "missing dash", input: "09:00", wantErr: true},
		{name: "hour out of range", input: "25:00-26:00", wantErr: true},
		{name: "minute out of range", input: "09:61-10:00", wantErr: true},
		{name: "end before start", input: "10:00-09:00", wantErr: true},
		{name: "end equals start", input: "09:00-09:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "morning", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := NewTimeRangeFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, tr.String())
		})
	}
}

func TestTimeRange_StartEnd(t *testing.T) {
	tr := TimeRange("09:00-10:00")

	assert.Equal(t, "09:00", tr.Start())
	assert.Equal(t, "10:00", tr.End())
	assert.Equal(t, 9*60, tr.StartMinutes())
}

func TestTimeRange_IsZero(t *testing.T) {
	assert.True(t, TimeRange("").IsZero())
	assert.False(t, TimeRange("09:00-10:00").IsZero())
}
