package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMMSS(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{seconds: 0, want: "00:00"},
		{seconds: 1, want: "00:01"},
		{seconds: 59, want: "00:59"},
		{seconds: 60, want: "01:00"},
		{seconds: 61, want: "01:01"},
		{seconds: 1800, want: "30:00"},
		{seconds: 3599, want: "59:59"},
		{seconds: 3600, want: "60:00"},
		{seconds: -5, want: "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMMSS(tt.seconds))
		})
	}
}

func TestSnapshot_Valid(t *testing.T) {
	now := newFakeClock().Now()

	assert.False(t, Snapshot{}.Valid(now))
	assert.False(t, Snapshot{Token: "t", ExpiresAt: now.UnixMilli()}.Valid(now))
	assert.True(t, Snapshot{Token: "t", ExpiresAt: now.UnixMilli() + 1}.Valid(now))
	assert.False(t, Snapshot{ExpiresAt: now.UnixMilli() + 1000}.Valid(now))
}

func TestParseExpiresAt(t *testing.T) {
	assert.Equal(t, int64(0), parseExpiresAt(""))
	assert.Equal(t, int64(0), parseExpiresAt("abc"))
	assert.Equal(t, int64(0), parseExpiresAt("-10"))
	assert.Equal(t, int64(1762160400000), parseExpiresAt("1762160400000"))
}
