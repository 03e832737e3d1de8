package resolve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysSince(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name string
		last *time.Time
		want *int
	}{
		{
			name: "nil last action",
			last: nil,
			want: nil,
		},
		{
			name: "exactly seven days",
			last: timePtr(now.AddDate(0, 0, -7)),
			want: intPtr(7),
		},
		{
			name: "partial day truncates down",
			last: timePtr(now.Add(-(7*24 + 23) * time.Hour)),
			want: intPtr(7),
		},
		{
			name: "same instant",
			last: timePtr(now),
			want: intPtr(0),
		},
		{
			name: "one day in the future clamps to zero",
			last: timePtr(now.AddDate(0, 0, 1)),
			want: intPtr(0),
		},
		{
			name: "one hour in the future clamps to zero",
			last: timePtr(now.Add(time.Hour)),
			want: intPtr(0),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := DaysSince(tc.last, now)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tc.want, *got)
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }
func intPtr(i int) *int              { return &i }
