package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeReward_Tiers(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		end       time.Time
		wantEarly bool
		wantDays  int
		wantStars int
	}{
		{"six days early", now.Add(6 * 24 * time.Hour), true, 6, 3},
		{"five days early", now.Add(5 * 24 * time.Hour), true, 5, 3},
		{"two days early", now.Add(2 * 24 * time.Hour), true, 2, 2},
		{"one day early", now.Add(24 * time.Hour), true, 1, 1},
		{"half a day early", now.Add(12 * time.Hour), true, 0, 0},
		{"exactly on time", now, false, 0, 0},
		{"one day late", now.Add(-24 * time.Hour), false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ComputeReward(&tt.end, now)
			assert.Equal(t, tt.wantEarly, r.IsEarly)
			assert.Equal(t, tt.wantDays, r.DaysEarly)
			assert.Equal(t, tt.wantStars, r.Stars)
		})
	}
}

func TestComputeReward_NoEndDate(t *testing.T) {
	r := ComputeReward(nil, time.Now().UTC())
	assert.False(t, r.IsEarly)
	assert.Zero(t, r.Stars)
}
