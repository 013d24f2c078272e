package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus_Markers(t *testing.T) {
	tests := []struct {
		raw      string
		hasScore bool
		want     GameStatus
	}{
		// Final markers
		{"Final", false, StatusFinal},
		{"FT", false, StatusFinal},
		{"Full Time", true, StatusFinal},
		{"Match Finished", false, StatusFinal},
		{"Match Ended", true, StatusFinal},
		{"AET", true, StatusFinal},
		{"FT (Pen)", true, StatusFinal},

		// Live markers
		{"Live", false, StatusLive},
		{"In Play", true, StatusLive},
		{"In Progress", true, StatusLive},
		{"Halftime", true, StatusLive},
		{"HT", true, StatusLive},
		{"1st Quarter", true, StatusLive},
		{"Q3", true, StatusLive},
		{"2H", true, StatusLive},
		{"OT", true, StatusLive},

		// Scheduled markers
		{"NS", false, StatusScheduled},
		{"Not Started", false, StatusScheduled},
		{"Scheduled", false, StatusScheduled},
		{"TBD", false, StatusScheduled},
		{"Postponed", false, StatusScheduled},
		{"PPD", false, StatusScheduled},
		{"Cancelled", false, StatusScheduled},
		{"Delayed", true, StatusScheduled},
		{"Suspended", true, StatusScheduled},

		// Unrecognized: score presence decides.
		{"Weather Hold 7", true, StatusLive},
		{"???", false, StatusScheduled},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyStatus(tt.raw, tt.hasScore, StatusFinal))
		})
	}
}

func TestClassifyStatus_EmptyStatus(t *testing.T) {
	// No status, no score: the game has not started.
	assert.Equal(t, StatusScheduled, ClassifyStatus("", false, StatusFinal))
	assert.Equal(t, StatusScheduled, ClassifyStatus("   ", false, StatusLive))

	// No status with a score: caller-supplied policy decides.
	assert.Equal(t, StatusFinal, ClassifyStatus("", true, StatusFinal))
	assert.Equal(t, StatusLive, ClassifyStatus("", true, StatusLive))
}

func TestClassifyStatus_IsTotal(t *testing.T) {
	// Every input lands in the closed enum, whatever the feed sends.
	inputs := []string{"", "  ", "garbage", "第3クォーター", "INT.", "ABANDONED", "98'", "Final OT", "live\n"}
	for _, raw := range inputs {
		for _, hasScore := range []bool{true, false} {
			got := ClassifyStatus(raw, hasScore, StatusFinal)
			assert.Contains(t, []GameStatus{StatusScheduled, StatusLive, StatusFinal}, got,
				"raw=%q hasScore=%v", raw, hasScore)
		}
	}
}
