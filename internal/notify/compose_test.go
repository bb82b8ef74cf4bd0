package notify

import (
	"strings"
	"testing"

	"github.com/kahayonz/safeflight/internal/risk"
)

func TestCompose(t *testing.T) {
	tests := []struct {
		name        string
		level       risk.Level
		wantPhrase  string
		positive    bool
	}{
		{"high warns against travel", risk.LevelHigh, "NOT safe", false},
		{"medium cautions", risk.LevelMedium, "some risks", false},
		{"low confirms", risk.LevelLow, "safe to travel", true},
		{"unknown reports missing data", risk.LevelUnknown, "unavailable", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Compose("Thailand", tt.level)
			if !strings.Contains(msg, tt.wantPhrase) {
				t.Errorf("Compose(Thailand, %s) = %q, want phrase %q", tt.level, msg, tt.wantPhrase)
			}
			if !strings.Contains(msg, "Thailand") {
				t.Errorf("Compose output %q missing destination", msg)
			}
			if warned := strings.Contains(msg, "Warning"); warned == tt.positive {
				t.Errorf("Compose(Thailand, %s) = %q: warning prefix mismatch", tt.level, msg)
			}
		})
	}
}

func TestComposeDeterministic(t *testing.T) {
	a := Compose("France", risk.LevelHigh)
	b := Compose("France", risk.LevelHigh)
	if a != b {
		t.Errorf("Compose is not deterministic: %q vs %q", a, b)
	}
}

func TestSubjectAndBody(t *testing.T) {
	subject := Subject("France")
	if !strings.Contains(subject, "France") {
		t.Errorf("Subject missing destination: %q", subject)
	}

	body := Body("France", "2024-05-01", "assessment here")
	for _, want := range []string{"France", "2024-05-01", "assessment here", "SafeFlight"} {
		if !strings.Contains(body, want) {
			t.Errorf("Body missing %q:\n%s", want, body)
		}
	}
}
