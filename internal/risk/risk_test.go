package risk

import "testing"

func TestClassifyCases(t *testing.T) {
	tests := []struct {
		name  string
		cases int
		want  Level
	}{
		{"zero cases", 0, LevelLow},
		{"exactly at medium threshold", 1000, LevelLow},
		{"just above medium threshold", 1001, LevelMedium},
		{"exactly at high threshold", 10000, LevelMedium},
		{"just above high threshold", 10001, LevelHigh},
		{"large outbreak", 250000, LevelHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyCases(tt.cases); got != tt.want {
				t.Errorf("ClassifyCases(%d) = %q, want %q", tt.cases, got, tt.want)
			}
		})
	}
}

func TestLevelValid(t *testing.T) {
	for _, l := range []Level{LevelLow, LevelMedium, LevelHigh, LevelUnknown} {
		if !l.Valid() {
			t.Errorf("Level %q should be valid", l)
		}
	}
	if Level("critical").Valid() {
		t.Error("Level \"critical\" should not be valid")
	}
}
