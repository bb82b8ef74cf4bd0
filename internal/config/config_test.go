package config

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{"00:00", Clock{0, 0}, false},
		{"23:59", Clock{23, 59}, false},
		{"9:05", Clock{9, 5}, false},
		{"24:00", Clock{}, true},
		{"12:60", Clock{}, true},
		{"noon", Clock{}, true},
		{"", Clock{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseClock(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClock(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseClock(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestClockString(t *testing.T) {
	if got := (Clock{Hour: 0, Minute: 0}).String(); got != "00:00" {
		t.Errorf("Clock.String() = %q, want 00:00", got)
	}
	if got := (Clock{Hour: 9, Minute: 5}).String(); got != "09:05" {
		t.Errorf("Clock.String() = %q, want 09:05", got)
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "s")
	if _, err := Load(); err == nil {
		t.Error("Load without DATABASE_URL should fail")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/safeflight")
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Error("Load without JWT_SECRET should fail")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/safeflight")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("API_PORT", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIPort != 5005 {
		t.Errorf("APIPort = %d, want 5005", cfg.APIPort)
	}
	if cfg.CaseAPITimeout != 8*time.Second {
		t.Errorf("CaseAPITimeout = %v, want 8s", cfg.CaseAPITimeout)
	}
	if cfg.RiskCacheTTL != time.Hour {
		t.Errorf("RiskCacheTTL = %v, want 1h", cfg.RiskCacheTTL)
	}
	if cfg.NotifyTimeZone != "Asia/Manila" {
		t.Errorf("NotifyTimeZone = %q, want Asia/Manila", cfg.NotifyTimeZone)
	}
	if cfg.NotifyAt != "00:00" {
		t.Errorf("NotifyAt = %q, want 00:00", cfg.NotifyAt)
	}
	if cfg.JWTExpiry != time.Hour {
		t.Errorf("JWTExpiry = %v, want 1h", cfg.JWTExpiry)
	}
	if cfg.IsProduction() {
		t.Error("default environment should not be production")
	}
}

func TestLoadRejectsBadSchedule(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/safeflight")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("NOTIFY_AT", "25:00")
	if _, err := Load(); err == nil {
		t.Error("Load with NOTIFY_AT=25:00 should fail")
	}
}

func TestLoadRejectsBadTimezone(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/safeflight")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("NOTIFY_TIMEZONE", "Mars/Olympus")
	if _, err := Load(); err == nil {
		t.Error("Load with bad NOTIFY_TIMEZONE should fail")
	}
}
