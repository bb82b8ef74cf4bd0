package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kahayonz/safeflight/internal/risk"
	"github.com/kahayonz/safeflight/internal/store"
)

// Resolver maps a destination string to a risk level.
type Resolver interface {
	Resolve(ctx context.Context, destination string) risk.Level
}

// Result is the outcome of one account's resolve → compose → send sequence.
type Result struct {
	Email       string     `json:"email"`
	Destination string     `json:"destination"`
	RiskLevel   risk.Level `json:"risk_level,omitempty"`
	Sent        bool       `json:"sent"`
	Error       string     `json:"error,omitempty"`
}

// Summary collects per-account results from one scan-and-send pass, so
// partial failures are observable without log scraping.
type Summary struct {
	Date     string        `json:"date"`
	Found    int           `json:"found"`
	Sent     int           `json:"sent"`
	Failed   int           `json:"failed"`
	Results  []Result      `json:"results,omitempty"`
	Duration time.Duration `json:"duration"`
}

func (s Summary) String() string {
	return fmt.Sprintf("date=%s found=%d sent=%d failed=%d in %s",
		s.Date, s.Found, s.Sent, s.Failed, s.Duration.Round(time.Millisecond))
}

// Pipeline wires the account store, destination resolver, and mailer into
// the daily scan-and-send pass.
type Pipeline struct {
	store    store.AccountStore
	resolver Resolver
	mailer   Mailer
	logger   *slog.Logger
}

// NewPipeline creates a notification pipeline.
func NewPipeline(st store.AccountStore, resolver Resolver, mailer Mailer, logger *slog.Logger) *Pipeline {
	return &Pipeline{store: st, resolver: resolver, mailer: mailer, logger: logger}
}

// Run executes one scan-and-send pass for the given date (YYYY-MM-DD).
// Accounts are processed one at a time; a failure for one account is
// recorded in the summary and the loop continues with the next. No retries
// within a run.
func (p *Pipeline) Run(ctx context.Context, date string) Summary {
	start := time.Now()
	summary := Summary{Date: date}

	accounts, err := p.store.FindByFlightDate(ctx, date)
	if err != nil {
		p.logger.Error("flight date scan failed", "date", date, "error", err)
		summary.Duration = time.Since(start)
		return summary
	}
	summary.Found = len(accounts)
	if len(accounts) == 0 {
		summary.Duration = time.Since(start)
		return summary
	}

	for _, account := range accounts {
		r := p.notifyAccount(ctx, account, date)
		summary.Results = append(summary.Results, r)
		if r.Sent {
			summary.Sent++
		} else {
			summary.Failed++
			p.logger.Warn("notification failed",
				"email", account.Email, "destination", r.Destination, "error", r.Error)
		}
	}

	summary.Duration = time.Since(start)
	p.logger.Info("scan-and-send pass complete", "summary", summary.String())
	return summary
}

// notifyAccount runs the resolve → compose → send sequence for one account.
func (p *Pipeline) notifyAccount(ctx context.Context, account store.Account, date string) Result {
	r := Result{Email: account.Email}

	fd := account.FlightDetails
	if fd == nil || fd.Destination == "" {
		r.Error = "account has no flight destination"
		return r
	}
	r.Destination = fd.Destination

	r.RiskLevel = p.resolver.Resolve(ctx, fd.Destination)
	msg := Compose(fd.Destination, r.RiskLevel)

	if err := p.mailer.Send(ctx, account.Email, Subject(fd.Destination), Body(fd.Destination, date, msg)); err != nil {
		r.Error = err.Error()
		return r
	}

	r.Sent = true
	p.logger.Info("sent safety email", "email", account.Email, "destination", fd.Destination, "risk", r.RiskLevel)
	return r
}
