// Command notify is the SafeFlight operational CLI for the flight-safety
// notification pipeline.
//
// Usage:
//
//	safeflight-notify run
//	safeflight-notify run --date 2024-05-01
//	safeflight-notify resolve "Paris, France"
//	safeflight-notify compose Thailand high
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kahayonz/safeflight/internal/config"
	"github.com/kahayonz/safeflight/internal/db"
	"github.com/kahayonz/safeflight/internal/external"
	"github.com/kahayonz/safeflight/internal/notify"
	"github.com/kahayonz/safeflight/internal/risk"
	"github.com/kahayonz/safeflight/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "safeflight-notify",
		Short: "SafeFlight notification pipeline CLI",
	}

	root.AddCommand(runCmd())
	root.AddCommand(resolveCmd())
	root.AddCommand(composeCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// run command — one scan-and-send pass
// --------------------------------------------------------------------------

func runCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one scan-and-send pass (defaults to today in the notify timezone)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			pool, err := db.New(ctx, cfg)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer pool.Close()

			if date == "" {
				loc, err := time.LoadLocation(cfg.NotifyTimeZone)
				if err != nil {
					return fmt.Errorf("load timezone: %w", err)
				}
				date = time.Now().In(loc).Format("2006-01-02")
			} else if _, err := time.Parse("2006-01-02", date); err != nil {
				return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
			}

			riskCache := newRiskCache(cfg.Risk())
			mailer := notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)
			pipeline := notify.NewPipeline(store.NewPostgres(pool.Pool), riskCache, mailer, logger)

			summary := pipeline.Run(ctx, date)
			fmt.Println(summary.String())
			for _, r := range summary.Results {
				status := "sent"
				if !r.Sent {
					status = "failed: " + r.Error
				}
				fmt.Printf("  %s -> %s [%s] %s\n", r.Email, r.Destination, r.RiskLevel, status)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Flight date to scan (YYYY-MM-DD)")
	return cmd
}

// --------------------------------------------------------------------------
// resolve command — destination risk lookup
// --------------------------------------------------------------------------

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <destination>",
		Short: "Resolve a destination's current risk level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			level := newRiskCache(config.LoadRiskSettings()).Resolve(ctx, args[0])
			fmt.Printf("%s: %s\n", args[0], level)
			return nil
		},
	}
}

// --------------------------------------------------------------------------
// compose command — message preview
// --------------------------------------------------------------------------

func composeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compose <destination> <level>",
		Short: "Preview the safety message for a destination and risk level",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := risk.Level(args[1])
			if !level.Valid() {
				return fmt.Errorf("level must be one of low, medium, high, unknown")
			}
			fmt.Println(notify.Compose(args[0], level))
			return nil
		},
	}
}

func newRiskCache(rs config.RiskSettings) *risk.Cache {
	caseClient := external.NewCaseClient(rs.CaseAPIURL, rs.CaseAPITimeout)
	return risk.NewCache(caseClient, rs.RiskCacheTTL, logger)
}
