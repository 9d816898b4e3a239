// ticketbox-terminal is the point-of-sale terminal for selling event
// tickets at the door. Staff build a cart from the event catalog, take
// payment through the configured terminal and print one 140mm x 76mm
// ticket per seat.
//
// The terminal is a full-screen TUI. Logs go to a file so they do not
// corrupt the display. When --api-addr is set, a small HTTP API serves
// the catalog and recent transactions to collaborating tools.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"ticketbox-terminal/internal/clock"
	"ticketbox-terminal/internal/config"
	"ticketbox-terminal/internal/handlers"
	"ticketbox-terminal/internal/logger"
	"ticketbox-terminal/internal/services"
	"ticketbox-terminal/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	flagSet := pflag.NewFlagSet("ticketbox-terminal", pflag.ContinueOnError)
	config.RegisterFlags(flagSet, cfg)
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(cfg.Env, cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	clk := clock.Real()
	catalog := services.NewCatalogService(services.DefaultEvents(), clk, log.Named("catalog"))
	transactions := services.NewTransactionService(services.DefaultTransactions())
	encoder := services.NewQREncoder(services.DefaultQRSize)

	payments := services.NewMockPaymentProvider(clk, cfg.Payment.Delay, log.Named("payment"))
	payments.SetDecline(cfg.Payment.Decline)

	spooler, err := newSpooler(cfg, log)
	if err != nil {
		return err
	}
	printer := services.NewTicketPrinter(encoder, services.NewTicketPDFRenderer(), spooler, log.Named("printer"))

	log.Info("terminal starting",
		zap.String("env", cfg.Env),
		zap.String("print_mode", cfg.Print.Mode),
		zap.Duration("print_timeout", cfg.Print.Timeout),
		zap.Duration("payment_delay", cfg.Payment.Delay),
		zap.Bool("payment_decline", cfg.Payment.Decline),
	)

	if cfg.API.Addr != "" {
		server := &http.Server{
			Addr: cfg.API.Addr,
			Handler: handlers.NewRouter(handlers.RouterDeps{
				Catalog:      catalog,
				Transactions: transactions,
				Encoder:      encoder,
				Logger:       log.Named("api"),
				Clock:        clk,
			}),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		go func() {
			log.Info("api listening", zap.String("addr", cfg.API.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("api server failed", zap.Error(err))
			}
		}()

		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				log.Error("api shutdown failed", zap.Error(err))
			}
			log.Info("api stopped")
		}()
	}

	model := tui.NewModel(tui.Config{
		Catalog:        catalog,
		Transactions:   transactions,
		Payments:       payments,
		Encoder:        encoder,
		Printer:        printer,
		PrintTimeout:   cfg.Print.Timeout,
		Clock:          clk,
		Logger:         log.Named("tui"),
		CurrencySymbol: cfg.Currency.Symbol,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal: %w", err)
	}
	log.Info("terminal stopped")
	return nil
}

func newSpooler(cfg *config.Config, log *zap.Logger) (services.Spooler, error) {
	switch cfg.Print.Mode {
	case config.PrintModeCommand:
		spooler, err := services.NewCommandSpooler(cfg.Print.Command, log.Named("spooler"))
		if err != nil {
			return nil, fmt.Errorf("prepare print command: %w", err)
		}
		return spooler, nil
	case config.PrintModeR2:
		spooler, err := services.NewR2Spooler(cfg.R2, log.Named("spooler"))
		if err != nil {
			return nil, fmt.Errorf("prepare R2 archive: %w", err)
		}
		return spooler, nil
	default:
		spooler, err := services.NewDirectorySpooler(cfg.Print.SpoolDir)
		if err != nil {
			return nil, fmt.Errorf("prepare spool directory: %w", err)
		}
		return spooler, nil
	}
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Ticketbox ticket terminal: sell and print event tickets at the door.

Settings are read from the environment (and .env.local / .env) and can
be overridden with flags. Logs are written to --log-file.

Usage:
  ticketbox-terminal [flags]

Flags:
`)
	flagSet.PrintDefaults()
}
