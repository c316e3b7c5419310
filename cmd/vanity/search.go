package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	logpkg "github.com/Amr-9/vanityjobs/internal/logger"
	"github.com/Amr-9/vanityjobs/internal/ui"
	"github.com/Amr-9/vanityjobs/pkg/jobs"
	"github.com/Amr-9/vanityjobs/pkg/keys"
	"github.com/Amr-9/vanityjobs/pkg/pattern"
)

const (
	cliRequester = "cli"
	updateRate   = 100 * time.Millisecond
)

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [PATTERN]",
		Short: "Search for one vanity address (interactive without PATTERN)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSearch,
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)
	interactive := len(args) == 0

	if interactive {
		ui.PrintBanner(version)
		cfg.Network = ui.SelectNetwork(reader).String()
	}
	network, err := keys.ParseNetwork(cfg.Network)
	if err != nil {
		return err
	}

	// The progress bar owns the terminal; manager logs go to the log file
	// or are shown only in verbose mode.
	managerLog := logpkg.Discard()
	if cfg.LogFile != "" || cfg.Verbose {
		managerLog = logger
	}

	m, store, err := newManager(cmd.Context(), nil, managerLog)
	if err != nil {
		return err
	}
	defer closeStore(store)
	defer m.Shutdown(shutdownTimeout)

	for {
		var (
			p  string
			mt pattern.MatchType
		)
		if interactive {
			p, mt = ui.GetPatternFromUser(reader, network)
			if p == "" {
				fmt.Printf("\n    %s✗ Enter a valid pattern!%s\n\n", ui.ColorRed, ui.ColorReset)
				continue
			}
		} else {
			p = args[0]
			if mt, err = cfg.MatchType(); err != nil {
				return err
			}
		}

		outcome, err := searchOnce(cmd.Context(), m, network, p, mt)
		if !interactive {
			if err != nil {
				return err
			}
			if outcome.State == jobs.Cancelled {
				return nil
			}
			return outcome.Err()
		}
		if err != nil {
			printValidation(os.Stdout, err)
		}
		if !ui.AskToContinue(reader) {
			return nil
		}
		fmt.Println()
	}
}

// searchOnce runs one job to completion, drawing progress until it ends or
// the user interrupts it.
func searchOnce(ctx context.Context, m *jobs.Manager, network keys.Network, p string, mt pattern.MatchType) (jobs.Outcome, error) {
	ticket, err := m.Start(ctx, cliRequester, p, mt)
	if err != nil {
		return jobs.Outcome{}, err
	}
	d := ticket.Difficulty
	ui.PrintSearchInfo(network, p, mt, d)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ticker := time.NewTicker(updateRate)
	defer ticker.Stop()
	frame := 0

	for {
		select {
		case out := <-ticket.Done:
			ui.ClearLine()
			printOutcome(out)
			return out, nil

		case <-ticker.C:
			if v, ok := m.Status(cliRequester); ok {
				ui.PrintProgress(v.Attempts, v.Elapsed, d.EstimatedAttempts, frame)
				frame++
			}

		case <-sigChan:
			m.Cancel(cliRequester, "interrupted")
		}
	}
}

func printOutcome(out jobs.Outcome) {
	switch out.State {
	case jobs.Succeeded:
		savedTo := cfg.Store
		if out.PersistErr != nil {
			savedTo = ""
		}
		ui.PrintSuccess(*out.Result, savedTo)
		if out.PersistErr != nil {
			fmt.Printf("    %s⚠ Save failed: %v%s\n", ui.ColorYellow, out.PersistErr, ui.ColorReset)
		}
	case jobs.Cancelled:
		fmt.Println()
		fmt.Printf("    %s⚠ Cancelled%s │ %s attempts │ %s\n",
			ui.ColorYellow+ui.ColorBold, ui.ColorReset,
			ui.FormatNumber(out.Attempts),
			ui.FormatDuration(out.Elapsed))
	default:
		fmt.Println()
		msg := out.Reason
		if errors.Is(out.Err(), jobs.ErrTimedOut) {
			msg = "timed out after " + ui.FormatDuration(out.Elapsed)
		}
		fmt.Printf("    %s✗ %s%s │ %s attempts\n", ui.ColorRed+ui.ColorBold, msg, ui.ColorReset, ui.FormatNumber(out.Attempts))
	}
}
