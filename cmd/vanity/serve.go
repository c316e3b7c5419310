package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Amr-9/vanityjobs/internal/ui"
	"github.com/Amr-9/vanityjobs/pkg/jobs"
	"github.com/Amr-9/vanityjobs/pkg/notify"
)

const serveHelp = `commands:
  start <requester> <pattern> [prefix|suffix|contains]
  status <requester>
  cancel <requester> [reason]
  active
  quit`

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the job manager with a line-oriented command interpreter on stdin",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	m, store, err := newManager(cmd.Context(), notify.NewConsole(logger), logger)
	if err != nil {
		return err
	}
	defer closeStore(store)
	defer m.Shutdown(shutdownTimeout)

	logger.Printf("Serving vanity jobs: %s", cfg.Describe())

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	out := cmd.OutOrStdout()
	for {
		select {
		case <-sigChan:
			logger.Println("Received interrupt signal. Cancelling active jobs...")
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := handleLine(cmd, m, out, line); quit {
				return nil
			}
		}
	}
}

// handleLine executes one interpreter command and reports whether to quit.
func handleLine(cmd *cobra.Command, m *jobs.Manager, out io.Writer, line string) bool {
	c, err := ui.ParseCommand(line)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return false
	}

	switch c.Name {
	case "":
	case "start":
		ticket, err := m.Start(cmd.Context(), c.Requester, c.Pattern, c.Match)
		if err != nil {
			var ipe *jobs.InvalidPatternError
			if errors.As(err, &ipe) {
				printValidation(out, ipe.Err)
				return false
			}
			fmt.Fprintf(out, "error: %v\n", err)
			return false
		}
		fmt.Fprintf(out, "job %s started for %s (~%s, %s)\n",
			ticket.JobID, c.Requester, ticket.Difficulty.EstimatedTime(), ticket.Difficulty.Warning)
		go awaitOutcome(ticket)
	case "status":
		v, ok := m.Status(c.Requester)
		if !ok {
			fmt.Fprintf(out, "%s has no active job\n", c.Requester)
			return false
		}
		fmt.Fprintf(out, "job %s: %s %s %q on %s, %s attempts in %s (%s)\n",
			v.JobID, v.State, v.MatchType, v.Pattern, v.Network,
			ui.FormatNumber(v.Attempts), ui.FormatDuration(v.Elapsed),
			ui.FormatHashRate(ui.Rate(v.Attempts, v.Elapsed)))
	case "cancel":
		if !m.Cancel(c.Requester, c.Reason) {
			fmt.Fprintf(out, "%s has no active job\n", c.Requester)
		}
	case "active":
		fmt.Fprintf(out, "%d active job(s)\n", m.Active())
	case "help":
		fmt.Fprintln(out, serveHelp)
	case "quit":
		return true
	}
	return false
}

// awaitOutcome logs where a finished job's secrets ended up.
func awaitOutcome(ticket jobs.Ticket) {
	out, ok := <-ticket.Done
	if !ok {
		return
	}
	switch {
	case out.State != jobs.Succeeded:
		logger.Debugf("job %s: %v", out.JobID, out.Err())
	case out.PersistErr != nil:
		logger.Printf("job %s found %s but it was NOT saved: %v", out.JobID, out.Result.Address, out.PersistErr)
	case cfg.Store == "":
		logger.Printf("job %s found %s; no store configured, seed phrase: %s", out.JobID, out.Result.Address, out.Result.Mnemonic)
	default:
		logger.Printf("job %s found %s, saved to %s", out.JobID, out.Result.Address, cfg.Store)
	}
}
