package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Amr-9/vanityjobs/internal/config"
	logpkg "github.com/Amr-9/vanityjobs/internal/logger"
	"github.com/Amr-9/vanityjobs/internal/ui"
	"github.com/Amr-9/vanityjobs/pkg/jobs"
	"github.com/Amr-9/vanityjobs/pkg/keys"
	"github.com/Amr-9/vanityjobs/pkg/notify"
	"github.com/Amr-9/vanityjobs/pkg/pattern"
	"github.com/Amr-9/vanityjobs/pkg/wallet"
)

const (
	version         = "1.0"
	shutdownTimeout = 10 * time.Second
)

var (
	cfg    = config.NewConfig()
	logger *logpkg.Logger
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "vanity",
		Short: "Base58 vanity address search",
		Long: `Searches for Solana, Tron and Bitcoin keypairs whose base58 address
starts with, ends with or contains a chosen pattern. Every hit comes with
a BIP-39 seed phrase that re-derives it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := setupLogging(); err != nil {
				return err
			}
			if cfg.LowPriority {
				if err := lowerPriority(); err != nil {
					logger.Printf("Warning: could not lower process priority: %v", err)
				}
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfg.Network, "network", "n", cfg.Network, "Network: solana, tron or bitcoin")
	flags.StringVarP(&cfg.Match, "match", "m", cfg.Match, "Match type: prefix, suffix or contains")
	flags.IntVar(&cfg.MaxConcurrent, "max-concurrent", cfg.MaxConcurrent, "Maximum number of jobs running at once")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Time limit for a single search")
	flags.Uint64Var(&cfg.NotifyStep, "notify-step", cfg.NotifyStep, "Attempts between two progress notifications")
	flags.Uint64Var(&cfg.MaxAttempts, "max-attempts", cfg.MaxAttempts, "Attempts after which a search gives up")
	flags.IntVarP(&cfg.Threads, "threads", "t", cfg.Threads, "Search goroutines per job")
	flags.BoolVar(&cfg.LowPriority, "low-priority", false, "Run searches below normal process priority")
	flags.BoolVar(&cfg.RejectExtreme, "reject-extreme", false, "Refuse patterns with an extreme time estimate")
	flags.StringVarP(&cfg.Store, "store", "s", cfg.Store, "Wallet store: file path, file://, postgres:// or mysql:// DSN (empty disables)")
	flags.StringVar(&cfg.Passphrase, "passphrase", cfg.Passphrase, "Passphrase sealing stored secrets (default $"+config.EnvPassphrase+")")
	flags.StringVar(&cfg.PushoverToken, "pushover-token", cfg.PushoverToken, "Pushover application token (default $"+config.EnvPushoverToken+")")
	flags.StringVar(&cfg.PushoverUser, "pushover-user", cfg.PushoverUser, "Pushover user key (default $"+config.EnvPushoverUser+")")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
	flags.StringVarP(&cfg.LogFile, "log-file", "l", "", "Log file (default: stdout)")

	rootCmd.AddCommand(
		estimateCmd(),
		searchCmd(),
		serveCmd(),
		recoverCmd(),
		listCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging() error {
	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logger = logpkg.NewWriter(file)
		logger.SetFlags(logpkg.LstdFlags | logpkg.Lmicroseconds)
	} else {
		logger = logpkg.New()
		logger.SetFlags(logpkg.LstdFlags)
	}
	logger.SetVerbose(cfg.Verbose)
	return nil
}

// newManager wires the job manager to the configured store and notifiers.
// console may be nil to keep notifications off the terminal.
func newManager(ctx context.Context, console jobs.Notifier, managerLog *logpkg.Logger) (*jobs.Manager, wallet.Store, error) {
	jc, err := cfg.JobsConfig()
	if err != nil {
		return nil, nil, err
	}

	var notifiers notify.Multi
	if console != nil {
		notifiers = append(notifiers, console)
	}
	if cfg.Pushover() {
		p, err := notify.NewPushover(cfg.PushoverToken, cfg.PushoverUser)
		if err != nil {
			return nil, nil, err
		}
		notifiers = append(notifiers, notify.Filter{
			Next:  p,
			Kinds: []jobs.Kind{jobs.KindSuccess, jobs.KindError, jobs.KindCancelled},
		})
	}

	opts := []jobs.Option{jobs.WithLogger(managerLog)}
	if len(notifiers) > 0 {
		opts = append(opts, jobs.WithNotifier(notifiers))
	}

	var store wallet.Store
	if cfg.Store != "" {
		store, err = wallet.Open(ctx, cfg.Store, cfg.Passphrase)
		if err != nil {
			return nil, nil, fmt.Errorf("opening wallet store: %w", err)
		}
		opts = append(opts, jobs.WithWalletStore(store))
		if cfg.Passphrase == "" {
			logger.Printf("Warning: secrets in %s are stored unsealed; set --passphrase or $%s", cfg.Store, config.EnvPassphrase)
		}
	}

	logger.Debugf("Manager: %s", cfg.Describe())
	return jobs.NewManager(jc, opts...), store, nil
}

func closeStore(store wallet.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Printf("Error closing wallet store: %v", err)
	}
}

func estimateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "estimate PATTERN",
		Short: "Show how hard a pattern is to find",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mt, err := cfg.MatchType()
			if err != nil {
				return err
			}
			d, err := pattern.Validate(args[0], mt)
			if err != nil {
				printValidation(cmd.OutOrStdout(), err)
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Pattern:    %s (%s)\n", args[0], mt)
			fmt.Fprintf(out, "Difficulty: 1 in %s\n", ui.FormatNumber(uint64(d.Base)))
			fmt.Fprintf(out, "Attempts:   ~%s for a 50%% chance\n", ui.FormatNumber(d.EstimatedAttempts))
			fmt.Fprintf(out, "Time:       ~%s at %d attempts/sec\n", d.EstimatedTime(), pattern.ReferenceThroughput)
			fmt.Fprintf(out, "Warning:    %s\n", d.Warning)
			return nil
		},
	}
}

func printValidation(w io.Writer, err error) {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			fmt.Fprintf(w, "    %s✗ %v%s\n", ui.ColorRed, e, ui.ColorReset)
		}
		return
	}
	fmt.Fprintf(w, "    %s✗ %v%s\n", ui.ColorRed, err, ui.ColorReset)
}

func recoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recover WORD...",
		Short: "Re-derive a keypair from its seed phrase",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			network, err := keys.ParseNetwork(cfg.Network)
			if err != nil {
				return err
			}
			kp, err := keys.Recover(network, strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Network:     %s\n", network)
			fmt.Fprintf(out, "Address:     %s\n", kp.Address)
			fmt.Fprintf(out, "Public Key:  %s\n", kp.PublicKey)
			fmt.Fprintf(out, "Private Key: %s\n", kp.PrivateKey)
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List wallets saved in a file store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := wallet.Open(cmd.Context(), cfg.Store, cfg.Passphrase)
			if err != nil {
				return err
			}
			defer closeStore(store)

			fs, ok := store.(*wallet.FileStore)
			if !ok {
				return fmt.Errorf("list reads file stores only, %q is a database", cfg.Store)
			}
			recs, err := fs.Records()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range recs {
				fmt.Fprintf(out, "%s  %-8s %-46s %s\n", r.CreatedAt.Format("2006-01-02 15:04"), r.Network, r.Address, r.RequesterID)
				if cfg.Verbose {
					fmt.Fprintf(out, "    private key: %s\n    seed: %s (%s)\n", r.PrivateKey, r.Mnemonic, r.Path)
				}
			}
			fmt.Fprintf(out, "%d wallet(s)\n", len(recs))
			return nil
		},
	}
}
