package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/cricket-scorer/internal/domain/careerstats"
	"github.com/riskibarqy/cricket-scorer/internal/domain/delivery"
	"github.com/riskibarqy/cricket-scorer/internal/domain/match"
	"github.com/riskibarqy/cricket-scorer/internal/platform/logging"
)

// Exit codes for scorecard commands.
const (
	ExitSuccess      = 0
	ExitMismatch     = 1 // replay disagrees with the stored projection or the incremental fold
	ExitCommandError = 2
)

// ExitError carries the process exit code of a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the code for err; errors without one exit with ExitCommandError.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// Store is the persisted state the commands read and rebuild.
type Store struct {
	Matches    match.Repository
	Deliveries delivery.Repository
	Careers    careerstats.Repository
}

// Opener connects to the store lazily so help and flag errors need no database.
type Opener func(ctx context.Context) (Store, func() error, error)

type rootOptions struct {
	format string
	open   Opener
	logger *logging.Logger
}

var validFormats = []string{"text", "json"}

func NewRootCommand(open Opener, logger *logging.Logger) *cobra.Command {
	if logger == nil {
		logger = logging.Default()
	}
	opts := &rootOptions{open: open, logger: logger}

	cmd := &cobra.Command{
		Use:           "scorecard",
		Short:         "Inspect and verify persisted cricket matches",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(validFormats, opts.format) {
				return &ExitError{Code: ExitCommandError, Message: fmt.Sprintf("invalid format %q: must be one of %v", opts.format, validFormats)}
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.format, "format", "text", "output format (text|json)")

	cmd.AddCommand(newReplayCommand(opts))
	cmd.AddCommand(newRebuildCareerCommand(opts))
	return cmd
}

func (o *rootOptions) withStore(ctx context.Context, fn func(Store) error) error {
	if o.open == nil {
		return &ExitError{Code: ExitCommandError, Message: "no store configured"}
	}
	store, closeFn, err := o.open(ctx)
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: "open store", Err: err}
	}
	defer func() {
		if closeFn == nil {
			return
		}
		if err := closeFn(); err != nil {
			o.logger.Warn("close store failed", "error", err)
		}
	}()
	return fn(store)
}

func writeJSON(w io.Writer, v any) error {
	raw, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}
