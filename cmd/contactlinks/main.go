// Command contactlinks runs the contact pipeline on a local spreadsheet.
//
//	contactlinks process contacts.xlsx
//	contactlinks clean contacts.xlsx -o cleaned.xlsx
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/CalKK/campaignmessaging/internal/application"
	"github.com/CalKK/campaignmessaging/internal/config"
	"github.com/CalKK/campaignmessaging/internal/core"
	"github.com/CalKK/campaignmessaging/internal/logging"
	"github.com/CalKK/campaignmessaging/internal/sheet"
	"github.com/CalKK/campaignmessaging/internal/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:          "contactlinks",
		Short:        "Turn contact spreadsheets into campaign chat links",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), logLevel, "text"))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	root.AddCommand(newProcessCmd(), newCleanCmd())
	return root
}

func newProcessCmd() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "process [input.xlsx]",
		Short: "Validate contacts and print chat links as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}

			res, err := withInput(args[0], func(name string, r io.Reader) (*core.ProcessResult, error) {
				return app.Service.Process(cmd.Context(), name, r)
			})
			if err != nil {
				return userError(err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(web.ProcessResponse{
				Contacts: app.Linker.Generate(res.Result.Contacts),
				Summary:  res.Summary(),
			})
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func newCleanCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "clean [input.xlsx]",
		Short: "Write a normalized two-column workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}

			res, err := withInput(args[0], func(name string, r io.Reader) (*core.CleanResult, error) {
				return app.Service.Clean(cmd.Context(), name, r, sheet.XLSX{})
			})
			if err != nil {
				return userError(err)
			}

			if err := os.WriteFile(outputPath, res.Data, 0o644); err != nil {
				return userError(&core.WriteFailure{Op: "write " + outputPath, Err: err})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", len(res.Rows), outputPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "cleaned_contacts.xlsx", "Output workbook path")
	return cmd
}

func loadApp() (*application.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return application.New(cfg)
}

func withInput[T any](path string, fn func(name string, r io.Reader) (T, error)) (T, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %w", core.ErrNoFile, err)
	}
	defer f.Close()
	return fn(filepath.Base(path), f)
}

// userError keeps the technical error and appends the mapped guidance.
func userError(err error) error {
	if !core.IsUserFacing(err) {
		return err
	}
	return fmt.Errorf("%w\n%s", err, core.FormatUserError(err))
}
