package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"quill/internal/app/bootstrap"
	"quill/internal/platform/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// API process entrypoint.
// Data flow:
// 1) Load config (flags > QUILL_* env > config file > defaults).
// 2) Build app wiring (ports + adapters + use cases).
// 3) Serve until SIGINT/SIGTERM, then drain.
func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := config.NewViper()

	root := &cobra.Command{
		Use:           "quill-api",
		Short:         "Blog content API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), v)
		},
	}
	flags := root.PersistentFlags()
	flags.String("config", "", "path to a config file (yaml, json or toml)")
	flags.String("http-port", "", "port the HTTP server listens on")
	flags.String("store-driver", "", "store backend: memory, postgres or mongo")
	flags.String("image-store-driver", "", "image backend: memory or s3")
	flags.String("log-format", "", "log format: json or text")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	for _, name := range []string{"config", "http-port", "store-driver", "image-store-driver", "log-format", "log-level"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd.Context(), v)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create tables or indexes for the configured store",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, logger, err := load(v)
				if err != nil {
					return err
				}
				return bootstrap.Migrate(cmd.Context(), cfg, logger)
			},
		},
		newPromoteCommand(v),
	)
	return root
}

func newPromoteCommand(v *viper.Viper) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Grant admin rights to a registered account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := load(v)
			if err != nil {
				return err
			}
			account, err := bootstrap.Promote(cmd.Context(), cfg, email, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "account %s (%s) is now an admin\n", account.AccountID, account.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email of the account to promote")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func runServe(ctx context.Context, v *viper.Viper) error {
	cfg, logger, err := load(v)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.BuildAPI(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(context.Background()); closeErr != nil {
			logger.Error("close api app failed",
				"event", "api_close_failed",
				"module", "cmd/api",
				"layer", "platform",
				"error", closeErr.Error(),
			)
		}
	}()

	return app.Run(ctx)
}

func load(v *viper.Viper) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, bootstrap.NewLogger(cfg), nil
}
