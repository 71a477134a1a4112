package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"bookshelf-backend/internal/config"
	"bookshelf-backend/pkg/container"
	"bookshelf-backend/pkg/logger"
)

// shelfCLI carries the state shared by every command.
type shelfCLI struct {
	out io.Writer
	in  io.Reader

	driver     string
	sqlitePath string
	verbose    bool
	timeout    time.Duration

	// loadConfig is replaced in tests.
	loadConfig func() (*config.Config, error)
}

func newShelfCLI(out io.Writer, in io.Reader) *shelfCLI {
	return &shelfCLI{out: out, in: in, loadConfig: config.Load}
}

func newRootCmd(cli *shelfCLI) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shelf",
		Short: "Write, publish and read books from the command line",
		Long: `shelf works against the same store as the bookshelf API.

Drafts are saved under an 8-character save code. Publishing takes a snapshot
of the draft into the shared published collection, which anyone can read.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if cli.verbose {
				level = "debug"
			}
			logger.Init("development", level)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cli.driver, "driver", "", "Store driver override (memory, sqlite, redis, postgres, minio)")
	rootCmd.PersistentFlags().StringVar(&cli.sqlitePath, "sqlite-path", "", "SQLite file override")
	rootCmd.PersistentFlags().BoolVarP(&cli.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().DurationVar(&cli.timeout, "timeout", 30*time.Second, "Operation timeout")

	rootCmd.AddCommand(
		newDraftCmd(cli),
		newPublishCmd(cli),
		newBooksCmd(cli),
		newUnpublishCmd(cli),
		newOwnedCmd(cli),
		newReadCmd(cli),
		newExportCmd(cli),
	)
	return rootCmd
}

// open builds the container for one command run. The caller must call the returned cleanup.
func (cli *shelfCLI) open(cmd *cobra.Command) (*container.Container, context.Context, func(), error) {
	cfg, err := cli.loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	if cli.driver != "" {
		cfg.Store.Driver = cli.driver
	}
	if cli.sqlitePath != "" {
		cfg.Store.SQLitePath = cli.sqlitePath
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cli.timeout)
	c, err := container.NewWithConfig(ctx, cfg)
	if err != nil {
		cancel()
		return nil, nil, nil, err
	}

	return c, ctx, func() {
		c.Cleanup()
		cancel()
	}, nil
}
