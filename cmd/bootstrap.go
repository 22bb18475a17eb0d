package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create the tables and indexes the server needs",
	Long: `Create every table and secondary index that does not exist yet.

Safe to run repeatedly. The redis driver needs no setup and returns at once.`,
	RunE: runBootstrap,
}

func init() {
	bootstrapCmd.Flags().Duration("timeout", 30*time.Second, "give up after this long")
	rootCmd.AddCommand(bootstrapCmd)
}

func runBootstrap(cmd *cobra.Command, args []string) error {
	timeout, _ := cmd.Flags().GetDuration("timeout")

	rt, err := newDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	if err := rt.repo.Bootstrap(ctx); err != nil {
		rt.logger.Error("Bootstrap failed", zap.Error(err))
		return err
	}

	rt.logger.Info("Tables ready", zap.String("driver", rt.config.Store.Driver))
	return nil
}
