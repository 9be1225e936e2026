// Package cli is the terminal surface of the Hermes client engine. The
// commands are thin: they wire stdin/stdout to the controllers and do
// no feed logic of their own.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/strawberrySword/hermes/internal/app"
)

var engine *app.Engine

var rootCmd = &cobra.Command{
	Use:           "hermes",
	Short:         "News feed client for the Hermes API",
	Long:          "hermes browses personalized article feeds, discovers new topics with a swipe flow, and keeps likes in sync with the Hermes API.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		engine, err = app.Setup(cmd.Context())
		if err != nil {
			return fmt.Errorf("setting up: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if engine != nil {
			_ = engine.Close()
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(likeCmd)
	rootCmd.AddCommand(rssCmd)
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
