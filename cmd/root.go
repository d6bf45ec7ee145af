// Package cmd implements the htmlkit command line.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/htmlkit/config"
	"github.com/chrisuehlinger/htmlkit/logging"
	"github.com/chrisuehlinger/htmlkit/network"
)

// newRootCmd builds the command tree. The returned config is filled in by
// PersistentPreRunE before any subcommand runs.
func newRootCmd() (*cobra.Command, *config.Config) {
	var cfgFile string
	cfg := config.NewDefaultConfig()

	root := &cobra.Command{
		Use:           "htmlkit",
		Short:         "Build and query HTML documents through element facades.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(viper.New(), cfgFile)
			if err != nil {
				logging.InitializeLogger(cfg.Logger)
				return err
			}
			*cfg = *loaded
			logging.InitializeLogger(cfg.Logger)
			logging.L().Debug("Configuration loaded.", zap.String("command", cmd.Name()))
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./htmlkit.yaml)")

	root.AddCommand(newBuildCmd(cfg), newQueryCmd(cfg))
	return root, cfg
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	root, _ := newRootCmd()
	err := root.ExecuteContext(context.Background())
	logging.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newLoader creates a resource loader from the network configuration.
func newLoader(cfg *config.Config) (*network.Loader, error) {
	client, err := network.NewClient(cfg.Network)
	if err != nil {
		return nil, err
	}
	return network.NewLoader(client), nil
}
