// Package cli implements the gcp-byoc commands.
package cli

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/gcp-byoc-network/internal/config"
	"github.com/blackwell-systems/gcp-byoc-network/internal/gcloud"
	"github.com/blackwell-systems/gcp-byoc-network/internal/provision"
)

var rootCmd = &cobra.Command{
	Use:   "gcp-byoc",
	Short: "Provision a BYOC network with Deployment Manager",
	Long: `Provision the network, service account and custom role of a BYOC
installation in a GCP project using Cloud Deployment Manager.

By default the deployment is created and its outputs are printed as JSON.
Use --output-only to print the outputs of an existing deployment and
--delete to tear it down. Progress is written to stderr.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := cfg.ResolveProject(cmd.Context()); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err := newLogger(cfg.Verbose)
		if err != nil {
			return err
		}
		defer logger.Sync()

		p := &provision.Provisioner{
			Client: &gcloud.Client{
				Runner: &gcloud.ExecRunner{Binary: cfg.Gcloud, Logger: logger},
			},
			Logger:   logger,
			Progress: cmd.ErrOrStderr(),
		}

		outputs, err := p.Run(cmd.Context(), provision.Options{
			Project:    cfg.Project,
			Name:       cfg.Name,
			Region:     cfg.Region,
			CIDR:       cfg.CIDR,
			Controller: cfg.Controller,
			OutputOnly: cfg.OutputOnly,
			Delete:     cfg.Delete,
		})
		if err != nil {
			return err
		}
		if cfg.Delete {
			return nil
		}

		return json.NewEncoder(cmd.OutOrStdout()).Encode(outputs)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringP("project", "p", "", "GCP project ID")
	pf.StringP("name", "n", "", "Name of the BYOC installation")
	pf.StringP("region", "r", "", "GCP region")
	pf.StringP("cidr", "c", config.DefaultCIDR, "IPv4 CIDR of the subnetwork")
	pf.String("controller-account", config.DefaultController, "Service account allowed to impersonate the installation")
	pf.String("gcloud", "gcloud", "Path to the gcloud binary")
	pf.Bool("verbose", false, "Log every gcloud invocation")

	rootCmd.Flags().BoolP("output-only", "o", false, "Get the outputs of previously created resources")
	rootCmd.Flags().BoolP("delete", "d", false, "Delete previously created resources")
	rootCmd.MarkFlagsMutuallyExclusive("output-only", "delete")

	for _, key := range []string{"project", "name", "region", "cidr", "controller-account", "gcloud", "verbose"} {
		config.BindFlag(key, pf.Lookup(key))
	}
	config.BindFlag("output-only", rootCmd.Flags().Lookup("output-only"))
	config.BindFlag("delete", rootCmd.Flags().Lookup("delete"))

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(outputsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command. The context is cancelled on SIGINT or
// SIGTERM, which kills a running gcloud child process.
func Execute(version string) error {
	rootCmd.Version = version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "✗ %v\n", err)
		return err
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
