package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gcp-byoc-network/internal/config"
	"github.com/blackwell-systems/gcp-byoc-network/internal/deployment"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the deployment document",
	Long: `Print the Deployment Manager document that would be submitted for the
installation, without contacting GCP. References such as $(ref.sa.email)
are left for Deployment Manager to resolve.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := cfg.ResolveProject(cmd.Context()); err != nil {
			return err
		}
		if cfg.Project == "" || cfg.Name == "" || cfg.Region == "" {
			return fmt.Errorf("project, name and region are required")
		}

		doc := deployment.Generate(deployment.Params{
			Name:       cfg.Name,
			Region:     cfg.Region,
			CIDR:       cfg.CIDR,
			Project:    cfg.Project,
			Controller: cfg.Controller,
		})
		if err := doc.Validate(nil); err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		case "yaml":
			data, err := doc.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		default:
			return fmt.Errorf("invalid format: %s (must be yaml or json)", format)
		}
	},
}

func init() {
	renderCmd.Flags().String("format", "yaml", "Output format (yaml|json)")
}
