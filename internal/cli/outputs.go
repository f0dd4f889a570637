package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gcp-byoc-network/internal/manifest"
)

var outputsCmd = &cobra.Command{
	Use:   "outputs <manifest-file>",
	Short: "Print the outputs recorded in a saved manifest",
	Long: `Print the outputs recorded in a manifest saved with

  gcloud deployment-manager manifests describe --deployment NAME MANIFEST --format json

JSON and YAML manifests are accepted. Use --output-only to read the outputs
of a live deployment instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := manifest.Load(args[0])
		if err != nil {
			return err
		}
		outputs, err := m.Outputs()
		if err != nil {
			return err
		}
		return json.NewEncoder(cmd.OutOrStdout()).Encode(outputs)
	},
}
