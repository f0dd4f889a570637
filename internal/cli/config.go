package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gcp-byoc-network/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show resolved configuration",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), config.Display())
	},
}
