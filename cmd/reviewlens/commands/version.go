package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dwij1704/Visual-Review-Extractor/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
