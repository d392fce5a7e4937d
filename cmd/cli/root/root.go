package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:   "forum",
	Short: "Forum API CLI",
	Long:  "Command line interface for interacting with the Forum API",
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// GetRoot returns the root command for registration by subcommand packages.
func GetRoot() *cobra.Command {
	return RootCmd
}
