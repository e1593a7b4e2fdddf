package cmd

import (
	"fmt"
	"os"

	colex "github.com/gnames/colex/pkg"
	"github.com/spf13/cobra"
)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", colex.Version, colex.Build)
		os.Exit(0)
	}
}
