package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version is injected via ldflags at build time.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the simulator version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("trashsim %s (%s/%s)\n", Version, runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
