package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = ""

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of notehub-server",
	Run: func(cmd *cobra.Command, args []string) {
		v := Version
		if v == "" {
			v = "devel"
			if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
				v = info.Main.Version
			}
		}
		fmt.Printf("notehub-server version %s\n", v)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
