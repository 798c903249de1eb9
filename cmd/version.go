package cmd

import (
	"fmt"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/spf13/cobra"
)

var versionInfo = buildinfo.Version("dev", "", "")

func setVersion(version, commit, date string) {
	versionInfo = buildinfo.Version(version, commit, date)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "chyp8 %s\n", versionInfo)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
