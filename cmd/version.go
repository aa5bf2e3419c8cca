package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCommand(version string, commit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), versionString(version, commit))
		},
	}
}

func versionString(version string, commit string) string {
	s := fmt.Sprintf("%s %s", appName, version)
	if commit != "none" && commit != "" {
		s += fmt.Sprintf(" (%s)", commit)
	}
	return s + "\n"
}
