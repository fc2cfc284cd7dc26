package client

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(a.out, "Build version: %s\n", orNA(a.buildInfo.BuildVersion()))
			fmt.Fprintf(a.out, "Build date: %s\n", orNA(a.buildInfo.BuildDate()))
			fmt.Fprintf(a.out, "Build commit: %s\n", orNA(a.buildInfo.BuildCommit()))
		},
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
