package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"echomark/internal/stem"
)

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the languages echomark can stem",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range stem.Supported() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
