package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/trivia-loader/internal/app"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the trivia-loader version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "trivia-loader", app.BuildVersion())
		},
	}
}
