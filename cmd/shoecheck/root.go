package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for shoecheck.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shoecheck",
		Short: "Content check for the shoe store site",
		Long: `shoecheck crawls the monthly shoe listings of a shoe store site and reports,
for every listing, whether its description, image and price are present.
It also submits the email reminder form once and reports the response.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
