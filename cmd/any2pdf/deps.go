package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arturict/any2pdf/internal/tools"
)

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Check which external conversion tools are installed",
	RunE: func(cmd *cobra.Command, args []string) error {
		tc := tools.Detect()
		tc.Print(cmd.OutOrStdout())
		if !tc.HasOffice() {
			return fmt.Errorf("office suite not found: install LibreOffice to convert office documents")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(depsCmd)
}
