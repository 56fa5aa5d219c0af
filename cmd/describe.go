package cmd

import (
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <table>",
	Short: "Print the introspected schema descriptor for a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		desc, err := newIntrospector().Describe(args[0])
		if err != nil {
			return err
		}
		return printJSON(desc)
	},
}

func init() {
	RootCmd.AddCommand(describeCmd)
}
