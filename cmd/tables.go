package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the base tables of the connected schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := newIntrospector().Tables()
		if err != nil {
			return err
		}
		for _, t := range tables {
			fmt.Println(t)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(tablesCmd)
}
