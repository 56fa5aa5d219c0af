package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"grimoire/internal/validate"
)

var checkAction string

var checkCmd = &cobra.Command{
	Use:   "check <table> <record.json>",
	Short: "Validate a record against a table's introspected schema",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		action, err := validate.ParseAction(checkAction)
		if err != nil {
			return err
		}

		in := newIntrospector()
		desc, err := in.Describe(args[0])
		if err != nil {
			return err
		}
		rec, err := loadRecord(args[1])
		if err != nil {
			return err
		}

		v := validate.New(desc)
		v.Housekeeping = GetHousekeeping()
		if action != validate.ActionCreate {
			if key := desc.Key(); key != nil {
				ids, err := in.Ids(desc.Table, key.Name)
				if err != nil {
					return err
				}
				v.KnownIDs = ids
			}
		}

		ok, errs, err := v.Validate(rec, action)
		if err != nil {
			return err
		}

		report := struct {
			OK     bool            `json:"ok"`
			Errors validate.Errors `json:"errors,omitempty"`
		}{OK: ok, Errors: errs}
		if err := printJSON(report); err != nil {
			return err
		}
		if !ok {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkAction, "action", "create", "operation to validate for: create, read, update or delete")
}
