package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"grimoire/internal/dialect"
	"grimoire/internal/persist"
	"grimoire/internal/schema"
	"grimoire/internal/validate"
)

var saveCmd = &cobra.Command{
	Use:   "save <table> <record.json>",
	Short: "Validate and persist a record, satellites included",
	Long: `Validates the record against the table's introspected schema, then
upserts the primary row and full-replaces each declared satellite set in
one transaction. Prints the record id.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := newIntrospector()
		desc, err := in.Describe(args[0])
		if err != nil {
			return err
		}
		rec, err := loadRecord(args[1])
		if err != nil {
			return err
		}

		action := validate.ActionCreate
		key := desc.Key()
		if key != nil && schema.ValueLen(rec[key.Name]) > 0 {
			action = validate.ActionUpdate
		}

		v := validate.New(desc)
		v.Housekeeping = GetHousekeeping()
		if action == validate.ActionUpdate {
			ids, err := in.Ids(desc.Table, key.Name)
			if err != nil {
				return err
			}
			v.KnownIDs = ids
		}

		ok, errs, err := v.Validate(rec, action)
		if err != nil {
			return err
		}
		if !ok {
			printJSON(errs)
			os.Exit(1)
		}

		sats, err := satellitesFor(desc.Table, rec)
		if err != nil {
			return err
		}

		p := persist.New(DB, dialect.GetDialect(DriverName))
		id, err := p.Save(desc, rec, sats)
		if err != nil {
			return err
		}
		fmt.Printf("saved %s id=%d\n", desc.Table, id)
		return nil
	},
}

// satellitesFor binds the declared satellite relations to the posted
// member sets of this record.
func satellitesFor(table string, rec schema.Record) ([]persist.Satellite, error) {
	cfgs, err := GetSatellites(table)
	if err != nil {
		return nil, err
	}
	var sats []persist.Satellite
	for _, c := range cfgs {
		sats = append(sats, persist.Satellite{
			Table:        c.Table,
			OwnerColumn:  c.Owner,
			MemberColumn: c.Member,
			Members:      schema.Values(rec[c.Key]),
		})
	}
	return sats, nil
}

func init() {
	RootCmd.AddCommand(saveCmd)
}
