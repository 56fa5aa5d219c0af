package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"grimoire/internal/dialect"
	"grimoire/internal/form"
	"grimoire/internal/schema"
)

var (
	formValues string
	formLegend string
)

var formCmd = &cobra.Command{
	Use:   "form <table>",
	Short: "Build the data-entry form descriptor for a table",
	Long: `Introspects the table, attaches any declared satellite fields, and
prints the form descriptor as JSON. Pass --values to preload a record.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		desc, err := newIntrospector().Describe(args[0])
		if err != nil {
			return err
		}
		if err := attachSatelliteFields(desc); err != nil {
			return err
		}

		values := schema.Record{}
		if formValues != "" {
			if values, err = loadRecord(formValues); err != nil {
				return err
			}
		}

		built, err := form.Build(desc, values, nil, form.Config{
			LegendColumn: formLegend,
			Housekeeping: GetHousekeeping(),
		})
		if err != nil {
			return err
		}
		return printJSON(built)
	},
}

// attachSatelliteFields appends one multi-select field per declared
// satellite relation, placed after the description column when the
// table has one.
func attachSatelliteFields(desc *schema.Descriptor) error {
	sats, err := GetSatellites(desc.Table)
	if err != nil {
		return err
	}
	if len(sats) == 0 {
		return nil
	}

	resolver := &schema.OptionResolver{
		DB:      DB,
		Dialect: dialect.GetDialect(DriverName),
		Schema:  SchemaName,
		Labels:  viper.GetStringMapString("labels"),
	}

	for _, s := range sats {
		opts, ref, err := resolver.ForeignKeyOptions(s.Table, s.Member)
		if err != nil {
			return err
		}
		col := &schema.Column{
			Name:       s.Member,
			DataType:   schema.TypeInteger,
			IsNullable: true,
			Options:    opts,
			Ref:        ref,
			ValuesKey:  s.Key,
			Multiple:   true,
		}
		insertAfter(desc, "description", col)
	}
	return nil
}

func insertAfter(desc *schema.Descriptor, anchor string, col *schema.Column) {
	for i, c := range desc.Columns {
		if c.Name == anchor {
			desc.Columns = append(desc.Columns[:i+1],
				append([]*schema.Column{col}, desc.Columns[i+1:]...)...)
			return
		}
	}
	desc.Columns = append(desc.Columns, col)
}

func init() {
	RootCmd.AddCommand(formCmd)

	formCmd.Flags().StringVar(&formValues, "values", "", "JSON record file to preload the form with")
	formCmd.Flags().StringVar(&formLegend, "legend", "", "column whose context titles the form")
}
