package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"

	"grimoire/internal/dialect"
	"grimoire/internal/persist"
	"grimoire/internal/seed"
)

var seedCount int

var seedCmd = &cobra.Command{
	Use:   "seed <table>",
	Short: "Fill a table with generated sample records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		desc, err := newIntrospector().Describe(args[0])
		if err != nil {
			return err
		}
		if desc.Key() == nil {
			return fmt.Errorf("table %s has no generated key column; seed needs one", desc.Table)
		}

		log.Printf("Seeding %s with %d records...", desc.Table, seedCount)
		start := time.Now()

		uiprogress.Start()
		bar := uiprogress.AddBar(seedCount).AppendCompleted().PrependElapsed()

		p := persist.New(DB, dialect.GetDialect(DriverName))
		inserted := 0
		var lastErr error
		for i := 0; i < seedCount; i++ {
			rec := seed.Record(desc)
			if _, err := p.Save(desc, rec, nil); err != nil {
				lastErr = err
			} else {
				inserted++
			}
			bar.Incr()
		}
		uiprogress.Stop()

		fmt.Printf("%s: %d/%d rows inserted in %s\n", desc.Table, inserted, seedCount, time.Since(start))
		if lastErr != nil {
			fmt.Printf("  last error: %v\n", lastErr)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVar(&seedCount, "count", 10, "number of records to generate")
}
