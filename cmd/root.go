package cmd

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"grimoire/internal/dialect"
	"grimoire/internal/schema"
)

var (
	dsn        string
	DB         *sql.DB
	SchemaName string
	cfgFile    string
	DriverName string
)

var RootCmd = &cobra.Command{
	Use:   "grimoire",
	Short: "Schema-driven administration for tabletop rule data",
	Long: `Grimoire reads a rule database's own catalog metadata to validate,
persist and lay out entry forms for spells, qualities, programs and the
rest of a game line's record types - no per-entity field lists.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Viper precedence: flag > single database entry > active entry
		// of the databases list.
		connStr := viper.GetString("database.dsn")
		configDriver := viper.GetString("database.driver")
		if connStr == "" {
			if active, err := GetActiveDBConfig(); err == nil {
				connStr = active.DSN
				if configDriver == "" {
					configDriver = active.Driver
				}
			}
		}
		if connStr == "" {
			return fmt.Errorf("database.dsn is required (via flag or config)")
		}

		if configDriver != "" {
			DriverName = configDriver
		} else {
			DriverName = detectDriver(connStr)
		}

		var err error
		DB, err = sql.Open(DriverName, connStr)
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		if err := DB.Ping(); err != nil {
			return fmt.Errorf("failed to connect to db: %w", err)
		}

		// Fetch the current database/schema name for the introspector.
		switch DriverName {
		case "mysql":
			if err := DB.QueryRow("SELECT DATABASE()").Scan(&SchemaName); err != nil {
				return fmt.Errorf("failed to get database name: %w", err)
			}
			if SchemaName == "" {
				return fmt.Errorf("no database selected in DSN")
			}
		case "postgres":
			SchemaName = "public"
		case "sqlserver", "mssql":
			SchemaName = "dbo"
		default:
			SchemaName = ""
		}
		if configured := viper.GetString("database.schema"); configured != "" {
			SchemaName = configured
		}

		return nil
	},
}

func detectDriver(connStr string) string {
	switch {
	case strings.Contains(connStr, "postgres") || strings.Contains(connStr, "sslmode"):
		return "postgres"
	case strings.Contains(connStr, "sqlserver"):
		return "sqlserver"
	case strings.Contains(connStr, "oracle"):
		return "oracle"
	case strings.HasSuffix(connStr, ".db") || strings.Contains(connStr, "sqlite"):
		return "sqlite"
	default:
		return "mysql"
	}
}

// newIntrospector wires the introspector for the connected database,
// with the declared foreign-key label columns from config.
func newIntrospector() *schema.Introspector {
	in := schema.NewIntrospector(DB, dialect.GetDialect(DriverName), SchemaName)
	in.Labels = viper.GetStringMapString("labels")
	return in
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./grimoire.yaml)")
	RootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Database Source Name (DSN)")

	viper.BindPFlag("database.dsn", RootCmd.PersistentFlags().Lookup("dsn"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Executable directory first, then the current one.
		if ex, err := os.Executable(); err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}
		viper.AddConfigPath(".")

		viper.SetConfigName("grimoire")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
