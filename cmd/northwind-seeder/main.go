package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vitebski/northwind-seeder/internal/seeder"
	"github.com/vitebski/northwind-seeder/internal/utils"
)

func main() {
	var (
		dbPath        string
		driver        string
		dsn           string
		enforceFKs    bool
		fakeCustomers int
		fakeSeed      int64
		output        string
		envFile       string
		logLevel      string
	)

	rootCmd := &cobra.Command{
		Use:   "northwind-seeder",
		Short: "Create the Northwind demo database with fixed sample data",
		Long: `Northwind Seeder

Deletes any previous database, creates the seven Northwind tables
(categories, suppliers, products, customers, employees, orders and
order details), loads the fixed sample rows and prints the row count
of every table.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := utils.SetupLogging(logLevel)

			utils.LoadEnvironmentVariables(envFile, logger)

			// Flags win over the environment, the environment over defaults
			flags := cmd.Flags()
			if !flags.Changed("db-path") {
				dbPath = utils.GetEnvString("NORTHWIND_DB_PATH", dbPath)
			}
			if !flags.Changed("driver") {
				driver = utils.GetEnvString("NORTHWIND_DRIVER", driver)
			}
			if !flags.Changed("dsn") {
				dsn = utils.GetEnvString("NORTHWIND_DSN", dsn)
			}
			if !flags.Changed("enforce-fks") {
				enforceFKs = utils.GetEnvBool("NORTHWIND_ENFORCE_FKS", enforceFKs)
			}
			if !flags.Changed("fake-customers") {
				fakeCustomers = utils.GetEnvInt("NORTHWIND_FAKE_CUSTOMERS", fakeCustomers)
			}

			if !utils.ValidateSeedParams(driver, dbPath, fakeCustomers, output, logger) {
				return fmt.Errorf("invalid parameters")
			}

			report, err := seeder.Run(seeder.Config{
				Driver:             driver,
				DBPath:             dbPath,
				DSN:                dsn,
				EnforceForeignKeys: enforceFKs,
				FakeCustomers:      fakeCustomers,
				FakeSeed:           fakeSeed,
			}, logger)
			if err != nil {
				logger.Errorf("Seeding failed: %v", err)
				return err
			}

			return utils.PrintReport(cmd.OutOrStdout(), report, output)
		},
	}

	defaults := seeder.DefaultConfig()

	rootCmd.Flags().StringVarP(&dbPath, "db-path", "f", defaults.DBPath, "SQLite database file to (re)create")
	rootCmd.Flags().StringVarP(&driver, "driver", "D", defaults.Driver, "Database driver (sqlite, mysql, postgres)")
	rootCmd.Flags().StringVar(&dsn, "dsn", "", "Data source name for mysql or postgres (default: MYSQL_* or DATABASE_URL)")
	rootCmd.Flags().BoolVar(&enforceFKs, "enforce-fks", defaults.EnforceForeignKeys, "Enforce foreign key constraints while loading (sqlite)")
	rootCmd.Flags().IntVar(&fakeCustomers, "fake-customers", defaults.FakeCustomers, "Number of synthetic customers to add after the sample rows")
	rootCmd.Flags().Int64Var(&fakeSeed, "fake-seed", defaults.FakeSeed, "Seed for synthetic customers")
	rootCmd.Flags().StringVarP(&output, "output", "o", utils.FormatText, "Report format (text, yaml)")
	rootCmd.Flags().StringVarP(&envFile, "env-file", "e", ".env", "Path to .env file")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "Log level (debug, info, warn, error)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
