// Package seeder builds the Northwind demo database from scratch: it resets
// the target, creates the schema, loads the sample rows and reads back the
// row count of every table.
package seeder

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vitebski/northwind-seeder/internal/analyzer"
	"github.com/vitebski/northwind-seeder/internal/connector"
	"github.com/vitebski/northwind-seeder/internal/generator"
	"github.com/vitebski/northwind-seeder/internal/populator"
	"github.com/vitebski/northwind-seeder/internal/utils"
	"github.com/vitebski/northwind-seeder/pkg/models"
)

// DefaultDBPath is the database file written when no path is configured
const DefaultDBPath = "northwind.db"

// Pipeline stages reported by StageError
const (
	StageValidate = "validate"
	StageReset    = "reset"
	StageConnect  = "connect"
	StageCreate   = "create"
	StageInsert   = "insert"
	StageClose    = "close"
	StageReport   = "report"
)

// Config controls a seeding run. The zero-flag run uses DefaultConfig.
type Config struct {
	Driver             string
	DBPath             string
	DSN                string
	EnforceForeignKeys bool
	FakeCustomers      int
	FakeSeed           int64
}

// DefaultConfig seeds northwind.db with foreign keys enforced and no synthetic rows
func DefaultConfig() Config {
	return Config{
		Driver:             string(connector.SQLite),
		DBPath:             DefaultDBPath,
		EnforceForeignKeys: true,
		FakeSeed:           1,
	}
}

// StageError reports which step of the run failed
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func fail(stage string, err error) error {
	return &StageError{Stage: stage, Err: err}
}

// Run resets the target database, creates the Northwind schema, inserts the
// sample rows and returns the row count of every table found afterwards.
// The first failing step aborts the run.
func Run(cfg Config, logger *logrus.Logger) (*models.Report, error) {
	dialect, err := connector.ParseDialect(cfg.Driver)
	if err != nil {
		return nil, fail(StageValidate, err)
	}

	schemaAnalyzer := analyzer.NewSchemaAnalyzer(analyzer.NorthwindSchema(), logger)
	if err := schemaAnalyzer.AnalyzeSchema(); err != nil {
		return nil, fail(StageValidate, err)
	}
	if err := schemaAnalyzer.ValidateInsertionOrder(); err != nil {
		return nil, fail(StageValidate, err)
	}

	dsn := cfg.DSN
	if dialect.IsEmbedded() {
		if err := populator.ResetFile(cfg.DBPath, logger); err != nil {
			return nil, fail(StageReset, err)
		}
		dsn = connector.SQLiteDSN(cfg.DBPath, cfg.EnforceForeignKeys)
	}

	db := connector.NewDatabaseConnector(dialect, dsn, logger)
	if err := db.Connect(); err != nil {
		return nil, fail(StageConnect, err)
	}
	defer db.Disconnect()

	dataGenerator := generator.NewDataGenerator(cfg.FakeCustomers, cfg.FakeSeed, logger)
	dbPopulator := populator.NewDatabasePopulator(db, schemaAnalyzer, dataGenerator, logger)

	if !dialect.IsEmbedded() {
		if err := dbPopulator.DropTables(); err != nil {
			return nil, fail(StageReset, err)
		}
	}

	logger.Infof("Seeding %s database %s", dialect, db.Target())

	if err := dbPopulator.CreateSchema(); err != nil {
		return nil, fail(StageCreate, err)
	}
	if err := dbPopulator.PopulateDatabase(); err != nil {
		return nil, fail(StageInsert, err)
	}
	if err := db.Disconnect(); err != nil {
		return nil, fail(StageClose, err)
	}

	return readBack(dialect, cfg, dsn, logger)
}

// readBack reopens the database and counts the rows of every table
func readBack(dialect connector.Dialect, cfg Config, dsn string, logger *logrus.Logger) (*models.Report, error) {
	if dialect.IsEmbedded() {
		dsn = connector.SQLiteReadOnlyDSN(cfg.DBPath)
	}

	db := connector.NewDatabaseConnector(dialect, dsn, logger)
	if err := db.Connect(); err != nil {
		return nil, fail(StageReport, err)
	}
	defer db.Disconnect()

	counts, err := utils.CountTableRows(db, logger)
	if err != nil {
		return nil, fail(StageReport, err)
	}

	return &models.Report{
		Driver: string(dialect),
		Target: db.Target(),
		Tables: counts,
	}, nil
}
