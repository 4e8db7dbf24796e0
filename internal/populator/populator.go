package populator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/vitebski/northwind-seeder/internal/analyzer"
	"github.com/vitebski/northwind-seeder/internal/connector"
	"github.com/vitebski/northwind-seeder/internal/generator"
	"github.com/vitebski/northwind-seeder/pkg/models"
)

// DatabasePopulator creates the schema and loads the sample rows
type DatabasePopulator struct {
	DB             *connector.DatabaseConnector
	SchemaAnalyzer *analyzer.SchemaAnalyzer
	DataGenerator  *generator.DataGenerator
	InsertedRows   map[string]int64
	Logger         *logrus.Logger
}

// NewDatabasePopulator creates a new database populator
func NewDatabasePopulator(
	db *connector.DatabaseConnector,
	schemaAnalyzer *analyzer.SchemaAnalyzer,
	dataGenerator *generator.DataGenerator,
	logger *logrus.Logger,
) *DatabasePopulator {
	return &DatabasePopulator{
		DB:             db,
		SchemaAnalyzer: schemaAnalyzer,
		DataGenerator:  dataGenerator,
		InsertedRows:   make(map[string]int64),
		Logger:         logger,
	}
}

// ResetFile removes any database file at path and creates a fresh empty one.
// A missing file is not an error; a missing directory or a denied permission is.
func ResetFile(path string, logger *logrus.Logger) error {
	// Remove the previous database, if any
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Errorf("Error removing existing database %s: %v", path, err)
		return fmt.Errorf("remove existing database: %w", err)
	} else if err == nil {
		logger.Infof("Removed existing database %s", path)
	}

	// Create the new, empty file
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		logger.Errorf("Error creating database file %s: %v", path, err)
		return fmt.Errorf("create database file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close database file: %w", err)
	}
	return nil
}

// DropTables drops the schema's tables in reverse dependency order.
// Server databases are reset this way instead of deleting a file.
func (dp *DatabasePopulator) DropTables() error {
	for _, table := range dp.SchemaAnalyzer.DropOrder() {
		if _, err := dp.DB.ExecuteStatement(dp.DB.Dialect.DropTableStatement(table)); err != nil {
			return fmt.Errorf("drop table %s: %w", table, err)
		}
		dp.Logger.Debugf("Dropped table %s", table)
	}
	return nil
}

// CreateSchema creates every table in dependency order
func (dp *DatabasePopulator) CreateSchema() error {
	if err := dp.SchemaAnalyzer.ValidateInsertionOrder(); err != nil {
		return err
	}

	for _, table := range dp.SchemaAnalyzer.Tables {
		stmt := dp.SchemaAnalyzer.CreateTableStatement(table, dp.DB.Dialect)
		dp.Logger.Debugf("Creating table %s:\n%s", table.Name, stmt)

		if _, err := dp.DB.ExecuteStatement(stmt); err != nil {
			return fmt.Errorf("create table %s: %w", table.Name, err)
		}
	}

	dp.Logger.Infof("Created %d tables", len(dp.SchemaAnalyzer.Tables))
	return nil
}

// PopulateDatabase inserts the rows of every table in dependency order.
// Each table is one transaction; the first failure stops the run.
func (dp *DatabasePopulator) PopulateDatabase() error {
	for _, table := range dp.SchemaAnalyzer.Tables {
		if err := dp.populateTable(table); err != nil {
			return err
		}
	}
	return nil
}

// populateTable bulk inserts the rows of a single table
func (dp *DatabasePopulator) populateTable(table models.Table) error {
	// Get the rows for this table
	rows, err := dp.DataGenerator.Rows(table)
	if err != nil {
		return fmt.Errorf("rows for %s: %w", table.Name, err)
	}

	if len(rows) == 0 {
		dp.Logger.Warningf("No rows to insert into %s", table.Name)
		return nil
	}

	// Parents go before the rows referencing them
	rows, err = dp.SchemaAnalyzer.OrderRows(table, rows)
	if err != nil {
		return err
	}

	paramsList := make([][]interface{}, len(rows))
	for i, row := range rows {
		paramsList[i] = row
	}

	// Prepare the INSERT statement
	insertSQL := dp.SchemaAnalyzer.InsertStatement(table, dp.DB.Dialect)

	affected, err := dp.DB.ExecuteMany(insertSQL, paramsList)
	if err != nil {
		dp.Logger.Errorf("Error inserting data into table %s: %v", table.Name, err)
		return fmt.Errorf("insert into %s: %w", table.Name, err)
	}

	dp.InsertedRows[table.Name] = affected
	dp.Logger.Infof("Populated table %s with %d records", table.Name, affected)
	return nil
}
