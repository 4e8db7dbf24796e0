package populator

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/vitebski/northwind-seeder/internal/analyzer"
	"github.com/vitebski/northwind-seeder/internal/connector"
	"github.com/vitebski/northwind-seeder/internal/generator"
)

func createTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	return logger
}

func newSQLitePopulator(t *testing.T, path string) *DatabasePopulator {
	t.Helper()
	logger := createTestLogger()

	if err := ResetFile(path, logger); err != nil {
		t.Fatalf("ResetFile failed: %v", err)
	}

	db := connector.NewDatabaseConnector(connector.SQLite, connector.SQLiteDSN(path, true), logger)
	if err := db.Connect(); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	t.Cleanup(func() { db.Disconnect() })

	schemaAnalyzer := analyzer.NewSchemaAnalyzer(analyzer.NorthwindSchema(), logger)
	if err := schemaAnalyzer.AnalyzeSchema(); err != nil {
		t.Fatalf("AnalyzeSchema failed: %v", err)
	}

	return NewDatabasePopulator(db, schemaAnalyzer, generator.NewDataGenerator(0, 1, logger), logger)
}

func countRows(t *testing.T, db *connector.DatabaseConnector, table string) int64 {
	t.Helper()
	rows, err := db.ExecuteQuery("SELECT COUNT(*) AS count FROM " + db.Dialect.QuoteIdentifier(table))
	if err != nil {
		t.Fatalf("Count on %s failed: %v", table, err)
	}
	return rows[0]["count"].(int64)
}

func TestPopulateDatabaseSQLite(t *testing.T) {
	dp := newSQLitePopulator(t, filepath.Join(t.TempDir(), "northwind.db"))

	if err := dp.CreateSchema(); err != nil {
		t.Fatalf("CreateSchema failed: %v", err)
	}
	if err := dp.PopulateDatabase(); err != nil {
		t.Fatalf("PopulateDatabase failed: %v", err)
	}

	expected := map[string]int64{
		analyzer.Categories:   8,
		analyzer.Suppliers:    5,
		analyzer.Products:     10,
		analyzer.Customers:    5,
		analyzer.Employees:    5,
		analyzer.Orders:       5,
		analyzer.OrderDetails: 12,
	}
	for table, want := range expected {
		if got := dp.InsertedRows[table]; got != want {
			t.Errorf("Expected %d inserted rows for %s, got %d", want, table, got)
		}
		if got := countRows(t, dp.DB, table); got != want {
			t.Errorf("Expected %d stored rows for %s, got %d", want, table, got)
		}
	}

	// Foreign keys are enforced, so a clean check confirms the data is consistent
	violations, err := dp.DB.ExecuteQuery("PRAGMA foreign_key_check")
	if err != nil {
		t.Fatalf("foreign_key_check failed: %v", err)
	}
	if len(violations) != 0 {
		t.Errorf("Expected no foreign key violations, got %v", violations)
	}

	rows, err := dp.DB.ExecuteQuery(`SELECT "ReportsTo" AS boss FROM "Employees" WHERE "EmployeeID" = 1`)
	if err != nil {
		t.Fatalf("Employee query failed: %v", err)
	}
	if rows[0]["boss"] != int64(2) {
		t.Errorf("Expected employee 1 to report to 2, got %v", rows[0]["boss"])
	}
}

func TestPopulateDatabaseStopsOnConstraintViolation(t *testing.T) {
	dp := newSQLitePopulator(t, filepath.Join(t.TempDir(), "northwind.db"))

	if err := dp.CreateSchema(); err != nil {
		t.Fatalf("CreateSchema failed: %v", err)
	}
	if err := dp.PopulateDatabase(); err != nil {
		t.Fatalf("PopulateDatabase failed: %v", err)
	}

	// A second load repeats every primary key
	err := dp.PopulateDatabase()
	if err == nil {
		t.Fatal("Expected duplicate keys to fail the second load")
	}
	if got := countRows(t, dp.DB, analyzer.Categories); got != 8 {
		t.Errorf("Expected the failed batch to roll back, got %d categories", got)
	}
}

func TestCreateSchemaTwiceFails(t *testing.T) {
	dp := newSQLitePopulator(t, filepath.Join(t.TempDir(), "northwind.db"))

	if err := dp.CreateSchema(); err != nil {
		t.Fatalf("CreateSchema failed: %v", err)
	}
	if err := dp.CreateSchema(); err == nil {
		t.Error("Expected creating existing tables to fail")
	}
}

func TestResetFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "northwind.db")

	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := ResetFile(path, createTestLogger()); err != nil {
		t.Fatalf("ResetFile failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Expected a fresh file: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("Expected the stale file to be replaced by an empty one, size %d", info.Size())
	}

	// No previous file is fine too
	other := filepath.Join(dir, "other.db")
	if err := ResetFile(other, createTestLogger()); err != nil {
		t.Errorf("Expected reset without a previous file to succeed, got %v", err)
	}
}

func TestResetFileMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "northwind.db")

	err := ResetFile(path, createTestLogger())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected fs.ErrNotExist, got %v", err)
	}
}

func TestDropTablesReverseOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	defer db.Close()

	logger := createTestLogger()
	dc := &connector.DatabaseConnector{Dialect: connector.MySQL, DB: db, Logger: logger}
	schemaAnalyzer := analyzer.NewSchemaAnalyzer(analyzer.NorthwindSchema(), logger)

	for _, table := range []string{"Order Details", "Orders", "Employees", "Customers", "Products", "Suppliers", "Categories"} {
		mock.ExpectExec(regexp.QuoteMeta("DROP TABLE IF EXISTS `" + table + "`")).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	dp := NewDatabasePopulator(dc, schemaAnalyzer, generator.NewDataGenerator(0, 1, logger), logger)
	if err := dp.DropTables(); err != nil {
		t.Fatalf("DropTables failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestPopulateTablePostgresPlaceholders(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	defer db.Close()

	logger := createTestLogger()
	dc := &connector.DatabaseConnector{Dialect: connector.Postgres, DB: db, Logger: logger}
	schema := analyzer.NorthwindSchema()
	schemaAnalyzer := analyzer.NewSchemaAnalyzer(schema, logger)
	if err := schemaAnalyzer.AnalyzeSchema(); err != nil {
		t.Fatalf("AnalyzeSchema failed: %v", err)
	}

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO "Categories" ("CategoryID", "CategoryName", "Description") VALUES ($1, $2, $3)`))
	for i := 0; i < 8; i++ {
		prep.ExpectExec().WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
	}
	mock.ExpectCommit()

	dp := NewDatabasePopulator(dc, schemaAnalyzer, generator.NewDataGenerator(0, 1, logger), logger)
	if err := dp.populateTable(schema[0]); err != nil {
		t.Fatalf("populateTable failed: %v", err)
	}
	if dp.InsertedRows[analyzer.Categories] != 8 {
		t.Errorf("Expected 8 inserted categories, got %d", dp.InsertedRows[analyzer.Categories])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}
