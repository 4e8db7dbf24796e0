package seeder

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/vitebski/northwind-seeder/internal/analyzer"
	"github.com/vitebski/northwind-seeder/internal/connector"
)

func createTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	return logger
}

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DBPath = filepath.Join(t.TempDir(), DefaultDBPath)
	return cfg
}

// dumpTables renders every row of every table so two runs can be compared
func dumpTables(t *testing.T, path string) string {
	t.Helper()

	db := connector.NewDatabaseConnector(connector.SQLite, connector.SQLiteReadOnlyDSN(path), createTestLogger())
	defer db.Disconnect()

	var b strings.Builder
	for _, table := range analyzer.NorthwindSchema() {
		rows, err := db.ExecuteQuery(fmt.Sprintf("SELECT * FROM %s ORDER BY 1, 2", db.Dialect.QuoteIdentifier(table.Name)))
		if err != nil {
			t.Fatalf("Dump of %s failed: %v", table.Name, err)
		}
		fmt.Fprintf(&b, "%s:%v\n", table.Name, rows)
	}
	return b.String()
}

func TestRunReportsAllTables(t *testing.T) {
	cfg := testConfig(t)

	report, err := Run(cfg, createTestLogger())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(report.Tables) != 7 {
		t.Fatalf("Expected 7 tables, got %d: %v", len(report.Tables), report.Tables)
	}

	expected := map[string]int64{
		"Categories":    8,
		"Suppliers":     5,
		"Products":      10,
		"Customers":     5,
		"Employees":     5,
		"Orders":        5,
		"Order Details": 12,
	}
	for table, want := range expected {
		got, ok := report.Count(table)
		if !ok {
			t.Errorf("Table %s missing from report", table)
			continue
		}
		if got != want {
			t.Errorf("Expected %d rows in %s, got %d", want, table, got)
		}
	}

	// Tables are listed by name
	for i := 1; i < len(report.Tables); i++ {
		if report.Tables[i-1].Name > report.Tables[i].Name {
			t.Errorf("Expected tables ordered by name, got %v", report.Tables)
		}
	}

	if report.Driver != "sqlite" || report.Target != cfg.DBPath {
		t.Errorf("Unexpected report header: driver=%s target=%s", report.Driver, report.Target)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	cfg := testConfig(t)

	first, err := Run(cfg, createTestLogger())
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	firstDump := dumpTables(t, cfg.DBPath)

	second, err := Run(cfg, createTestLogger())
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	secondDump := dumpTables(t, cfg.DBPath)

	if fmt.Sprint(first.Tables) != fmt.Sprint(second.Tables) {
		t.Errorf("Row counts differ between runs:\n%v\n%v", first.Tables, second.Tables)
	}
	if firstDump != secondDump {
		t.Error("Table contents differ between runs")
	}
}

func TestRunReplacesStaleFile(t *testing.T) {
	cfg := testConfig(t)

	if err := os.WriteFile(cfg.DBPath, []byte("not a database"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	withStale, err := Run(cfg, createTestLogger())
	if err != nil {
		t.Fatalf("Run over stale file failed: %v", err)
	}
	staleDump := dumpTables(t, cfg.DBPath)

	if err := os.Remove(cfg.DBPath); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	fresh, err := Run(cfg, createTestLogger())
	if err != nil {
		t.Fatalf("Run without previous file failed: %v", err)
	}

	if fmt.Sprint(withStale.Tables) != fmt.Sprint(fresh.Tables) {
		t.Errorf("Expected identical reports, got %v and %v", withStale.Tables, fresh.Tables)
	}
	if staleDump != dumpTables(t, cfg.DBPath) {
		t.Error("Expected identical contents with and without a previous file")
	}
}

func TestRunWritesOnlyTheNamedFile(t *testing.T) {
	for _, name := range []string{"north#wind.db", "north?wind.db", "north%41wind.db", "north wind.db"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			cfg := DefaultConfig()
			cfg.DBPath = filepath.Join(dir, name)

			report, err := Run(cfg, createTestLogger())
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if report.Target != cfg.DBPath {
				t.Errorf("Expected target %s, got %s", cfg.DBPath, report.Target)
			}
			if got, _ := report.Count("Order Details"); got != 12 {
				t.Errorf("Expected 12 order lines, got %d", got)
			}

			info, err := os.Stat(cfg.DBPath)
			if err != nil {
				t.Fatalf("Stat failed: %v", err)
			}
			if info.Size() == 0 {
				t.Error("Expected the named database file to hold the data")
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				t.Fatalf("ReadDir failed: %v", err)
			}
			if len(entries) != 1 || entries[0].Name() != name {
				var names []string
				for _, e := range entries {
					names = append(names, e.Name())
				}
				t.Errorf("Expected only %s in the directory, got %v", name, names)
			}
		})
	}
}

func TestRunFailsOnUnwritablePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DBPath = filepath.Join(t.TempDir(), "missing", DefaultDBPath)

	report, err := Run(cfg, createTestLogger())
	if err == nil {
		t.Fatal("Expected run to fail for a path in a missing directory")
	}
	if report != nil {
		t.Error("Expected no report on failure")
	}

	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageReset {
		t.Errorf("Expected a reset stage error, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected the filesystem error to be preserved, got %v", err)
	}
}

func TestRunFailsOnReadOnlyDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	dir := t.TempDir()
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatalf("Chmod failed: %v", err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	cfg := DefaultConfig()
	cfg.DBPath = filepath.Join(dir, DefaultDBPath)

	_, err := Run(cfg, createTestLogger())
	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("Expected a permission error, got %v", err)
	}
}

func TestRunRejectsUnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Driver = "oracle"

	_, err := Run(cfg, createTestLogger())

	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageValidate {
		t.Errorf("Expected a validate stage error, got %v", err)
	}
	if !errors.Is(err, connector.ErrUnknownDriver) {
		t.Errorf("Expected ErrUnknownDriver, got %v", err)
	}
	if _, statErr := os.Stat(cfg.DBPath); !errors.Is(statErr, fs.ErrNotExist) {
		t.Error("Expected no database file to be created")
	}
}

func TestRunWithFakeCustomers(t *testing.T) {
	cfg := testConfig(t)
	cfg.FakeCustomers = 15
	cfg.FakeSeed = 99

	report, err := Run(cfg, createTestLogger())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if got, _ := report.Count("Customers"); got != 20 {
		t.Errorf("Expected 20 customers, got %d", got)
	}
	if got, _ := report.Count("Orders"); got != 5 {
		t.Errorf("Expected orders to be unaffected, got %d", got)
	}
}

func TestRunWithoutForeignKeyEnforcement(t *testing.T) {
	cfg := testConfig(t)
	cfg.EnforceForeignKeys = false

	report, err := Run(cfg, createTestLogger())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got, _ := report.Count("Order Details"); got != 12 {
		t.Errorf("Expected 12 order lines, got %d", got)
	}
}
