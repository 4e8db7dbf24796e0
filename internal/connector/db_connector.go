package connector

import (
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// DatabaseConnector handles database connection and query execution
type DatabaseConnector struct {
	Dialect Dialect
	DSN     string
	DB      *sql.DB
	Logger  *logrus.Logger
}

// NewDatabaseConnector creates a new database connector.
// An empty dsn is filled from the environment for server dialects.
func NewDatabaseConnector(dialect Dialect, dsn string, logger *logrus.Logger) *DatabaseConnector {
	if dsn == "" {
		switch dialect {
		case MySQL:
			dsn = MySQLDSNFromEnv()
		case Postgres:
			dsn = getEnvOrDefault("DATABASE_URL", "postgres://localhost:5432/northwind?sslmode=disable")
		}
	}

	return &DatabaseConnector{
		Dialect: dialect,
		DSN:     dsn,
		Logger:  logger,
	}
}

// SQLiteDSN builds the read-write DSN for a database file
func SQLiteDSN(path string, enforceForeignKeys bool) string {
	fk := 0
	if enforceForeignKeys {
		fk = 1
	}
	return sqliteURI(path, fmt.Sprintf("_pragma=foreign_keys(%d)", fk))
}

// SQLiteReadOnlyDSN builds a DSN that opens an existing database file read-only
func SQLiteReadOnlyDSN(path string) string {
	return sqliteURI(path, "mode=ro")
}

// sqliteURI percent-encodes the path so '?', '#' and '%' in file names
// are not read as URI syntax
func sqliteURI(path, rawQuery string) string {
	u := url.URL{
		Scheme:   "file",
		Path:     path,
		OmitHost: true,
		RawQuery: rawQuery,
	}
	return u.String()
}

// MySQLDSNFromEnv builds a MySQL DSN from the MYSQL_* environment variables
func MySQLDSNFromEnv() string {
	cfg := mysql.NewConfig()
	cfg.User = getEnvOrDefault("MYSQL_USER", "root")
	cfg.Passwd = getEnvOrDefault("MYSQL_PASSWORD", "")
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(
		getEnvOrDefault("MYSQL_HOST", "localhost"),
		getEnvOrDefault("MYSQL_PORT", "3306"),
	)
	cfg.DBName = getEnvOrDefault("MYSQL_DATABASE", "northwind")
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// Target describes the database being written without exposing credentials
func (dc *DatabaseConnector) Target() string {
	switch dc.Dialect {
	case MySQL:
		cfg, err := mysql.ParseDSN(dc.DSN)
		if err != nil {
			return string(MySQL)
		}
		return cfg.Addr + "/" + cfg.DBName
	case Postgres:
		u, err := url.Parse(dc.DSN)
		if err != nil || u.Host == "" {
			return string(Postgres)
		}
		return u.Host + u.Path
	}

	// SQLite paths are percent-encoded inside the DSN
	path := strings.TrimPrefix(strings.SplitN(dc.DSN, "?", 2)[0], "file:")
	if unescaped, err := url.PathUnescape(path); err == nil {
		return unescaped
	}
	return path
}

// Connect opens the database and verifies it is reachable
func (dc *DatabaseConnector) Connect() error {
	if dc.DSN == "" {
		return fmt.Errorf("no data source configured for %s", dc.Dialect)
	}

	// Open the database handle
	db, err := sql.Open(dc.Dialect.DriverName(), dc.DSN)
	if err != nil {
		dc.Logger.Errorf("Error opening %s database: %v", dc.Dialect, err)
		return err
	}

	// One connection keeps per-connection pragmas and the file lock in one place
	if dc.Dialect.IsEmbedded() {
		db.SetMaxOpenConns(1)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		dc.Logger.Errorf("Error pinging %s database: %v", dc.Dialect, err)
		db.Close()
		return err
	}

	dc.DB = db
	dc.Logger.Debugf("Connected to %s database", dc.Dialect)
	return nil
}

// Disconnect closes the database connection
func (dc *DatabaseConnector) Disconnect() error {
	if dc.DB == nil {
		return nil
	}
	err := dc.DB.Close()
	dc.DB = nil
	if err != nil {
		dc.Logger.Errorf("Error closing database connection: %v", err)
		return err
	}
	dc.Logger.Debugf("%s connection closed", dc.Dialect)
	return nil
}

// ExecuteQuery executes a SQL query and returns the results
func (dc *DatabaseConnector) ExecuteQuery(query string, params ...interface{}) ([]map[string]interface{}, error) {
	if dc.DB == nil {
		if err := dc.Connect(); err != nil {
			return nil, err
		}
	}

	rows, err := dc.DB.Query(query, params...)
	if err != nil {
		dc.Logger.Errorf("Error executing query: %v", err)
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		dc.Logger.Errorf("Error getting columns: %v", err)
		return nil, err
	}

	var results []map[string]interface{}

	for rows.Next() {
		// Create a slice of interface{} to hold the values
		values := make([]interface{}, len(columns))
		// Create a slice of pointers to the values
		valuePtrs := make([]interface{}, len(columns))
		for i := range columns {
			valuePtrs[i] = &values[i]
		}

		// Scan the result into the pointers
		if err := rows.Scan(valuePtrs...); err != nil {
			dc.Logger.Errorf("Error scanning row: %v", err)
			return nil, err
		}

		// Create a map for this row
		row := make(map[string]interface{})
		for i, col := range columns {
			// Text columns can come back as raw bytes
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}

		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		dc.Logger.Errorf("Error iterating rows: %v", err)
		return nil, err
	}

	return results, nil
}

// ExecuteStatement executes a SQL statement and returns the number of affected rows
func (dc *DatabaseConnector) ExecuteStatement(query string, params ...interface{}) (int64, error) {
	if dc.DB == nil {
		if err := dc.Connect(); err != nil {
			return 0, err
		}
	}

	// Execute the statement
	result, err := dc.DB.Exec(query, params...)
	if err != nil {
		dc.Logger.Errorf("Error executing statement: %v", err)
		return 0, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		dc.Logger.Errorf("Error getting affected rows: %v", err)
		return 0, err
	}

	return affected, nil
}

// ExecuteMany executes a SQL statement once per parameter set inside a single transaction
func (dc *DatabaseConnector) ExecuteMany(query string, paramsList [][]interface{}) (int64, error) {
	if dc.DB == nil {
		if err := dc.Connect(); err != nil {
			return 0, err
		}
	}

	// Start a transaction
	tx, err := dc.DB.Begin()
	if err != nil {
		dc.Logger.Errorf("Error starting transaction: %v", err)
		return 0, err
	}

	// Prepare the statement
	stmt, err := tx.Prepare(query)
	if err != nil {
		dc.Logger.Errorf("Error preparing statement: %v", err)
		tx.Rollback()
		return 0, err
	}
	defer stmt.Close()

	var totalAffected int64

	// Execute the statement for each set of parameters
	for i, params := range paramsList {
		result, err := stmt.Exec(params...)
		if err != nil {
			dc.Logger.Errorf("Error executing batch statement (row %d): %v", i+1, err)
			tx.Rollback()
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			dc.Logger.Errorf("Error getting affected rows: %v", err)
			tx.Rollback()
			return 0, err
		}

		totalAffected += affected
	}

	// Commit the transaction
	if err := tx.Commit(); err != nil {
		dc.Logger.Errorf("Error committing transaction: %v", err)
		return 0, err
	}

	return totalAffected, nil
}

// getEnvOrDefault gets an environment variable or returns a default value
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
