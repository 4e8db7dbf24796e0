package utils

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/vitebski/northwind-seeder/internal/connector"
	"github.com/vitebski/northwind-seeder/pkg/models"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by PrintReport
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// SetupLogging configures the logging system
func SetupLogging(logLevel string) *logrus.Logger {
	// Create a new logger
	logger := logrus.New()

	// Get log level from parameter or environment variable
	levelStr := logLevel
	if levelStr == "" {
		levelStr = os.Getenv("NORTHWIND_LOG_LEVEL")
		if levelStr == "" {
			levelStr = "info"
		}
	}

	// Parse log level
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}

	// Configure logger
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	// stdout carries the report
	logger.SetOutput(os.Stderr)

	logger.Debugf("Logging configured with level: %s", level)
	return logger
}

// LoadEnvironmentVariables loads environment variables from a .env file if it exists
func LoadEnvironmentVariables(envFile string, logger *logrus.Logger) bool {
	// Fall back to the existing environment when there is no .env file
	if _, err := os.Stat(envFile); err != nil {
		logger.Debugf("No %s file found, using existing environment variables", envFile)
		return false
	}

	// Load environment variables from the .env file
	if err := godotenv.Load(envFile); err != nil {
		logger.Warningf("Error loading %s file: %v", envFile, err)
		return false
	}

	logger.Infof("Loaded environment variables from %s", envFile)

	// Log the relevant variables, masking credentials
	if logger.Level == logrus.DebugLevel {
		for _, env := range os.Environ() {
			parts := strings.SplitN(env, "=", 2)
			if len(parts) != 2 {
				continue
			}
			if !strings.HasPrefix(parts[0], "NORTHWIND_") && !strings.HasPrefix(parts[0], "MYSQL_") {
				continue
			}
			if strings.Contains(parts[0], "PASSWORD") || parts[0] == "NORTHWIND_DSN" {
				logger.Debugf("%s=********", parts[0])
			} else {
				logger.Debugf("%s=%s", parts[0], parts[1])
			}
		}
	}

	return true
}

// GetEnvInt gets an integer value from environment variable
func GetEnvInt(varName string, defaultValue int) int {
	value := os.Getenv(varName)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// GetEnvString gets a string value from environment variable
func GetEnvString(varName string, defaultValue string) string {
	if value := os.Getenv(varName); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvBool gets a boolean value from environment variable
func GetEnvBool(varName string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(varName))
	if err != nil {
		return defaultValue
	}
	return value
}

// ValidateSeedParams validates the seeding parameters
func ValidateSeedParams(driver, dbPath string, fakeCustomers int, output string, logger *logrus.Logger) bool {
	dialect, err := connector.ParseDialect(driver)
	if err != nil {
		logger.Errorf("Invalid driver: %v", err)
		return false
	}

	if dialect.IsEmbedded() && strings.TrimSpace(dbPath) == "" {
		logger.Error("Database path is required")
		return false
	}

	if fakeCustomers < 0 {
		logger.Errorf("Invalid number of synthetic customers: %d", fakeCustomers)
		return false
	}

	if output != FormatText && output != FormatYAML {
		logger.Errorf("Invalid output format: %s", output)
		return false
	}

	return true
}

// ListTables returns the base tables of the connected database ordered by name
func ListTables(db *connector.DatabaseConnector, logger *logrus.Logger) ([]string, error) {
	result, err := db.ExecuteQuery(db.Dialect.ListTablesQuery())
	if err != nil {
		logger.Errorf("Error listing tables: %v", err)
		return nil, err
	}

	tables := make([]string, 0, len(result))
	for _, row := range result {
		tables = append(tables, fmt.Sprintf("%v", row["name"]))
	}
	return tables, nil
}

// CountTableRows counts the records of every table in the connected database
func CountTableRows(db *connector.DatabaseConnector, logger *logrus.Logger) ([]models.TableCount, error) {
	tables, err := ListTables(db, logger)
	if err != nil {
		return nil, err
	}

	// Count the records of each table
	counts := make([]models.TableCount, 0, len(tables))
	for _, table := range tables {
		query := fmt.Sprintf("SELECT COUNT(*) AS count FROM %s", db.Dialect.QuoteIdentifier(table))
		result, err := db.ExecuteQuery(query)
		if err != nil {
			return nil, fmt.Errorf("count records in %s: %w", table, err)
		}
		if len(result) == 0 {
			return nil, fmt.Errorf("count records in %s: no result", table)
		}

		// Some drivers return the count as text
		count, ok := result[0]["count"].(int64)
		if !ok {
			countStr := fmt.Sprintf("%v", result[0]["count"])
			count, err = strconv.ParseInt(countStr, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parse count for %s: %w", table, err)
			}
		}

		logger.Debugf("Table %s has %d records", table, count)
		counts = append(counts, models.TableCount{Name: table, Rows: count})
	}

	return counts, nil
}

// PrintReport writes the seeding report in the requested format
func PrintReport(w io.Writer, report *models.Report, format string) error {
	if format == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return enc.Close()
	}

	var b strings.Builder
	b.WriteString("✅ Northwind database created successfully with sample data!\n")
	b.WriteString("📊 Tables created:\n")
	for _, table := range report.Tables {
		fmt.Fprintf(&b, "  - %s: %d records\n", table.Name, table.Rows)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
