package generator

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/jaswdr/faker"
	"github.com/sirupsen/logrus"
	"github.com/vitebski/northwind-seeder/internal/analyzer"
	"github.com/vitebski/northwind-seeder/pkg/models"
)

// maxCodeAttempts bounds the search for an unused customer code per row
const maxCodeAttempts = 1000

// DataGenerator produces the rows to insert into each table: the literal
// Northwind sample rows, optionally followed by synthetic customers
type DataGenerator struct {
	Faker         faker.Faker
	FakeCustomers int
	Logger        *logrus.Logger
}

// NewDataGenerator creates a new data generator. The seed makes synthetic rows reproducible.
func NewDataGenerator(fakeCustomers int, seed int64, logger *logrus.Logger) *DataGenerator {
	return &DataGenerator{
		Faker:         faker.NewWithSeed(rand.NewSource(seed)),
		FakeCustomers: fakeCustomers,
		Logger:        logger,
	}
}

// Rows returns the rows for a table in column declaration order
func (dg *DataGenerator) Rows(table models.Table) ([]models.Row, error) {
	rows := LiteralRows(table.Name)

	// Check that every row matches the table's columns
	for i, row := range rows {
		if len(row) != len(table.Columns) {
			return nil, fmt.Errorf("%s row %d has %d values for %d columns", table.Name, i+1, len(row), len(table.Columns))
		}
	}

	// Append synthetic customers after the sample rows
	if table.Name == analyzer.Customers && dg.FakeCustomers > 0 {
		fake, err := dg.generateCustomers(table, rows)
		if err != nil {
			return nil, err
		}
		dg.Logger.Infof("Generated %d synthetic customers", len(fake))
		rows = append(rows, fake...)
	}

	return rows, nil
}

// generateCustomers builds FakeCustomers rows whose codes do not collide with existing ones
func (dg *DataGenerator) generateCustomers(table models.Table, existing []models.Row) ([]models.Row, error) {
	keyIdx := table.ColumnIndex("CustomerID")

	// Track codes already in use
	taken := make(map[string]bool, len(existing)+dg.FakeCustomers)
	for _, row := range existing {
		taken[fmt.Sprint(row[keyIdx])] = true
	}

	rows := make([]models.Row, 0, dg.FakeCustomers)
	for len(rows) < dg.FakeCustomers {
		code, err := dg.uniqueCode(taken)
		if err != nil {
			return nil, err
		}

		// Generate a value for each contact column
		values := map[string]interface{}{
			"CustomerID":   code,
			"CompanyName":  dg.Faker.Company().Name(),
			"ContactName":  dg.Faker.Person().Name(),
			"ContactTitle": dg.Faker.Company().JobTitle(),
			"Address":      dg.Faker.Address().StreetAddress(),
			"City":         dg.Faker.Address().City(),
			"PostalCode":   dg.Faker.Address().PostCode(),
			"Country":      dg.Faker.Address().Country(),
			"Phone":        dg.Faker.Phone().Number(),
		}

		// Place the values in column order, leaving the rest NULL
		row := make(models.Row, len(table.Columns))
		for i, col := range table.Columns {
			if v, ok := values[col.Name].(string); ok {
				row[i] = fitColumn(v, col)
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func (dg *DataGenerator) uniqueCode(taken map[string]bool) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := strings.ToUpper(dg.Faker.Lexify("?????"))
		if !taken[code] {
			taken[code] = true
			return code, nil
		}
	}
	return "", fmt.Errorf("no unused customer code after %d attempts", maxCodeAttempts)
}

// fitColumn trims a value to the column's declared width
func fitColumn(value string, col models.Column) string {
	value = strings.TrimSpace(value)
	if col.MaxLength <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= col.MaxLength {
		return value
	}
	return strings.TrimSpace(string(runes[:col.MaxLength]))
}
