package analyzer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vitebski/northwind-seeder/internal/connector"
	"github.com/vitebski/northwind-seeder/pkg/models"
	"github.com/yourbasic/graph"
)

var (
	// ErrInvalidOrder is returned when a table is created before a table it references
	ErrInvalidOrder = errors.New("invalid table order")
	// ErrDanglingReference is returned when a foreign key names an unknown table, column or row
	ErrDanglingReference = errors.New("dangling reference")
)

// SchemaAnalyzer validates a declared schema and derives its dependency order
type SchemaAnalyzer struct {
	Tables          []models.Table
	ForeignKeys     map[string][]models.ForeignKey
	DependencyGraph *graph.Mutable
	TableIndexMap   map[string]int
	Logger          *logrus.Logger
}

// NewSchemaAnalyzer creates a new schema analyzer for tables listed in creation order
func NewSchemaAnalyzer(tables []models.Table, logger *logrus.Logger) *SchemaAnalyzer {
	return &SchemaAnalyzer{
		Tables:        tables,
		ForeignKeys:   make(map[string][]models.ForeignKey),
		TableIndexMap: make(map[string]int),
		Logger:        logger,
	}
}

// AnalyzeSchema indexes the tables and builds the foreign key dependency graph.
// Edges run from the referenced table to the referencing one; self references
// are kept in ForeignKeys but left out of the graph.
func (sa *SchemaAnalyzer) AnalyzeSchema() error {
	// Index tables by name
	for i, table := range sa.Tables {
		if _, dup := sa.TableIndexMap[table.Name]; dup {
			return fmt.Errorf("table %s declared twice", table.Name)
		}
		sa.TableIndexMap[table.Name] = i
	}

	// Build the dependency graph
	sa.DependencyGraph = graph.New(len(sa.Tables))

	for _, table := range sa.Tables {
		for _, fk := range table.ForeignKeys {
			if table.ColumnIndex(fk.Column) < 0 {
				return fmt.Errorf("%w: %s.%s is not a column", ErrDanglingReference, table.Name, fk.Column)
			}
			refIdx, ok := sa.TableIndexMap[fk.ReferencedTable]
			if !ok {
				return fmt.Errorf("%w: %s.%s references unknown table %s",
					ErrDanglingReference, table.Name, fk.Column, fk.ReferencedTable)
			}
			if sa.Tables[refIdx].ColumnIndex(fk.ReferencedColumn) < 0 {
				return fmt.Errorf("%w: %s.%s references unknown column %s.%s",
					ErrDanglingReference, table.Name, fk.Column, fk.ReferencedTable, fk.ReferencedColumn)
			}

			sa.ForeignKeys[table.Name] = append(sa.ForeignKeys[table.Name], fk)

			if fk.IsSelfReference() {
				continue
			}
			sa.DependencyGraph.Add(refIdx, sa.TableIndexMap[table.Name])
		}
	}

	sa.Logger.Debugf("Analyzed %d tables", len(sa.Tables))
	return nil
}

// GetTableInsertionOrder returns the table names in the order they are created and filled
func (sa *SchemaAnalyzer) GetTableInsertionOrder() []string {
	order := make([]string, len(sa.Tables))
	for i, table := range sa.Tables {
		order[i] = table.Name
	}
	return order
}

// ValidateInsertionOrder checks that every referenced table is created before
// the tables that reference it
func (sa *SchemaAnalyzer) ValidateInsertionOrder() error {
	if sa.DependencyGraph == nil {
		if err := sa.AnalyzeSchema(); err != nil {
			return err
		}
	}

	// Check for circular dependencies
	if !graph.Acyclic(sa.DependencyGraph) {
		return fmt.Errorf("%w: foreign keys form a cycle", ErrInvalidOrder)
	}

	for _, table := range sa.Tables {
		idx := sa.TableIndexMap[table.Name]
		for _, fk := range sa.ForeignKeys[table.Name] {
			if fk.IsSelfReference() {
				continue
			}
			if sa.TableIndexMap[fk.ReferencedTable] > idx {
				return fmt.Errorf("%w: %s is created before %s, which it references",
					ErrInvalidOrder, table.Name, fk.ReferencedTable)
			}
		}
	}
	return nil
}

// DropOrder returns the table names in reverse creation order
func (sa *SchemaAnalyzer) DropOrder() []string {
	order := sa.GetTableInsertionOrder()
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// SelfReferences returns the foreign keys of a table that point back at it
func (sa *SchemaAnalyzer) SelfReferences(table string) []models.ForeignKey {
	var refs []models.ForeignKey
	for _, fk := range sa.ForeignKeys[table] {
		if fk.IsSelfReference() {
			refs = append(refs, fk)
		}
	}
	return refs
}

// OrderRows returns the rows of a table so that a row referenced through a
// self reference is inserted before the rows referencing it. Tables without
// self references are returned unchanged.
func (sa *SchemaAnalyzer) OrderRows(table models.Table, rows []models.Row) ([]models.Row, error) {
	selfRefs := sa.SelfReferences(table.Name)
	if len(selfRefs) == 0 || len(rows) < 2 {
		return rows, nil
	}

	// Build a graph of the rows, parent to child
	rowGraph := graph.New(len(rows))

	for _, fk := range selfRefs {
		keyIdx := table.ColumnIndex(fk.ReferencedColumn)
		refIdx := table.ColumnIndex(fk.Column)

		byKey := make(map[string]int, len(rows))
		for i, row := range rows {
			byKey[fmt.Sprint(row[keyIdx])] = i
		}

		for i, row := range rows {
			if row[refIdx] == nil {
				continue
			}
			parent, ok := byKey[fmt.Sprint(row[refIdx])]
			if !ok {
				return nil, fmt.Errorf("%w: %s row %d has %s=%v with no matching %s",
					ErrDanglingReference, table.Name, i+1, fk.Column, row[refIdx], fk.ReferencedColumn)
			}
			if parent != i {
				rowGraph.Add(parent, i)
			}
		}
	}

	// Sort the rows topologically
	order, ok := graph.TopSort(rowGraph)
	if !ok {
		return nil, fmt.Errorf("%w: rows of %s reference each other in a cycle", ErrInvalidOrder, table.Name)
	}

	ordered := make([]models.Row, len(order))
	for i, idx := range order {
		ordered[i] = rows[idx]
	}

	sa.Logger.Debugf("Reordered %d rows of %s parents-first", len(rows), table.Name)
	return ordered, nil
}

// CreateTableStatement renders the CREATE TABLE statement for a table
func (sa *SchemaAnalyzer) CreateTableStatement(table models.Table, dialect connector.Dialect) string {
	pk := table.PrimaryKey()

	var defs []string
	for _, col := range table.Columns {
		def := dialect.QuoteIdentifier(col.Name) + " " + col.DataType
		if col.MaxLength > 0 {
			def = fmt.Sprintf("%s(%d)", def, col.MaxLength)
		}
		// A lone INTEGER PRIMARY KEY becomes the rowid alias in sqlite
		if col.PrimaryKey && len(pk) == 1 {
			def += " PRIMARY KEY"
		}
		if col.NotNull {
			def += " NOT NULL"
		}
		defs = append(defs, def)
	}

	// Add composite primary key
	if len(pk) > 1 {
		defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", quoteAll(dialect, pk)))
	}

	// Add foreign key constraints
	for _, fk := range table.ForeignKeys {
		defs = append(defs, fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s(%s)",
			dialect.QuoteIdentifier(fk.Column),
			dialect.QuoteIdentifier(fk.ReferencedTable),
			dialect.QuoteIdentifier(fk.ReferencedColumn),
		))
	}

	return fmt.Sprintf("CREATE TABLE %s (\n\t%s\n)", dialect.QuoteIdentifier(table.Name), strings.Join(defs, ",\n\t"))
}

// InsertStatement renders the parameterized INSERT statement for a table
func (sa *SchemaAnalyzer) InsertStatement(table models.Table, dialect connector.Dialect) string {
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		dialect.QuoteIdentifier(table.Name),
		quoteAll(dialect, table.ColumnNames()),
		dialect.Placeholders(len(table.Columns)),
	)
}

func quoteAll(dialect connector.Dialect, names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = dialect.QuoteIdentifier(name)
	}
	return strings.Join(quoted, ", ")
}
