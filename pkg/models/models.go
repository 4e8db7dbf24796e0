package models

// Column represents a declared table column
type Column struct {
	Name       string
	DataType   string
	MaxLength  int
	NotNull    bool
	PrimaryKey bool
}

// ForeignKey represents a foreign key relationship
type ForeignKey struct {
	Table            string
	Column           string
	ReferencedTable  string
	ReferencedColumn string
}

// IsSelfReference reports whether the key points back at its own table
func (fk ForeignKey) IsSelfReference() bool {
	return fk.Table == fk.ReferencedTable
}

// Table represents a table definition
type Table struct {
	Name        string
	Columns     []Column
	ForeignKeys []ForeignKey
}

// ColumnNames returns the column names in declaration order
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// PrimaryKey returns the primary key columns in declaration order
func (t Table) PrimaryKey() []string {
	var pk []string
	for _, col := range t.Columns {
		if col.PrimaryKey {
			pk = append(pk, col.Name)
		}
	}
	return pk
}

// ColumnIndex returns the position of a column, or -1 if it is not declared
func (t Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col.Name == name {
			return i
		}
	}
	return -1
}

// Row holds one record's values in column declaration order. A nil entry is NULL.
type Row []interface{}

// TableCount is the number of rows found in a table after seeding
type TableCount struct {
	Name string `yaml:"name"`
	Rows int64  `yaml:"rows"`
}

// Report summarizes a seeding run
type Report struct {
	Driver string       `yaml:"driver"`
	Target string       `yaml:"target"`
	Tables []TableCount `yaml:"tables"`
}

// Count returns the row count recorded for a table and whether it was found
func (r *Report) Count(table string) (int64, bool) {
	for _, tc := range r.Tables {
		if tc.Name == table {
			return tc.Rows, true
		}
	}
	return 0, false
}
