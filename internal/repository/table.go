package repository

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Table describes a single-key table. Key must also appear in Columns.
type Table struct {
	Name    string
	Key     string
	Columns []string
}

// Statements holds the SQL rendered for a Table.
//
// Argument order:
//   - SelectByKey, Delete: key
//   - Insert: Columns, in order
//   - Update: key, then Columns without the key, in order
type Statements struct {
	SelectByKey string
	SelectAll   string
	Insert      string
	Update      string
	Delete      string
}

func quote(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// Statements renders the CRUD statements for t with sanitized identifiers
// and $n placeholders.
func (t Table) Statements() Statements {
	table := quote(t.Name)
	key := quote(t.Key)

	cols := make([]string, len(t.Columns))
	placeholders := make([]string, len(t.Columns))
	var assignments []string
	for i, c := range t.Columns {
		cols[i] = quote(c)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		if c != t.Key {
			assignments = append(assignments, fmt.Sprintf("%s = $%d", quote(c), len(assignments)+2))
		}
	}
	colList := strings.Join(cols, ", ")

	return Statements{
		SelectByKey: fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", colList, table, key),
		SelectAll:   fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", colList, table, key),
		Insert: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			table, colList, strings.Join(placeholders, ", ")),
		Update: fmt.Sprintf("UPDATE %s SET %s WHERE %s = $1",
			table, strings.Join(assignments, ", "), key),
		Delete: fmt.Sprintf("DELETE FROM %s WHERE %s = $1", table, key),
	}
}
