package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableStatements(t *testing.T) {
	stmts := CustomersTable.Statements()

	cols := `"customer_id", "customer_name", "age", "gender"`
	assert.Equal(t, `SELECT `+cols+` FROM "customers" WHERE "customer_id" = $1`, stmts.SelectByKey)
	assert.Equal(t, `SELECT `+cols+` FROM "customers" ORDER BY "customer_id"`, stmts.SelectAll)
	assert.Equal(t, `INSERT INTO "customers" (`+cols+`) VALUES ($1, $2, $3, $4)`, stmts.Insert)
	assert.Equal(t, `UPDATE "customers" SET "customer_name" = $2, "age" = $3, "gender" = $4 WHERE "customer_id" = $1`, stmts.Update)
	assert.Equal(t, `DELETE FROM "customers" WHERE "customer_id" = $1`, stmts.Delete)
}

func TestTableStatements_EscapesIdentifiers(t *testing.T) {
	stmts := Table{Name: `we"ird`, Key: "id", Columns: []string{"id"}}.Statements()

	assert.Equal(t, `SELECT "id" FROM "we""ird" WHERE "id" = $1`, stmts.SelectByKey)
}
