package sqlitego

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Definer is anything that can appear as a column in CREATE TABLE.
type Definer interface {
	Name() string
	Definition() string
}

// Field is a column whose values can be written as rows. *Column[T]
// implements it for every payload type.
type Field interface {
	Definer
	Len() int
	At(i int) driver.Valuer
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// CreateTableSQL renders a CREATE TABLE statement for cols.
func CreateTableSQL(table string, cols ...Definer) string {
	defs := []string{}
	for _, col := range cols {
		defs = append(defs, "\t"+col.Definition())
	}

	return fmt.Sprintf("CREATE TABLE %s (\n%s\n);", quoteIdent(table), strings.Join(defs, ",\n"))
}

// InsertSQL renders a parameterized INSERT for one row of cols.
func InsertSQL(table string, cols ...Definer) string {
	names := []string{}
	slots := []string{}
	for _, col := range cols {
		names = append(names, quoteIdent(col.Name()))
		slots = append(slots, "?")
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);", quoteIdent(table), strings.Join(names, ", "), strings.Join(slots, ", "))
}
