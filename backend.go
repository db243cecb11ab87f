package sqlitego

import (
	"context"
	"fmt"
	"strings"
)

// SQLType is the storage class a value or column maps to
type SQLType uint

const (
	// IntegerType is used for signed integer payloads
	IntegerType SQLType = iota
	// RealType is used for floating point payloads
	RealType
	// TextType is used for textual payloads
	TextType
	// BlobType is used for raw byte payloads
	BlobType
	// NumericType is the affinity SQLite gives to any other declared type
	NumericType
)

func (t SQLType) String() string {
	switch t {
	case IntegerType:
		return "Integer"
	case RealType:
		return "Real"
	case TextType:
		return "Text"
	case BlobType:
		return "Blob"
	case NumericType:
		return "Numeric"
	default:
		return "Error"
	}
}

// AffinityOf maps a declared column type to its SQLite type affinity.
func AffinityOf(declared string) SQLType {
	d := strings.ToUpper(declared)
	switch {
	case strings.Contains(d, "INT"):
		return IntegerType
	case strings.Contains(d, "CHAR"), strings.Contains(d, "CLOB"), strings.Contains(d, "TEXT"):
		return TextType
	case d == "", strings.Contains(d, "BLOB"):
		return BlobType
	case strings.Contains(d, "REAL"), strings.Contains(d, "FLOA"), strings.Contains(d, "DOUB"):
		return RealType
	default:
		return NumericType
	}
}

// Cell is one column of one result row, as returned by the driver.
type Cell struct {
	v interface{}
}

func (c Cell) IsNull() bool {
	return c.v == nil
}

func (c Cell) AsInt() *int64 {
	switch v := c.v.(type) {
	case int64:
		return &v
	case float64:
		i := int64(v)
		return &i
	case bool:
		var i int64
		if v {
			i = 1
		}
		return &i
	}

	return nil
}

func (c Cell) AsReal() *float64 {
	switch v := c.v.(type) {
	case float64:
		return &v
	case int64:
		f := float64(v)
		return &f
	}

	return nil
}

func (c Cell) AsText() *string {
	switch v := c.v.(type) {
	case string:
		return &v
	case []byte:
		s := string(v)
		return &s
	}

	return nil
}

func (c Cell) AsBlob() []byte {
	switch v := c.v.(type) {
	case []byte:
		return v
	case string:
		return []byte(v)
	}

	return nil
}

// String renders the cell the way the REPL prints it.
func (c Cell) String() string {
	switch v := c.v.(type) {
	case nil:
		return ""
	case []byte:
		return fmt.Sprintf("\\x%x", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Results are returned after a successful execution of a query
type Results struct {
	Columns []ResultColumn
	Rows    [][]Cell
}

// ResultColumn contains the metadata of the columns
type ResultColumn struct {
	Type     SQLType
	Declared string
	Name     string
}

// TableColumn describes one column of a table in the catalog
type TableColumn struct {
	Name       string
	Declared   string
	Type       SQLType
	NotNull    bool
	PrimaryKey bool
}

type TableMetadata struct {
	Name    string
	Columns []TableColumn
}

// ExecResult is returned by statements that produce no rows
type ExecResult struct {
	Status       Status
	LastInsertID int64
	RowsAffected int64
}

// Backend is the surface the REPL drives. *Database implements it.
type Backend interface {
	CreateTable(ctx context.Context, query string) (Status, error)
	Exec(ctx context.Context, query string, args ...interface{}) (ExecResult, error)
	Query(ctx context.Context, query string, args ...interface{}) (*Results, error)
	Tables(ctx context.Context) ([]TableMetadata, error)
}
