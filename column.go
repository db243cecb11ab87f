package sqlitego

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/petar/GoLLRB/llrb"
)

// Column is a named, typed sequence of values. The primary key flag is
// metadata only: Insert never rejects a value, Validate reports
// duplicates after the fact.
type Column[T Payload] struct {
	name       string
	typ        string
	primaryKey bool
	data       []Value[T]
}

// NewColumn creates an empty column whose type label is taken from T.
func NewColumn[T Payload](name string, primaryKey bool) *Column[T] {
	return &Column[T]{
		name:       name,
		typ:        TypeOf[T]().String(),
		primaryKey: primaryKey,
	}
}

func (c *Column[T]) Name() string {
	return c.name
}

func (c *Column[T]) SetName(name string) {
	c.name = name
}

func (c *Column[T]) Type() string {
	return c.typ
}

// SetType overrides the type label. Nothing stops it from disagreeing
// with T; Validate reports the mismatch.
func (c *Column[T]) SetType(typ string) {
	c.typ = typ
}

func (c *Column[T]) PrimaryKey() bool {
	return c.primaryKey
}

func (c *Column[T]) SetPrimaryKey(primaryKey bool) {
	c.primaryKey = primaryKey
}

// Insert puts v at the front of the column.
func (c *Column[T]) Insert(v Value[T]) {
	c.data = append(c.data, Value[T]{})
	copy(c.data[1:], c.data)
	c.data[0] = v
}

// Data returns the column's values, most recently inserted first. The
// slice shares storage with the column until the next Insert.
func (c *Column[T]) Data() []Value[T] {
	return c.data
}

func (c *Column[T]) Len() int {
	return len(c.data)
}

// At returns the i-th value as a statement argument.
func (c *Column[T]) At(i int) driver.Valuer {
	return c.data[i]
}

type indexItem[T Payload] struct {
	v Value[T]
}

func (i indexItem[T]) Less(than llrb.Item) bool {
	return i.v.Compare(than.(indexItem[T]).v) < 0
}

func (c *Column[T]) index() *llrb.LLRB {
	tree := llrb.New()
	for _, v := range c.data {
		tree.InsertNoReplace(indexItem[T]{v})
	}

	return tree
}

// Sorted returns a copy of the column's values in ascending order.
func (c *Column[T]) Sorted() []Value[T] {
	tree := c.index()
	if tree.Len() == 0 {
		return nil
	}

	sorted := make([]Value[T], 0, tree.Len())
	tree.AscendGreaterOrEqual(tree.Min(), func(i llrb.Item) bool {
		sorted = append(sorted, i.(indexItem[T]).v)
		return true
	})

	return sorted
}

// Duplicates returns every payload that occurs more than once, in
// ascending order.
func (c *Column[T]) Duplicates() []Value[T] {
	seen := llrb.New()
	dups := llrb.New()
	for _, v := range c.data {
		item := indexItem[T]{v}
		if seen.Has(item) {
			dups.ReplaceOrInsert(item)
			continue
		}
		seen.InsertNoReplace(item)
	}

	if dups.Len() == 0 {
		return nil
	}

	var out []Value[T]
	dups.AscendGreaterOrEqual(dups.Min(), func(i llrb.Item) bool {
		out = append(out, i.(indexItem[T]).v)
		return true
	})

	return out
}

// Validate checks the invariants Insert and SetType do not enforce.
func (c *Column[T]) Validate() error {
	if !strings.EqualFold(c.typ, TypeOf[T]().String()) {
		return fmt.Errorf("%w: column %q is %s, values are %s", ErrTypeMismatch, c.name, c.typ, TypeOf[T]())
	}

	if c.primaryKey {
		if dups := c.Duplicates(); len(dups) > 0 {
			return fmt.Errorf("%w: column %q, key %s", ErrViolatesPrimaryKey, c.name, dups[0])
		}
	}

	return nil
}

// Definition renders the column clause of a CREATE TABLE statement.
func (c *Column[T]) Definition() string {
	modifiers := ""
	if c.primaryKey {
		modifiers += " PRIMARY KEY"
	}

	return fmt.Sprintf("%s %s%s", quoteIdent(c.name), strings.ToUpper(c.typ), modifiers)
}

func (c *Column[T]) String() string {
	var b strings.Builder
	b.WriteString("Column [\n")
	fmt.Fprintf(&b, " name : %s\n", c.name)
	fmt.Fprintf(&b, " type : %s\n", c.typ)
	fmt.Fprintf(&b, " primary key : %t\n", c.primaryKey)
	fmt.Fprintf(&b, " values : %d\n", len(c.data))
	b.WriteString("]")
	return b.String()
}
