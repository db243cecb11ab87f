package sqlitego

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDatabase(t *testing.T) (*Database, *bytes.Buffer) {
	t.Helper()

	logs := &bytes.Buffer{}
	db, err := Open(context.Background(), Config{
		Path:   filepath.Join(t.TempDir(), "test.db"),
		Logger: slog.New(slog.NewTextHandler(logs, nil)),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, logs
}

func TestOpen(t *testing.T) {
	db, _ := openTestDatabase(t)
	assert.Equal(t, StatusOK, db.Status())
	assert.Equal(t, "test.db", filepath.Base(db.Path()))
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open(context.Background(), Config{})
	assert.Equal(t, ErrEmptyPath, err)
}

func TestOpen_MissingDirectory(t *testing.T) {
	_, err := Open(context.Background(), Config{
		Path:   filepath.Join(t.TempDir(), "missing", "test.db"),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.Error(t, err)

	var se *Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StatusCantOpen, se.Status)
}

func TestCreateTable(t *testing.T) {
	db, logs := openTestDatabase(t)
	ctx := context.Background()

	status, err := db.CreateTable(ctx, "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL);")
	require.NoError(t, err)
	assert.Equal(t, StatusOK, status)
	assert.True(t, status.OK())
	assert.Empty(t, logs.String())

	status, err = db.CreateTable(ctx, "CREATE TABEL broken (")
	require.Error(t, err)
	assert.Equal(t, StatusError, status)
	assert.Equal(t, StatusError, db.Status())
	assert.Equal(t, StatusError, StatusOf(err))
	assert.Contains(t, logs.String(), "Error creating table")

	status, err = db.CreateTable(ctx, "CREATE TABLE users (id INTEGER);")
	require.Error(t, err)
	assert.Equal(t, StatusError, status)
	assert.Contains(t, err.Error(), "already exists")

	status, err = db.CreateTable(ctx, "   ")
	assert.ErrorIs(t, err, ErrEmptyStatement)
	assert.Equal(t, StatusMisuse, status)
}

func TestExecAndQuery(t *testing.T) {
	db, _ := openTestDatabase(t)
	ctx := context.Background()

	_, err := db.Exec(ctx, "CREATE TABLE items (id INTEGER PRIMARY KEY, label TEXT, price REAL, data BLOB);")
	require.NoError(t, err)

	res, err := db.Exec(ctx, "INSERT INTO items (label, price, data) VALUES (?, ?, ?);",
		NewText("pen"), NewReal(1.25), NewBlob([]byte{0xde, 0xad}))
	require.NoError(t, err)
	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, int64(1), res.LastInsertID)
	assert.Equal(t, int64(1), res.RowsAffected)

	_, err = db.Exec(ctx, "INSERT INTO items (id, label) VALUES (1, 'dup');")
	require.Error(t, err)
	assert.Equal(t, StatusConstraint, StatusOf(err))

	results, err := db.Query(ctx, "SELECT id, label, price, data, 1 + 1 AS two FROM items;")
	require.NoError(t, err)
	require.Len(t, results.Rows, 1)

	assert.Equal(t, []ResultColumn{
		{Type: IntegerType, Declared: "INTEGER", Name: "id"},
		{Type: TextType, Declared: "TEXT", Name: "label"},
		{Type: RealType, Declared: "REAL", Name: "price"},
		{Type: BlobType, Declared: "BLOB", Name: "data"},
		{Type: IntegerType, Declared: "", Name: "two"},
	}, results.Columns)

	row := results.Rows[0]
	assert.Equal(t, int64(1), *row[0].AsInt())
	assert.Equal(t, "pen", *row[1].AsText())
	assert.Equal(t, 1.25, *row[2].AsReal())
	assert.Equal(t, []byte{0xde, 0xad}, row[3].AsBlob())
	assert.Equal(t, int64(2), *row[4].AsInt())
}

func TestQuery_ScanIntoValues(t *testing.T) {
	db, _ := openTestDatabase(t)
	ctx := context.Background()

	_, err := db.Exec(ctx, "CREATE TABLE t (n INTEGER, s TEXT);")
	require.NoError(t, err)
	_, err = db.Exec(ctx, "INSERT INTO t VALUES (?, ?);", NewInteger[int16](-3), NewText("x"))
	require.NoError(t, err)

	results, err := db.Query(ctx, "SELECT n, s FROM t;")
	require.NoError(t, err)

	n := NewInteger[int16](0)
	require.NoError(t, n.Scan(results.Rows[0][0].v))
	assert.Equal(t, int16(-3), n.Payload())
}

func TestInsertColumns(t *testing.T) {
	db, _ := openTestDatabase(t)
	ctx := context.Background()

	id := NewColumn[int64]("id", true)
	name := NewColumn[string]("name", false)
	for i, n := range []string{"Terry", "Anette", "Admin"} {
		id.Insert(NewInteger(int64(i + 1)))
		name.Insert(NewText(n))
	}

	_, err := db.CreateTable(ctx, CreateTableSQL("users", id, name))
	require.NoError(t, err)

	res, err := db.Insert(ctx, "users", id, name)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.RowsAffected)
	assert.Equal(t, int64(3), res.LastInsertID)

	results, err := db.Query(ctx, "SELECT name FROM users ORDER BY rowid;")
	require.NoError(t, err)
	got := []string{}
	for _, row := range results.Rows {
		got = append(got, *row[0].AsText())
	}
	assert.Equal(t, []string{"Terry", "Anette", "Admin"}, got)

	id.Insert(NewInteger[int64](1))
	_, err = db.Insert(ctx, "users", id, name)
	assert.ErrorIs(t, err, ErrMissingValues)

	name.Insert(NewText("Dup"))
	_, err = db.Insert(ctx, "users", id, name)
	require.Error(t, err)
	assert.Equal(t, StatusConstraint, StatusOf(err))

	// The failed transaction left nothing behind.
	results, err = db.Query(ctx, "SELECT count(*) FROM users;")
	require.NoError(t, err)
	assert.Equal(t, int64(3), *results.Rows[0][0].AsInt())
}

func TestTables(t *testing.T) {
	db, _ := openTestDatabase(t)
	ctx := context.Background()

	tables, err := db.Tables(ctx)
	require.NoError(t, err)
	assert.Empty(t, tables)

	_, err = db.CreateTable(ctx, "CREATE TABLE b (x REAL NOT NULL);")
	require.NoError(t, err)
	_, err = db.CreateTable(ctx, "CREATE TABLE a (id INTEGER PRIMARY KEY, note VARCHAR(20));")
	require.NoError(t, err)

	tables, err = db.Tables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []TableMetadata{
		{Name: "a", Columns: []TableColumn{
			{Name: "id", Declared: "INTEGER", Type: IntegerType, PrimaryKey: true},
			{Name: "note", Declared: "VARCHAR(20)", Type: TextType},
		}},
		{Name: "b", Columns: []TableColumn{
			{Name: "x", Declared: "REAL", Type: RealType, NotNull: true},
		}},
	}, tables)
}

func TestClose(t *testing.T) {
	db, _ := openTestDatabase(t)
	ctx := context.Background()

	require.NoError(t, db.Close())
	require.NoError(t, db.Close())

	status, err := db.CreateTable(ctx, "CREATE TABLE t (x INTEGER);")
	assert.ErrorIs(t, err, ErrDatabaseClosed)
	assert.Equal(t, StatusMisuse, status)
	assert.Equal(t, StatusMisuse, db.Status())

	_, err = db.Query(ctx, "SELECT 1;")
	assert.ErrorIs(t, err, ErrDatabaseClosed)

	_, err = db.Insert(ctx, "t", NewColumn[int]("x", false))
	assert.ErrorIs(t, err, ErrDatabaseClosed)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, StatusOK, StatusOf(nil))
	assert.Equal(t, StatusError, StatusOf(errors.New("boom")))
	assert.Equal(t, StatusMisuse, StatusOf(ErrDatabaseClosed))
	assert.Equal(t, StatusBusy, StatusOf(fmt.Errorf("wrapped: %w", &Error{Status: StatusBusy})))

	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(ErrEmptyPath))
	assert.Equal(t, 21, ExitCode(ErrDatabaseClosed))
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "ok", StatusOK.String())
	assert.Equal(t, "constraint failed", StatusConstraint.String())
	assert.Equal(t, "no more rows available", StatusDone.String())
	assert.Equal(t, "unknown error", Status(77).String())
}
