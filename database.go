package sqlitego

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
)

const driverName = "sqlite3"

var _ Backend = (*Database)(nil)

// Config controls how a Database is opened.
type Config struct {
	// Path is the database file. It is created if it does not exist.
	// ":memory:" opens a private in-memory database.
	Path string

	// Logger receives diagnostics. If nil, a text logger on stderr is used.
	Logger *slog.Logger

	// Verbose enables debug tracing on the default logger.
	Verbose bool
}

// Database owns one connection to an embedded SQLite file. It is open
// from Open until the first Close.
type Database struct {
	path string
	db   *sql.DB
	log  *slog.Logger

	mu     sync.Mutex
	status Status
	closed bool
}

// Open opens or creates the database at cfg.Path. A failed open returns
// an *Error carrying SQLite's status.
func Open(ctx context.Context, cfg Config) (*Database, error) {
	if cfg.Path == "" {
		return nil, ErrEmptyPath
	}

	logger := cfg.Logger
	if logger == nil {
		level := slog.LevelInfo
		if cfg.Verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}

	db, err := sql.Open(driverName, cfg.Path)
	if err != nil {
		return nil, newError(err)
	}
	// Everything goes through a single native handle.
	db.SetMaxOpenConns(1)

	d := &Database{
		path: cfg.Path,
		db:   db,
		log:  logger.With("path", cfg.Path),
	}

	if err := db.PingContext(ctx); err != nil {
		se := newError(err)
		d.log.Error("Error opening database", "status", int(se.Status), "error", se.Message)
		_ = db.Close()
		return nil, se
	}

	d.log.Debug("Opened database")
	return d, nil
}

func (d *Database) Path() string {
	return d.path
}

// Status returns the status of the most recent operation.
func (d *Database) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

func (d *Database) setStatus(s Status) {
	d.mu.Lock()
	d.status = s
	d.mu.Unlock()
}

func (d *Database) conn() (*sql.DB, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		d.status = StatusMisuse
		return nil, newError(ErrDatabaseClosed)
	}

	return d.db, nil
}

// fail records and logs a failed operation. The returned error is always
// an *Error.
func (d *Database) fail(op, query string, err error) *Error {
	se := newError(err)
	d.setStatus(se.Status)
	d.log.Error("Error "+op, "status", int(se.Status), "error", se.Message, "sql", query)
	return se
}

// CreateTable executes a complete SQL statement and returns SQLite's
// status for it. Failures are logged and returned, never retried.
func (d *Database) CreateTable(ctx context.Context, query string) (Status, error) {
	res, err := d.exec(ctx, "creating table", query)
	if err != nil {
		return StatusOf(err), err
	}

	return res.Status, nil
}

// Exec executes a statement that returns no rows. args may be Values.
func (d *Database) Exec(ctx context.Context, query string, args ...interface{}) (ExecResult, error) {
	return d.exec(ctx, "executing statement", query, args...)
}

func (d *Database) exec(ctx context.Context, op, query string, args ...interface{}) (ExecResult, error) {
	if strings.TrimSpace(query) == "" {
		se := d.fail(op, query, ErrEmptyStatement)
		return ExecResult{Status: se.Status}, se
	}

	db, err := d.conn()
	if err != nil {
		return ExecResult{Status: StatusMisuse}, err
	}

	d.log.Debug("Executing", "sql", query, "args", len(args))
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		se := d.fail(op, query, err)
		return ExecResult{Status: se.Status}, se
	}

	result := ExecResult{Status: StatusOK}
	// SQLite always reports both; the errors exist for other drivers.
	result.LastInsertID, _ = res.LastInsertId()
	result.RowsAffected, _ = res.RowsAffected()

	d.setStatus(StatusOK)
	return result, nil
}

// Query executes a statement and reads every row it produces.
func (d *Database) Query(ctx context.Context, query string, args ...interface{}) (*Results, error) {
	if strings.TrimSpace(query) == "" {
		return nil, d.fail("querying", query, ErrEmptyStatement)
	}

	db, err := d.conn()
	if err != nil {
		return nil, err
	}

	d.log.Debug("Querying", "sql", query, "args", len(args))
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, d.fail("querying", query, err)
	}
	defer rows.Close()

	results, err := readRows(rows)
	if err != nil {
		return nil, d.fail("reading rows", query, err)
	}

	d.setStatus(StatusOK)
	return results, nil
}

func readRows(rows *sql.Rows) (*Results, error) {
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	results := &Results{}
	for _, ct := range types {
		results.Columns = append(results.Columns, ResultColumn{
			Type:     AffinityOf(ct.DatabaseTypeName()),
			Declared: ct.DatabaseTypeName(),
			Name:     ct.Name(),
		})
	}

	for rows.Next() {
		dest := make([]interface{}, len(types))
		ptrs := make([]interface{}, len(types))
		for i := range dest {
			ptrs[i] = &dest[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make([]Cell, len(dest))
		for i, v := range dest {
			row[i] = Cell{v}
		}
		results.Rows = append(results.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Expressions have no declared type, so take it from the first row.
	for i, col := range results.Columns {
		if col.Declared != "" || len(results.Rows) == 0 {
			continue
		}

		switch results.Rows[0][i].v.(type) {
		case int64, bool:
			results.Columns[i].Type = IntegerType
		case float64:
			results.Columns[i].Type = RealType
		case string:
			results.Columns[i].Type = TextType
		}
	}

	return results, nil
}

// Tables lists the user tables and their columns.
func (d *Database) Tables(ctx context.Context) ([]TableMetadata, error) {
	names, err := d.Query(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name;")
	if err != nil {
		return nil, err
	}

	tables := []TableMetadata{}
	for _, row := range names.Rows {
		name := *row[0].AsText()
		info, err := d.Query(ctx, fmt.Sprintf("PRAGMA table_info(%s);", quoteIdent(name)))
		if err != nil {
			return nil, err
		}

		tm := TableMetadata{Name: name}
		// cid, name, type, notnull, dflt_value, pk
		for _, c := range info.Rows {
			declared := *c[2].AsText()
			tm.Columns = append(tm.Columns, TableColumn{
				Name:       *c[1].AsText(),
				Declared:   declared,
				Type:       AffinityOf(declared),
				NotNull:    *c[3].AsInt() != 0,
				PrimaryKey: *c[5].AsInt() != 0,
			})
		}
		tables = append(tables, tm)
	}

	return tables, nil
}

// Insert writes the columns into table as rows, in the order the values
// were inserted into the columns, inside one transaction.
func (d *Database) Insert(ctx context.Context, table string, cols ...Field) (ExecResult, error) {
	if len(cols) == 0 {
		return ExecResult{Status: StatusOK}, nil
	}

	n := cols[0].Len()
	defs := make([]Definer, len(cols))
	for i, col := range cols {
		if col.Len() != n {
			se := d.fail("inserting values", table, fmt.Errorf("%w: column %q has %d values, want %d", ErrMissingValues, col.Name(), col.Len(), n))
			return ExecResult{Status: se.Status}, se
		}
		defs[i] = col
	}

	db, err := d.conn()
	if err != nil {
		return ExecResult{Status: StatusMisuse}, err
	}

	query := InsertSQL(table, defs...)
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		se := d.fail("beginning transaction", query, err)
		return ExecResult{Status: se.Status}, se
	}

	result, err := insertRows(ctx, tx, query, n, cols)
	if err != nil {
		se := d.fail("inserting values", query, errors.Join(err, tx.Rollback()))
		return ExecResult{Status: se.Status}, se
	}

	if err := tx.Commit(); err != nil {
		se := d.fail("committing transaction", query, err)
		return ExecResult{Status: se.Status}, se
	}

	d.setStatus(StatusOK)
	return result, nil
}

func insertRows(ctx context.Context, tx *sql.Tx, query string, n int, cols []Field) (ExecResult, error) {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return ExecResult{}, err
	}
	defer stmt.Close()

	result := ExecResult{Status: StatusOK}
	args := make([]interface{}, len(cols))
	// Columns hold their newest value first.
	for i := n - 1; i >= 0; i-- {
		for j, col := range cols {
			args[j] = col.At(i)
		}

		res, err := stmt.ExecContext(ctx, args...)
		if err != nil {
			return ExecResult{}, err
		}

		affected, _ := res.RowsAffected()
		result.RowsAffected += affected
		result.LastInsertID, _ = res.LastInsertId()
	}

	return result, nil
}

// Close closes the connection. Only the first call does anything.
func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true

	if err := d.db.Close(); err != nil {
		se := newError(err)
		d.status = se.Status
		d.log.Error("Error closing database", "status", int(se.Status), "error", se.Message)
		return se
	}

	d.log.Debug("Closed database")
	return nil
}
