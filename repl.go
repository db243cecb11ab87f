package sqlitego

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/olekukonko/tablewriter"
)

func doSelect(ctx context.Context, out io.Writer, b Backend, query string) error {
	results, err := b.Query(ctx, query)
	if err != nil {
		return err
	}

	if len(results.Rows) == 0 {
		fmt.Fprintln(out, "(no results)")
		return nil
	}

	table := tablewriter.NewWriter(out)
	header := []string{}
	for _, col := range results.Columns {
		header = append(header, col.Name)
	}
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)

	rows := [][]string{}
	for _, result := range results.Rows {
		row := []string{}
		for _, cell := range result {
			row = append(row, cell.String())
		}

		rows = append(rows, row)
	}

	table.SetBorder(false)
	table.AppendBulk(rows)
	table.Render()

	if len(rows) == 1 {
		fmt.Fprintln(out, "(1 result)")
	} else {
		fmt.Fprintf(out, "(%d results)\n", len(rows))
	}

	return nil
}

func debugTable(ctx context.Context, out io.Writer, b Backend, name string) error {
	// psql behavior is to display all if no name is specified.
	if name == "" {
		return debugTables(ctx, out, b)
	}

	tables, err := b.Tables(ctx)
	if err != nil {
		return err
	}

	var tm *TableMetadata
	for i := range tables {
		if tables[i].Name == name {
			tm = &tables[i]
		}
	}

	if tm == nil {
		fmt.Fprintf(out, "Did not find any relation named \"%s\".\n", name)
		return nil
	}

	fmt.Fprintf(out, "Table \"%s\"\n", name)

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Column", "Type", "Affinity", "Modifiers"})
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)

	rows := [][]string{}
	for _, c := range tm.Columns {
		modifiers := []string{}
		if c.PrimaryKey {
			modifiers = append(modifiers, "primary key")
		}
		if c.NotNull {
			modifiers = append(modifiers, "not null")
		}
		rows = append(rows, []string{c.Name, strings.ToLower(c.Declared), c.Type.String(), strings.Join(modifiers, ", ")})
	}

	table.AppendBulk(rows)
	table.Render()

	fmt.Fprintln(out, "")
	return nil
}

func debugTables(ctx context.Context, out io.Writer, b Backend) error {
	tables, err := b.Tables(ctx)
	if err != nil {
		return err
	}

	if len(tables) == 0 {
		fmt.Fprintln(out, "Did not find any relations.")
		return nil
	}

	fmt.Fprintln(out, "List of relations")

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Name", "Type", "Columns"})
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)

	rows := [][]string{}
	for _, t := range tables {
		rows = append(rows, []string{t.Name, "table", fmt.Sprintf("%d", len(t.Columns))})
	}

	table.AppendBulk(rows)
	table.Render()

	fmt.Fprintln(out, "")
	return nil
}

// returnsRows reports whether a statement should be run as a query.
func returnsRows(stmt string) bool {
	fields := strings.Fields(stmt)
	if len(fields) == 0 {
		return false
	}

	switch strings.ToLower(fields[0]) {
	case "select", "pragma", "with", "values", "explain":
		return true
	}

	return false
}

// runLine executes one line of REPL input and reports whether the
// REPL should stop.
func runLine(ctx context.Context, out io.Writer, b Backend, line string) bool {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return false
	case trimmed == "quit" || trimmed == "exit" || trimmed == "\\q":
		return true
	case trimmed == "\\dt":
		if err := debugTables(ctx, out, b); err != nil {
			fmt.Fprintln(out, "Error listing tables:", err)
		}
		return false
	case strings.HasPrefix(trimmed, "\\d"):
		name := strings.TrimSpace(trimmed[len("\\d"):])
		if err := debugTable(ctx, out, b, name); err != nil {
			fmt.Fprintln(out, "Error describing table:", err)
		}
		return false
	}

	if returnsRows(trimmed) {
		if err := doSelect(ctx, out, b, trimmed); err != nil {
			fmt.Fprintln(out, "Error selecting values:", err)
		}
		return false
	}

	if strings.HasPrefix(strings.ToLower(trimmed), "create table") {
		status, err := b.CreateTable(ctx, trimmed)
		if err != nil {
			fmt.Fprintf(out, "Error creating table (status %d): %s\n", status, err)
			return false
		}
		fmt.Fprintln(out, "ok")
		return false
	}

	res, err := b.Exec(ctx, trimmed)
	if err != nil {
		fmt.Fprintf(out, "Error executing statement (status %d): %s\n", res.Status, err)
		return false
	}

	fmt.Fprintf(out, "ok (%d rows affected)\n", res.RowsAffected)
	return false
}

// RunRepl reads statements from the terminal until EOF or quit.
func RunRepl(ctx context.Context, b Backend) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "# ",
		HistoryFile:     filepath.Join(os.TempDir(), ".sqlitego_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer l.Close()

	fmt.Fprintln(l.Stdout(), "Welcome to sqlitego.")
	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if err == io.EOF {
			return nil
		}
		if err != nil {
			fmt.Fprintln(l.Stdout(), "Error while reading line:", err)
			continue
		}

		if runLine(ctx, l.Stdout(), b, line) {
			return nil
		}
	}
}
