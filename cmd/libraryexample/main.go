package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sqlitego/sqlitego"
)

func main() {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "libraryexample")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	db, err := sqlitego.Open(ctx, sqlitego.Config{Path: filepath.Join(dir, "users.db")})
	if err != nil {
		panic(err)
	}
	defer db.Close()

	id := sqlitego.NewColumn[int64]("id", true)
	name := sqlitego.NewColumn[string]("name", false)
	score := sqlitego.NewColumn[float64]("score", false)

	next := sqlitego.NewInteger[int64](1)
	for _, user := range []struct {
		name  string
		score float64
	}{
		{"Admin", 9.5},
		{"Terry", 7.25},
		{"Anette", 8},
	} {
		id.Insert(sqlitego.PostInc(&next))
		name.Insert(sqlitego.NewText(user.name))
		score.Insert(sqlitego.NewReal(user.score))
	}

	if err := id.Validate(); err != nil {
		panic(err)
	}

	fmt.Println(id)

	status, err := db.CreateTable(ctx, sqlitego.CreateTableSQL("users", id, name, score))
	if err != nil {
		panic(err)
	}
	fmt.Println("create table:", status)

	res, err := db.Insert(ctx, "users", id, name, score)
	if err != nil {
		panic(err)
	}
	fmt.Printf("inserted %d rows\n", res.RowsAffected)

	results, err := db.Query(ctx, "SELECT id, name, score FROM users ORDER BY id;")
	if err != nil {
		panic(err)
	}

	for _, col := range results.Columns {
		fmt.Printf("| %s ", col.Name)
	}
	fmt.Println("|")

	for i := 0; i < 20; i++ {
		fmt.Printf("=")
	}
	fmt.Println()

	for _, result := range results.Rows {
		fmt.Printf("|")

		for _, cell := range result {
			fmt.Printf(" %s | ", cell)
		}

		fmt.Println()
	}
}
