package main

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sqlitego/sqlitego"
)

func main() {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		panic(err)
	}
	defer db.Close()

	_, err = db.Exec("CREATE TABLE users (name TEXT, age INTEGER, avatar BLOB);")
	if err != nil {
		panic(err)
	}

	_, err = db.Exec("INSERT INTO users VALUES (?, ?, ?);",
		sqlitego.NewText("Terry"), sqlitego.NewInteger(45), sqlitego.NewBlob([]byte{0xca, 0xfe}))
	if err != nil {
		panic(err)
	}

	_, err = db.Exec("INSERT INTO users VALUES (?, ?, ?);",
		sqlitego.NewText("Anette"), sqlitego.NewInteger(57), sqlitego.NewBlob([]byte{}))
	if err != nil {
		panic(err)
	}

	rows, err := db.Query("SELECT name, age, avatar FROM users;")
	if err != nil {
		panic(err)
	}
	defer rows.Close()

	name := sqlitego.NewText("")
	age := sqlitego.NewInteger(0)
	avatar := sqlitego.NewBlob([]byte(nil))
	for rows.Next() {
		err := rows.Scan(&name, &age, &avatar)
		if err != nil {
			panic(err)
		}

		fmt.Printf("Name: %s, Age: %s, Avatar: %d bytes\n", name, age, len(avatar.Payload()))
	}

	if err = rows.Err(); err != nil {
		panic(err)
	}
}
