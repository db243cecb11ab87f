package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sqlitego/sqlitego"
)

func newRootCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sqlitego",
		Short:         "Interactive shell over an SQLite database file",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := sqlitego.Open(cmd.Context(), sqlitego.Config{
				Path:    v.GetString("db"),
				Verbose: v.GetBool("verbose"),
			})
			if err != nil {
				return err
			}
			defer db.Close()

			return sqlitego.RunRepl(cmd.Context(), db)
		},
	}

	cmd.Flags().String("db", "sqlitego.db", "database file to open or create")
	cmd.Flags().Bool("verbose", false, "trace database calls")
	_ = v.BindPFlag("db", cmd.Flags().Lookup("db"))
	_ = v.BindPFlag("verbose", cmd.Flags().Lookup("verbose"))

	v.SetEnvPrefix("sqlitego")
	v.AutomaticEnv()

	return cmd
}

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	if err := newRootCommand(viper.New()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(sqlitego.ExitCode(err))
	}
}
