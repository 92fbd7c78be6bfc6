package db

import (
	"bytes"
	"context"
	"fmt"
	"go/token"
	"hash/crc32"
	"os"
	"text/template"
	"time"

	"stationboard/config"
	"stationboard/db/migrations"
	"stationboard/db/pgw"
	"stationboard/oops"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var DbCmd *cobra.Command

func init() {
	DbCmd = &cobra.Command{
		Use: "db",
	}

	migrateCmd := &cobra.Command{
		Use: "migrate",
		Run: func(_ *cobra.Command, _ []string) {
			migrate()
		},
	}

	rollbackCmd := &cobra.Command{
		Use: "rollback",
		Run: func(_ *cobra.Command, _ []string) {
			rollback()
		},
	}

	versionCmd := &cobra.Command{
		Use: "version",
		Run: func(_ *cobra.Command, _ []string) {
			printVersion()
		},
	}

	generateMigrationCmd := &cobra.Command{
		Use:  "generate-migration",
		Args: cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			generateMigration(args[0])
		},
	}

	DbCmd.AddCommand(migrateCmd)
	DbCmd.AddCommand(rollbackCmd)
	DbCmd.AddCommand(versionCmd)
	DbCmd.AddCommand(generateMigrationCmd)
}

var Pool *pgw.Pool

func init() {
	var err error
	Pool, err = pgw.NewPool(context.Background(), config.Cfg.DB.DSN())
	if err != nil {
		panic(err)
	}
}

func EnsureLatestMigration() error {
	conn, err := Pool.AcquireBackground()
	if err != nil {
		return err
	}
	defer conn.Release()

	row := conn.QueryRow("select version from schema_migrations order by version desc limit 1")
	var latestDbVersion string
	err = row.Scan(&latestDbVersion)
	if errors.Is(err, pgx.ErrNoRows) {
		latestDbVersion = ""
	} else if err != nil {
		return err
	}

	for _, migration := range migrations.All {
		version := migration.Version()
		if version > latestDbVersion {
			return oops.Newf("Migration is not in db: %s", version)
		}
	}

	return nil
}

func migrate() {
	conn, err := Pool.AcquireBackground()
	if err != nil {
		panic(err)
	}
	defer conn.Release()

	lockId := migrationLock(conn)
	defer migrationUnlock(conn, lockId)()

	conn.MustExec("create table if not exists schema_migrations (version text primary key)")

	versionsRows, err := conn.Query("select version from schema_migrations order by version asc")
	if err != nil {
		panic(err)
	}
	dbVersions := make(map[string]bool)
	var latestDbVersion string
	for versionsRows.Next() {
		var version string
		if err := versionsRows.Scan(&version); err != nil {
			panic(err)
		}
		dbVersions[version] = true
		if version > latestDbVersion {
			latestDbVersion = version
		}
	}
	if err := versionsRows.Err(); err != nil {
		panic(err)
	}

	for _, migration := range migrations.All {
		version := migration.Version()
		if version <= latestDbVersion && !dbVersions[version] {
			panic(fmt.Errorf("Old migration is not in db: %s", version))
		}
	}

	for _, migration := range migrations.All {
		if migration.Version() <= latestDbVersion {
			continue
		}

		runMigration(conn, migration, func(tx *pgw.Tx) {
			migration.Up(tx)
			tx.MustExec("insert into schema_migrations (version) values ($1)", migration.Version())
		})
		fmt.Println(migration.Version())
	}
}

func rollback() {
	conn, err := Pool.AcquireBackground()
	if err != nil {
		panic(err)
	}
	defer conn.Release()

	lockId := migrationLock(conn)
	defer migrationUnlock(conn, lockId)()

	maxVersionRow := conn.QueryRow("select max(version) from schema_migrations")
	var maxVersion string
	if err := maxVersionRow.Scan(&maxVersion); err != nil {
		panic(err)
	}

	found := false
	for _, migration := range migrations.All {
		if migration.Version() != maxVersion {
			continue
		}
		found = true

		runMigration(conn, migration, func(tx *pgw.Tx) {
			migration.Down(tx)
			tag := tx.MustExec("delete from schema_migrations where version = $1", maxVersion)
			if tag.RowsAffected() != 1 {
				panic(fmt.Errorf("Expected to delete a single row, got %d", tag.RowsAffected()))
			}
		})
		fmt.Println(maxVersion, "rolled back")

		break
	}

	if !found {
		panic(fmt.Errorf("Migration version %s not found in code", maxVersion))
	}
}

func runMigration(conn *pgw.Conn, migration migrations.Migration, body func(tx *pgw.Tx)) {
	tx, err := conn.Begin()
	if err != nil {
		panic(err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			panic(errors.Wrap(err, "rollback error"))
		}
	}()

	body(tx)

	if err := tx.Commit(); err != nil {
		panic(err)
	}
}

func printVersion() {
	conn, err := Pool.AcquireBackground()
	if err != nil {
		panic(err)
	}
	defer conn.Release()

	row := conn.QueryRow("select version from schema_migrations order by version desc limit 1")
	var version string
	err = row.Scan(&version)
	if errors.Is(err, pgx.ErrNoRows) {
		fmt.Println("no migrations applied")
		return
	} else if err != nil {
		panic(err)
	}
	fmt.Println(version)
}

func generateMigration(name string) {
	if !token.IsIdentifier(name) {
		panic(fmt.Errorf("migration name is not a valid identifier: %s", name))
	}
	if !token.IsExported(name) {
		panic(fmt.Errorf("migration name is not an exported identifier: %s", name))
	}

	version := time.Now().Format("20060102030405")
	templateParams := struct {
		Version    string
		StructName string
	}{
		Version:    version,
		StructName: name,
	}

	templateText := `package migrations

import (
	"stationboard/db/pgw"
)

type {{.StructName}} struct{}

func init() {
	registerMigration(&{{.StructName}}{})
}

func (m *{{.StructName}}) Version() string {
	return "{{.Version}}"
}

func (m *{{.StructName}}) Up(tx *pgw.Tx) {
	panic("Not implemented")
}

func (m *{{.StructName}}) Down(tx *pgw.Tx) {
	panic("Not implemented")
}
`
	tmpl := template.Must(template.New("migration").Parse(templateText))

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, templateParams)
	if err != nil {
		panic(err)
	}

	filename := fmt.Sprintf("db/migrations/%s_%s.go", version, name)
	err = os.WriteFile(filename, buf.Bytes(), 0666)
	if err != nil {
		panic(err)
	}

	fmt.Println("Created", filename)
}

func migrationLock(conn *pgw.Conn) int {
	dbNameHash := crc32.ChecksumIEEE([]byte(config.Cfg.DB.DBName))
	const migratorSalt = 1429618103
	lockId := migratorSalt * int(dbNameHash)
	lockRow := conn.QueryRow("select pg_try_advisory_lock($1)", lockId)
	var gotLock bool
	err := lockRow.Scan(&gotLock)
	if err != nil {
		panic(err)
	}
	if !gotLock {
		panic("Cannot run migrations because another migration process is currently running")
	}

	return lockId
}

func migrationUnlock(conn *pgw.Conn, lockId int) func() {
	return func() {
		row := conn.QueryRow("select pg_advisory_unlock($1)", lockId)
		var unlocked bool
		err := row.Scan(&unlocked)
		if err != nil {
			panic(err)
		}
		if !unlocked {
			panic("Failed to release advisory lock")
		}
	}
}
