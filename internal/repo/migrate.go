package repo

import (
	"fmt"

	"gorm.io/gorm"

	pkgdb "github.com/hostelops/complaints/pkg/db"
)

const (
	MigrateSQL  = "sql"
	MigrateAuto = "auto"
)

// Migrate brings the schema up to date. The "sql" mode runs the embedded
// postgres migrations; anything else, and every sqlite database, uses gorm's
// AutoMigrate.
func Migrate(db *gorm.DB, mode, driver, dsn string) error {
	if mode == MigrateSQL && driver != pkgdb.DriverSQLite {
		if err := pkgdb.MigrateUp(dsn); err != nil {
			return fmt.Errorf("sql migrations: %w", err)
		}
		return nil
	}
	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
