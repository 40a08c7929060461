package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open returns a connected GORM DB instance for the configured driver.
// SQLite is the default; MySQL is available for production deployments.
func Open(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "sqlite":
		// Foreign keys must be enabled per connection for ON DELETE CASCADE
		// to hold.
		if !strings.Contains(dsn, "_foreign_keys") {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + "_foreign_keys=on"
		}
		gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("connect sqlite: %w", err)
		}
		return gdb, nil
	case "mysql":
		gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("connect mysql: %w", err)
		}
		return gdb, nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}
