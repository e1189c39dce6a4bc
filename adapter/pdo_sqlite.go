//go:build cgo

package adapter

import "gorm.io/driver/sqlite"

// gorm's sqlite dialector needs mattn/go-sqlite3, which needs cgo.
func init() {
	pdoDialectors["sqlite"] = pdoDriver{
		family: FamilySqlite,
		open:   sqlite.Open,
		dsn: func(cfg *Config) string {
			return cfg.Database
		},
		driver: "sqlite3",
		quote:  quoteDouble,
	}
}
