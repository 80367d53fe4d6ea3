package database

import "github.com/gaborage/sqlbricks/database/types"

// Re-export driver identifiers so callers using the database package do not
// need to import types; the single source of truth lives in types.
const (
	MySQL    = types.MySQL
	Postgres = types.Postgres
	SQLite   = types.SQLite
	MSSQL    = types.MSSQL
)
