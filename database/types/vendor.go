//revive:disable-next-line:var-naming // Package name "types" avoids circular imports.
package types

// Vendor identifies a SQL driver dialect.
type Vendor = string

// Supported driver identifiers.
const (
	MySQL    Vendor = "mysql"
	Postgres Vendor = "postgres"
	SQLite   Vendor = "sqlite"
	MSSQL    Vendor = "mssql"
)
