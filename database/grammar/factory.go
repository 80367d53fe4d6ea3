package grammar

import (
	"github.com/gaborage/sqlbricks/database/types"
)

var registry = map[types.Vendor]*Grammar{
	types.MySQL:    mysql,
	types.Postgres: postgres,
	types.SQLite:   sqlite,
	types.MSSQL:    mssql,
}

// Create returns the singleton Grammar for driver. Only the exact identifiers
// "mysql", "postgres", "sqlite" and "mssql" are recognized; any other value,
// including non-string inputs and nil, yields a *DriverNotSupportedError.
func Create(driver any) (*Grammar, error) {
	name, ok := driver.(string)
	if !ok {
		return nil, &DriverNotSupportedError{Driver: driver}
	}

	g, ok := registry[name]
	if !ok {
		return nil, &DriverNotSupportedError{Driver: driver}
	}
	return g, nil
}

// MustCreate is like Create but panics when the driver is not supported.
func MustCreate(driver any) *Grammar {
	g, err := Create(driver)
	if err != nil {
		panic(err)
	}
	return g
}

// Drivers returns the supported driver identifiers in a stable order.
func Drivers() []string {
	return []string{types.MySQL, types.Postgres, types.SQLite, types.MSSQL}
}
