package grammar

import "github.com/gaborage/sqlbricks/database/types"

// postgresOperators includes the JSON, range, bitwise and full text operators.
var postgresOperators = []string{
	"=", "<", ">", "<=", ">=", "<>", "!=",
	"like", "not like", "between", "ilike", "not ilike",
	"~", "&", "|", "#", "<<", ">>", "<<=", ">>=",
	"&&", "@>", "<@", "?", "?|", "?&", "||", "-", "@?", "@@", "#-",
	"is distinct from", "is not distinct from",
}

var postgres = newGrammar(types.Postgres, postgresOperators, '"', '"', Dollar, "random()", true)
