package grammar

import "github.com/gaborage/sqlbricks/database/types"

var mysqlOperators = []string{
	"=", "<", ">", "<=", ">=", "<>", "!=", "<=>",
	"like", "like binary", "not like", "between", "ilike",
	"&", "|", "^", "<<", ">>", "&~",
	"rlike", "not rlike", "regexp", "not regexp",
	"sounds like",
}

var mysql = newGrammar(types.MySQL, mysqlOperators, '`', '`', Question, "rand()", false)
