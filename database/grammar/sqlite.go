package grammar

import "github.com/gaborage/sqlbricks/database/types"

var sqliteOperators = []string{
	"=", "==", "<", ">", "<=", ">=", "<>", "!=",
	"like", "not like", "between", "ilike",
	"&", "|", "<<", ">>",
	"glob", "not glob", "regexp", "not regexp", "match",
	"is", "is not",
}

var sqlite = newGrammar(types.SQLite, sqliteOperators, '"', '"', Question, "random()", false)
