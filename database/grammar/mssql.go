package grammar

import "github.com/gaborage/sqlbricks/database/types"

var mssqlOperators = []string{
	"=", "<", ">", "<=", ">=", "!<", "!>", "<>", "!=",
	"like", "not like", "between", "ilike",
	"&", "&=", "|", "|=", "^", "^=",
}

var mssql = newGrammar(types.MSSQL, mssqlOperators, '[', ']', AtP, "newid()", false)
