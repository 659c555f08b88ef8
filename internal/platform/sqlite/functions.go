package sqlite

import (
	"database/sql/driver"
	"fmt"
	"strings"

	msqlite "modernc.org/sqlite"
)

// LowerFunc is a Unicode-aware replacement for SQLite's LOWER, which only
// folds ASCII letters. It lowercases exactly like strings.ToLower so that
// both sides of a search comparison are folded the same way.
const LowerFunc = "unicode_lower"

func init() {
	if err := msqlite.RegisterDeterministicScalarFunction(LowerFunc, 1, unicodeLower); err != nil {
		panic(fmt.Sprintf("register %s: %v", LowerFunc, err))
	}
}

func unicodeLower(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}
