// Package parser provides a participle-based parser for the SQL surface the
// analyzer works with: SELECT-family queries (including WITH clauses, joins,
// grouping, set operations, and literal VALUES bodies), INSERT statements,
// and a raw-token passthrough for every other statement kind.
//
// The grammar is deliberately a closed set of tagged variants: a Statement is
// exactly a query, an insert, or an "other" statement, and a query body is
// exactly a select core or a VALUES list. Adding a statement or body kind is
// a compile-time-visible change to these structs.
//
// Every AST node renders its canonical single-line SQL text via String().
// Identifier and literal text is preserved exactly as written in the source;
// keywords and operators render uppercase.
//
// Basic usage:
//
//	file, err := parser.ParseString(`
//	    SELECT * FROM users WHERE active = 1;
//	    INSERT INTO audit_log SELECT * FROM events;
//	    DROP TABLE retired;
//	`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, stmt := range file.Statements {
//	    fmt.Println(stmt.String())
//	}
package parser
