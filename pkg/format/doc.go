// Package format renders parsed statements back to canonical SQL text.
//
// The canonical form is single-line: one space between tokens, uppercase
// keywords, identifier and literal text preserved exactly as written. The
// same rendering is used for the count queries the analyzer emits and for
// the fmt command, so a query the tool prints always round-trips through
// the parser unchanged.
//
// Usage:
//
//	file, _ := parser.ParseString("select * from users where active=1;")
//	fmt.Println(format.Statement(file.Statements[0]))
//	// SELECT * FROM users WHERE active = 1;
//
//	var buf bytes.Buffer
//	err := format.Format(&buf, file.Statements...)
package format
