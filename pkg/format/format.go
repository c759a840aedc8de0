package format

import (
	"io"

	"github.com/pkg/errors"
	"github.com/rowsleuth/rowsleuth/pkg/parser"
)

// Statement returns the canonical text of a single statement, semicolon
// terminated.
func Statement(stmt *parser.Statement) string {
	if stmt == nil {
		return ""
	}
	text := stmt.String()
	if text == "" {
		return ""
	}
	return text + ";"
}

// Query returns the canonical text of a query node.
func Query(q *parser.Query) string {
	if q == nil {
		return ""
	}
	return q.String()
}

// Insert returns the canonical text of an insert statement.
func Insert(ins *parser.InsertStatement) string {
	if ins == nil {
		return ""
	}
	return ins.String()
}

// TableName returns the canonical text of a table identifier, database
// qualification preserved as written.
func TableName(t *parser.TableName) string {
	if t == nil {
		return ""
	}
	return t.String()
}

// Format writes the canonical text of each statement to w, one statement per
// line, semicolon terminated. Statements that render empty are skipped.
func Format(w io.Writer, stmts ...*parser.Statement) error {
	for _, stmt := range stmts {
		text := Statement(stmt)
		if text == "" {
			continue
		}
		if _, err := io.WriteString(w, text+"\n"); err != nil {
			return errors.Wrap(err, "failed to write formatted statement")
		}
	}
	return nil
}
