package parser

import "strings"

// InsertStatement is an INSERT with a query source: either a SELECT-family
// query or a literal VALUES row list. The target column list is parsed and
// carried for round-tripping but plays no part in analysis.
type InsertStatement struct {
	Table     TableName `parser:"'INSERT' 'INTO' @@"`
	Columns   []string  `parser:"('(' @(Ident | QuotedIdent) (',' @(Ident | QuotedIdent))* ')')?"`
	Source    Query     `parser:"@@"`
	Semicolon bool      `parser:"';'"`
}

// String returns the canonical single-line text of the insert statement,
// without the trailing semicolon.
func (i *InsertStatement) String() string {
	result := "INSERT INTO " + i.Table.String()
	if len(i.Columns) > 0 {
		result += " (" + strings.Join(i.Columns, ", ") + ")"
	}
	return result + " " + i.Source.String()
}
