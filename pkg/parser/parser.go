package parser

import (
	"io"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

var (
	// sqlLexer tokenizes generic SQL. QuotedIdent covers both double-quote
	// and backtick quoting so quoted identifier text survives serialization
	// exactly as written.
	sqlLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `--[^\r\n]*`},
		{Name: "MultilineComment", Pattern: `/\*[^*]*\*+([^/*][^*]*\*+)*/`},
		{Name: "String", Pattern: `'(''|[^'\\]|\\.)*'`},
		{Name: "QuotedIdent", Pattern: "`([^`\\\\]|\\\\.)*`|\"([^\"\\\\]|\\\\.)*\""},
		{Name: "Number", Pattern: `\d+(\.\d*)?`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "NotEq", Pattern: `!=|<>`},
		{Name: "LtEq", Pattern: `<=`},
		{Name: "GtEq", Pattern: `>=`},
		{Name: "Punct", Pattern: `[(),.;=+\-*/%<>\[\]!]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	// sqlParser is the participle parser instance, built once at package init.
	// CaseInsensitive("Ident") lets keyword literals match regardless of the
	// case they were written in, so no pre-pass normalization of the source
	// text is needed.
	sqlParser = participle.MustBuild[SourceFile](
		participle.Lexer(sqlLexer),
		participle.Elide("Comment", "MultilineComment", "Whitespace"),
		participle.UseLookahead(4),
		participle.CaseInsensitive("Ident"),
	)
)

type (
	// SourceFile is the root of the grammar: a sequence of semicolon
	// terminated statements.
	SourceFile struct {
		Statements []*Statement `parser:"@@*"`
	}

	// Statement is the closed set of statement kinds the tool distinguishes.
	// Queries and inserts get a typed AST; everything else (DDL, grants, ...)
	// is captured token-for-token as an OtherStatement and carried through
	// unanalyzed.
	Statement struct {
		Query  *QueryStatement  `parser:"@@"`
		Insert *InsertStatement `parser:"| @@"`
		Other  *OtherStatement  `parser:"| @@"`
	}

	// QueryStatement is a top-level SELECT-family query. Nested queries
	// (CTE bodies, subqueries) use Query directly, without the semicolon.
	QueryStatement struct {
		Query     Query `parser:"@@"`
		Semicolon bool  `parser:"';'"`
	}

	// OtherStatement captures any statement that does not start like a query
	// or an insert. The leading-token restriction keeps malformed SELECT or
	// INSERT text from silently degrading into an "other" statement; such
	// input is a parse error instead.
	OtherStatement struct {
		Tokens []string `parser:"@(~(';' | 'SELECT' | 'INSERT' | 'WITH' | 'VALUES')) @(~';')* ';'"`
	}
)

// String returns the canonical single-line text of a statement, without the
// trailing semicolon.
func (s *Statement) String() string {
	switch {
	case s.Query != nil:
		return s.Query.Query.String()
	case s.Insert != nil:
		return s.Insert.String()
	case s.Other != nil:
		return s.Other.String()
	default:
		return ""
	}
}

// String joins the captured tokens of an unanalyzed statement. Original
// inter-token spacing is not preserved; one space between tokens is canonical
// enough for statements the tool only needs to carry, not rebuild.
func (o *OtherStatement) String() string {
	return strings.Join(o.Tokens, " ")
}

// Parse parses SQL statements from an io.Reader and returns the parsed
// source file. The reader can be a file, a string reader, or any other
// stream; parsing is all-or-nothing, so a syntax error anywhere in the
// input fails the whole call.
func Parse(r io.Reader) (*SourceFile, error) {
	file, err := sqlParser.Parse("", r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse SQL")
	}

	return file, nil
}

// ParseString parses SQL statements from a string. This is the primary
// entry point used by the analyzer and the fmt command.
//
// Example:
//
//	file, err := parser.ParseString("SELECT * FROM users WHERE active = 1;")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, stmt := range file.Statements {
//		if stmt.Query != nil {
//			fmt.Println(stmt.Query.Query.String())
//		}
//	}
func ParseString(sql string) (*SourceFile, error) {
	return Parse(strings.NewReader(sql))
}

// ParseFile parses the SQL file at path.
func ParseFile(path string) (*SourceFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read file: %s", path)
	}
	defer f.Close()

	file, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse SQL in file: %s", path)
	}

	return file, nil
}
