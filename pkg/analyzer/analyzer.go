package analyzer

import (
	"github.com/rowsleuth/rowsleuth/pkg/format"
	"github.com/rowsleuth/rowsleuth/pkg/parser"
)

type (
	// Analysis is the full report for one SQL source: query analyses and
	// insert analyses, each in source order. Statements of other kinds
	// contribute nothing.
	Analysis struct {
		Queries []*QueryAnalysis
		Inserts []*InsertAnalysis
	}

	// QueryAnalysis pairs a query's canonical text with its clause steps.
	// Steps is empty for set operations and bare VALUES queries.
	QueryAnalysis struct {
		Statement string
		Steps     []string
	}

	// InsertAnalysis pairs an insert's canonical text with the count query
	// for its target table and the count query (or literal) for its payload.
	InsertAnalysis struct {
		Statement    string
		TargetCount  string
		PayloadCount string
	}
)

// Analyze parses the SQL source and analyzes every statement in order. A
// parse failure aborts with no partial result, as does an insert whose
// source cannot be counted (see ErrUnsupportedInsertSource); the latter
// matches the behavior of treating an unanswerable statement as a fault in
// the input rather than something to skip.
func Analyze(sql string) (*Analysis, error) {
	file, err := parser.ParseString(sql)
	if err != nil {
		return nil, err
	}

	return AnalyzeStatements(file.Statements)
}

// AnalyzeStatements runs the per-statement analyses over an already parsed
// statement list.
func AnalyzeStatements(stmts []*parser.Statement) (*Analysis, error) {
	analysis := &Analysis{}
	for _, stmt := range stmts {
		switch {
		case stmt.Query != nil:
			q := &stmt.Query.Query
			analysis.Queries = append(analysis.Queries, &QueryAnalysis{
				Statement: format.Query(q),
				Steps:     Decompose(q),
			})
		case stmt.Insert != nil:
			ins, err := AnalyzeInsert(stmt.Insert)
			if err != nil {
				return nil, err
			}
			analysis.Inserts = append(analysis.Inserts, ins)
		default:
			// DDL and other statement kinds are outside scope, not errors.
		}
	}

	return analysis, nil
}
