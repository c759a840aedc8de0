package analyzer

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/rowsleuth/rowsleuth/pkg/format"
	"github.com/rowsleuth/rowsleuth/pkg/parser"
)

// ErrUnsupportedInsertSource is returned when an INSERT's source is neither
// a plain SELECT nor a literal VALUES list (for example a set operation).
// The payload size of such a source cannot be expressed as a single count
// query.
var ErrUnsupportedInsertSource = errors.New("unsupported INSERT source")

// AnalyzeInsert produces the two count queries for an insert statement: the
// current size of the target table, and the size of the payload the insert
// would add.
func AnalyzeInsert(ins *parser.InsertStatement) (*InsertAnalysis, error) {
	payload, err := payloadCount(&ins.Source)
	if err != nil {
		return nil, errors.Wrapf(err, "INSERT INTO %s", ins.Table.String())
	}

	return &InsertAnalysis{
		Statement:    format.Insert(ins),
		TargetCount:  "SELECT COUNT(*) FROM " + format.TableName(&ins.Table),
		PayloadCount: payload,
	}, nil
}

// payloadCount renders a single query (or literal) counting the rows the
// source produces.
func payloadCount(src *parser.Query) (string, error) {
	if src.IsSetOperation() {
		return "", ErrUnsupportedInsertSource
	}

	switch {
	case src.Body.Select != nil:
		// Clone the body with the projection forced to COUNT(*); everything
		// that shapes the row count (CTEs, FROM, WHERE, GROUP BY, HAVING)
		// stays exactly as written. Trailing clauses are dropped.
		core := *src.Body.Select
		core.Distinct = false
		core.Columns = []*parser.SelectColumn{countStarColumn()}
		count := parser.Query{With: src.With, Body: parser.QueryBody{Select: &core}}
		return count.String(), nil
	case src.Body.Values != nil:
		// A literal row list has a statically known size; no query needed.
		return "SELECT " + strconv.Itoa(len(src.Body.Values.Rows)), nil
	default:
		return "", ErrUnsupportedInsertSource
	}
}
