package analyzer

import (
	"github.com/rowsleuth/rowsleuth/pkg/parser"
)

// Decompose returns the ordered clause steps for a query: a sequence of
// COUNT(*) queries, each one clause element more complete than the last.
// Running the sequence against a live database shows exactly which table,
// join, filter, or grouping key changes the row count.
//
// Queries whose body is a set operation or a literal VALUES list are not
// decomposition targets and yield no steps. Decomposition is a pure function
// of the syntax tree; the input query is never modified.
func Decompose(q *parser.Query) []string {
	return decompose(q, nil)
}

// decompose walks one query under an explicit CTE scope. Scope is threaded
// through the recursion rather than held ambiently so that each CTE's steps
// see exactly the names defined before it.
func decompose(q *parser.Query, scope []*parser.CTE) []string {
	var steps []string

	// Each CTE is decomposed under its predecessors only: non-recursive CTE
	// visibility means a CTE's own name is not in scope inside its body.
	ctes := q.CTEs()
	for i, cte := range ctes {
		steps = append(steps, decompose(cte.Query, mergeScope(scope, ctes[:i]))...)
	}

	src := q.Body.Select
	if src == nil || q.IsSetOperation() {
		return steps
	}

	b := newStepBuilder(mergeScope(scope, ctes))
	for _, item := range fromItems(src) {
		b.addRelation(item.Relation)
		for _, join := range item.Joins {
			b.addJoin(join)
		}
	}
	if src.Where != nil {
		b.setWhere(&src.Where.Condition)
	}
	if src.GroupBy != nil {
		for _, expr := range src.GroupBy.Exprs {
			b.addGroupBy(expr)
		}
	}
	if src.Having != nil {
		b.setHaving(&src.Having.Condition)
	}

	return append(steps, b.steps...)
}

func fromItems(core *parser.SelectCore) []*parser.FromItem {
	if core.From == nil {
		return nil
	}
	return core.From.Items
}

func mergeScope(outer, local []*parser.CTE) []*parser.CTE {
	if len(outer)+len(local) == 0 {
		return nil
	}
	merged := make([]*parser.CTE, 0, len(outer)+len(local))
	return append(append(merged, outer...), local...)
}

// stepBuilder accumulates the working select body one clause element at a
// time. Every emit renders a snapshot with freshly copied clause slices, so
// a step's text is final the moment it is appended and later additions
// cannot reach back into it.
type stepBuilder struct {
	scope []*parser.CTE
	core  parser.SelectCore
	steps []string
}

func newStepBuilder(scope []*parser.CTE) *stepBuilder {
	return &stepBuilder{
		scope: scope,
		core: parser.SelectCore{
			Columns: []*parser.SelectColumn{countStarColumn()},
		},
	}
}

func (b *stepBuilder) addRelation(rel parser.TableRef) {
	if b.core.From == nil {
		b.core.From = &parser.FromClause{}
	}
	b.core.From.Items = append(b.core.From.Items, &parser.FromItem{Relation: rel})
	b.emit()
}

func (b *stepBuilder) addJoin(join *parser.JoinClause) {
	items := b.core.From.Items
	last := items[len(items)-1]
	last.Joins = append(last.Joins, join)
	b.emit()
}

func (b *stepBuilder) setWhere(cond *parser.Expression) {
	b.core.Where = &parser.WhereClause{Condition: *cond}
	b.emit()
}

func (b *stepBuilder) addGroupBy(expr *parser.Expression) {
	if b.core.GroupBy == nil {
		b.core.GroupBy = &parser.GroupByClause{}
	}
	b.core.GroupBy.Exprs = append(b.core.GroupBy.Exprs, expr)
	b.emit()
}

func (b *stepBuilder) setHaving(cond *parser.Expression) {
	b.core.Having = &parser.HavingClause{Condition: *cond}
	b.emit()
}

// emit appends the serialized text of the current working body, wrapped in
// the builder's CTE scope. Trailing clauses (ORDER BY, LIMIT, FETCH) never
// appear: they cannot change a count and may not even be valid against the
// reduced projection.
func (b *stepBuilder) emit() {
	core := b.core
	if core.From != nil {
		items := make([]*parser.FromItem, len(core.From.Items))
		for i, item := range core.From.Items {
			clone := *item
			clone.Joins = append([]*parser.JoinClause(nil), item.Joins...)
			items[i] = &clone
		}
		core.From = &parser.FromClause{Items: items}
	}
	if core.GroupBy != nil {
		core.GroupBy = &parser.GroupByClause{
			Exprs: append([]*parser.Expression(nil), core.GroupBy.Exprs...),
		}
	}

	step := &parser.Query{Body: parser.QueryBody{Select: &core}}
	if len(b.scope) > 0 {
		step.With = &parser.WithClause{CTEs: b.scope}
	}
	b.steps = append(b.steps, step.String())
}

// countStarColumn builds the COUNT(*) projection used by every step query.
func countStarColumn() *parser.SelectColumn {
	star := "*"
	return &parser.SelectColumn{
		Expression: &parser.Expression{
			Or: &parser.OrExpression{
				And: &parser.AndExpression{
					Not: &parser.NotExpression{
						Comparison: &parser.ComparisonExpression{
							Addition: &parser.AdditionExpression{
								Multiplication: &parser.MultiplicationExpression{
									Unary: &parser.UnaryExpression{
										Primary: &parser.PrimaryExpression{
											Function: &parser.FunctionCall{
												Name: "COUNT",
												Args: []*parser.FunctionArg{{Star: &star}},
											},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}
