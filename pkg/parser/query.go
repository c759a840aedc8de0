package parser

import "strings"

type (
	// Query represents a full SELECT-family query: an optional WITH clause,
	// a body (plain select or literal VALUES rows), optional set-operation
	// tails, and trailing clauses that never affect row-count analysis.
	Query struct {
		With    *WithClause    `parser:"@@?"`
		Body    QueryBody      `parser:"@@"`
		SetOps  []*SetOpClause `parser:"@@*"`
		OrderBy *OrderByClause `parser:"@@?"`
		Limit   *LimitClause   `parser:"@@?"`
		Fetch   *FetchClause   `parser:"@@?"`
	}

	// WithClause holds the ordered CTE list of a query.
	WithClause struct {
		CTEs []*CTE `parser:"'WITH' @@ (',' @@)*"`
	}

	// CTE is a single named common table expression. Non-recursive semantics:
	// the name is visible to later CTEs in the same clause and to the main
	// body, never to the CTE's own query.
	CTE struct {
		Name  string `parser:"@(Ident | QuotedIdent) 'AS'"`
		Query *Query `parser:"'(' @@ ')'"`
	}

	// QueryBody is the closed set of query body kinds.
	QueryBody struct {
		Select *SelectCore   `parser:"@@"`
		Values *ValuesClause `parser:"| @@"`
	}

	// SetOpClause is one UNION/INTERSECT/EXCEPT tail. A query carrying any of
	// these is a set operation and is not a decomposition target.
	SetOpClause struct {
		Op   string    `parser:"@('UNION' | 'INTERSECT' | 'EXCEPT')"`
		All  bool      `parser:"@'ALL'?"`
		Body QueryBody `parser:"@@"`
	}

	// ValuesClause is a literal row list.
	ValuesClause struct {
		Rows []*ValuesRow `parser:"'VALUES' @@ (',' @@)*"`
	}

	ValuesRow struct {
		Exprs []*Expression `parser:"'(' @@ (',' @@)* ')'"`
	}

	// SelectCore is the clause structure of a plain SELECT: projection,
	// from-items, filter, grouping, and having.
	SelectCore struct {
		Distinct bool            `parser:"'SELECT' @'DISTINCT'?"`
		Columns  []*SelectColumn `parser:"@@ (',' @@)*"`
		From     *FromClause     `parser:"@@?"`
		Where    *WhereClause    `parser:"@@?"`
		GroupBy  *GroupByClause  `parser:"@@?"`
		Having   *HavingClause   `parser:"@@?"`
	}

	// SelectColumn is one projection entry: a bare star, a qualified star
	// (t.*), or an expression with an optional alias.
	SelectColumn struct {
		Star       *string     `parser:"@'*'"`
		TableStar  *string     `parser:"| @(Ident | QuotedIdent) '.' '*'"`
		Expression *Expression `parser:"| @@"`
		Alias      *string     `parser:"('AS' @(Ident | QuotedIdent))?"`
	}

	// FromClause holds the ordered comma-separated from-items.
	FromClause struct {
		Items []*FromItem `parser:"'FROM' @@ (',' @@)*"`
	}

	// FromItem is a base relation plus its ordered list of joins.
	FromItem struct {
		Relation TableRef      `parser:"@@"`
		Joins    []*JoinClause `parser:"@@*"`
	}

	// TableRef is a named table or a parenthesized subquery.
	TableRef struct {
		Subquery *SubqueryRelation `parser:"@@"`
		Table    *TableName        `parser:"| @@"`
	}

	// TableName is a possibly database-qualified table identifier with an
	// optional alias. The alias may be explicit (users AS u) or implicit
	// (users u); an implicit alias must not be one of the keywords that can
	// follow a relation, so clause boundaries stay unambiguous. Canonical
	// text always renders the AS form.
	TableName struct {
		Database *string `parser:"(@(Ident | QuotedIdent) '.')?"`
		Name     string  `parser:"@(Ident | QuotedIdent)"`
		Alias    *string `parser:"('AS' @(Ident | QuotedIdent) | (?! 'WHERE' | 'GROUP' | 'HAVING' | 'ORDER' | 'LIMIT' | 'OFFSET' | 'FETCH' | 'JOIN' | 'INNER' | 'LEFT' | 'RIGHT' | 'FULL' | 'CROSS' | 'OUTER' | 'ON' | 'USING' | 'UNION' | 'INTERSECT' | 'EXCEPT' | 'SELECT' | 'VALUES' | 'WITH') @(Ident | QuotedIdent))?"`
	}

	SubqueryRelation struct {
		Query *Query  `parser:"'(' @@ ')'"`
		Alias *string `parser:"('AS' @(Ident | QuotedIdent) | (?! 'WHERE' | 'GROUP' | 'HAVING' | 'ORDER' | 'LIMIT' | 'OFFSET' | 'FETCH' | 'JOIN' | 'INNER' | 'LEFT' | 'RIGHT' | 'FULL' | 'CROSS' | 'OUTER' | 'ON' | 'USING' | 'UNION' | 'INTERSECT' | 'EXCEPT' | 'SELECT' | 'VALUES' | 'WITH') @(Ident | QuotedIdent))?"`
	}

	// JoinClause is one join attached to a from-item.
	JoinClause struct {
		Type      *string        `parser:"@('INNER' | 'LEFT' | 'RIGHT' | 'FULL' | 'CROSS')?"`
		Outer     bool           `parser:"@'OUTER'? 'JOIN'"`
		Relation  TableRef       `parser:"@@"`
		Condition *JoinCondition `parser:"@@?"`
	}

	JoinCondition struct {
		On    *Expression `parser:"'ON' @@"`
		Using []string    `parser:"| 'USING' '(' @(Ident | QuotedIdent) (',' @(Ident | QuotedIdent))* ')'"`
	}

	WhereClause struct {
		Condition Expression `parser:"'WHERE' @@"`
	}

	GroupByClause struct {
		Exprs []*Expression `parser:"'GROUP' 'BY' @@ (',' @@)*"`
	}

	HavingClause struct {
		Condition Expression `parser:"'HAVING' @@"`
	}

	OrderByClause struct {
		Columns []*OrderByColumn `parser:"'ORDER' 'BY' @@ (',' @@)*"`
	}

	OrderByColumn struct {
		Expression Expression `parser:"@@"`
		Direction  *string    `parser:"@('ASC' | 'DESC')?"`
		Nulls      *string    `parser:"('NULLS' @('FIRST' | 'LAST'))?"`
	}

	LimitClause struct {
		Count  Expression    `parser:"'LIMIT' @@"`
		Offset *OffsetClause `parser:"@@?"`
	}

	OffsetClause struct {
		Value Expression `parser:"'OFFSET' @@"`
	}

	FetchClause struct {
		First string     `parser:"'FETCH' @('FIRST' | 'NEXT')"`
		Count *Expression `parser:"@@?"`
		Rows  string     `parser:"@('ROW' | 'ROWS') 'ONLY'"`
	}
)

// CTEs returns the query's CTE list, empty when there is no WITH clause.
func (q *Query) CTEs() []*CTE {
	if q.With == nil {
		return nil
	}
	return q.With.CTEs
}

// IsSetOperation reports whether the query has UNION/INTERSECT/EXCEPT tails.
func (q *Query) IsSetOperation() bool {
	return len(q.SetOps) > 0
}

// String returns the canonical single-line text of the query.
func (q *Query) String() string {
	var parts []string
	if q.With != nil {
		parts = append(parts, q.With.String())
	}
	parts = append(parts, q.Body.String())
	for _, op := range q.SetOps {
		parts = append(parts, op.String())
	}
	if q.OrderBy != nil {
		parts = append(parts, q.OrderBy.String())
	}
	if q.Limit != nil {
		parts = append(parts, q.Limit.String())
	}
	if q.Fetch != nil {
		parts = append(parts, q.Fetch.String())
	}
	return strings.Join(parts, " ")
}

func (w *WithClause) String() string {
	ctes := make([]string, 0, len(w.CTEs))
	for _, cte := range w.CTEs {
		ctes = append(ctes, cte.Name+" AS ("+cte.Query.String()+")")
	}
	return "WITH " + strings.Join(ctes, ", ")
}

func (b *QueryBody) String() string {
	if b.Select != nil {
		return b.Select.String()
	}
	if b.Values != nil {
		return b.Values.String()
	}
	return ""
}

func (s *SetOpClause) String() string {
	result := strings.ToUpper(s.Op)
	if s.All {
		result += " ALL"
	}
	return result + " " + s.Body.String()
}

func (v *ValuesClause) String() string {
	rows := make([]string, 0, len(v.Rows))
	for _, row := range v.Rows {
		rows = append(rows, row.String())
	}
	return "VALUES " + strings.Join(rows, ", ")
}

func (r *ValuesRow) String() string {
	exprs := make([]string, 0, len(r.Exprs))
	for _, e := range r.Exprs {
		exprs = append(exprs, e.String())
	}
	return "(" + strings.Join(exprs, ", ") + ")"
}

func (s *SelectCore) String() string {
	result := "SELECT"
	if s.Distinct {
		result += " DISTINCT"
	}

	cols := make([]string, 0, len(s.Columns))
	for _, col := range s.Columns {
		cols = append(cols, col.String())
	}
	result += " " + strings.Join(cols, ", ")

	if s.From != nil {
		result += " " + s.From.String()
	}
	if s.Where != nil {
		result += " WHERE " + s.Where.Condition.String()
	}
	if s.GroupBy != nil {
		exprs := make([]string, 0, len(s.GroupBy.Exprs))
		for _, e := range s.GroupBy.Exprs {
			exprs = append(exprs, e.String())
		}
		result += " GROUP BY " + strings.Join(exprs, ", ")
	}
	if s.Having != nil {
		result += " HAVING " + s.Having.Condition.String()
	}
	return result
}

func (c *SelectColumn) String() string {
	if c.Star != nil {
		return "*"
	}
	if c.TableStar != nil {
		return *c.TableStar + ".*"
	}
	result := c.Expression.String()
	if c.Alias != nil {
		result += " AS " + *c.Alias
	}
	return result
}

func (f *FromClause) String() string {
	items := make([]string, 0, len(f.Items))
	for _, item := range f.Items {
		items = append(items, item.String())
	}
	return "FROM " + strings.Join(items, ", ")
}

func (f *FromItem) String() string {
	result := f.Relation.String()
	for _, join := range f.Joins {
		result += " " + join.String()
	}
	return result
}

func (t *TableRef) String() string {
	if t.Subquery != nil {
		return t.Subquery.String()
	}
	if t.Table != nil {
		return t.Table.String()
	}
	return ""
}

func (t *TableName) String() string {
	result := t.Name
	if t.Database != nil {
		result = *t.Database + "." + t.Name
	}
	if t.Alias != nil {
		result += " AS " + *t.Alias
	}
	return result
}

func (s *SubqueryRelation) String() string {
	result := "(" + s.Query.String() + ")"
	if s.Alias != nil {
		result += " AS " + *s.Alias
	}
	return result
}

func (j *JoinClause) String() string {
	result := ""
	if j.Type != nil {
		result = strings.ToUpper(*j.Type) + " "
	}
	if j.Outer {
		result += "OUTER "
	}
	result += "JOIN " + j.Relation.String()
	if j.Condition != nil {
		result += " " + j.Condition.String()
	}
	return result
}

func (j *JoinCondition) String() string {
	if j.On != nil {
		return "ON " + j.On.String()
	}
	if len(j.Using) > 0 {
		return "USING (" + strings.Join(j.Using, ", ") + ")"
	}
	return ""
}

func (o *OrderByClause) String() string {
	cols := make([]string, 0, len(o.Columns))
	for _, col := range o.Columns {
		cols = append(cols, col.String())
	}
	return "ORDER BY " + strings.Join(cols, ", ")
}

func (o *OrderByColumn) String() string {
	result := o.Expression.String()
	if o.Direction != nil {
		result += " " + strings.ToUpper(*o.Direction)
	}
	if o.Nulls != nil {
		result += " NULLS " + strings.ToUpper(*o.Nulls)
	}
	return result
}

func (l *LimitClause) String() string {
	result := "LIMIT " + l.Count.String()
	if l.Offset != nil {
		result += " OFFSET " + l.Offset.Value.String()
	}
	return result
}

func (f *FetchClause) String() string {
	result := "FETCH " + strings.ToUpper(f.First)
	if f.Count != nil {
		result += " " + f.Count.String()
	}
	return result + " " + strings.ToUpper(f.Rows) + " ONLY"
}
