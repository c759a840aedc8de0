package parser

import "strings"

type (
	// Expression is a generic SQL expression with conventional precedence,
	// lowest first:
	//
	//  1. OR
	//  2. AND
	//  3. NOT
	//  4. comparison (=, !=, <>, <, >, <=, >=, LIKE, IN, BETWEEN, IS NULL)
	//  5. addition / subtraction
	//  6. multiplication / division / modulo
	//  7. unary +/-
	//  8. primary (literals, CASE, CAST, functions, identifiers, parentheses)
	//
	// Operand text is preserved exactly as written; operators render in
	// canonical uppercase.
	Expression struct {
		Or *OrExpression `parser:"@@"`
	}

	OrExpression struct {
		And  *AndExpression `parser:"@@"`
		Rest []*OrRest      `parser:"@@*"`
	}

	OrRest struct {
		And *AndExpression `parser:"'OR' @@"`
	}

	AndExpression struct {
		Not  *NotExpression `parser:"@@"`
		Rest []*AndRest     `parser:"@@*"`
	}

	AndRest struct {
		Not *NotExpression `parser:"'AND' @@"`
	}

	NotExpression struct {
		Not        bool                  `parser:"@'NOT'?"`
		Comparison *ComparisonExpression `parser:"@@"`
	}

	ComparisonExpression struct {
		Addition *AdditionExpression `parser:"@@"`
		Rest     *ComparisonRest     `parser:"@@?"`
		IsNull   *IsNullExpr         `parser:"@@?"`
	}

	ComparisonRest struct {
		Simple  *SimpleComparison  `parser:"@@"`
		In      *InComparison      `parser:"| @@"`
		Between *BetweenComparison `parser:"| @@"`
	}

	SimpleComparison struct {
		Op       SimpleComparisonOp  `parser:"@@"`
		Addition *AdditionExpression `parser:"@@"`
	}

	SimpleComparisonOp struct {
		Eq      bool `parser:"@'='"`
		NotEq   bool `parser:"| @'!=' | @'<>'"`
		LtEq    bool `parser:"| @'<='"`
		GtEq    bool `parser:"| @'>='"`
		Lt      bool `parser:"| @'<'"`
		Gt      bool `parser:"| @'>'"`
		Like    bool `parser:"| @'LIKE'"`
		NotLike bool `parser:"| @('NOT' 'LIKE')"`
	}

	InComparison struct {
		Not    bool     `parser:"@'NOT'? 'IN'"`
		Target InTarget `parser:"@@"`
	}

	// InTarget is either a subquery or a literal expression list. The
	// subquery alternative is first: both start with '(' and only one can
	// continue with SELECT.
	InTarget struct {
		Subquery *Subquery     `parser:"@@"`
		List     []*Expression `parser:"| '(' @@ (',' @@)* ')'"`
	}

	BetweenComparison struct {
		Not  bool               `parser:"@'NOT'? 'BETWEEN'"`
		Low  AdditionExpression `parser:"@@ 'AND'"`
		High AdditionExpression `parser:"@@"`
	}

	IsNullExpr struct {
		Not bool `parser:"'IS' @'NOT'? 'NULL'"`
	}

	AdditionExpression struct {
		Multiplication *MultiplicationExpression `parser:"@@"`
		Rest           []*AdditionRest           `parser:"@@*"`
	}

	AdditionRest struct {
		Op             string                    `parser:"@('+' | '-')"`
		Multiplication *MultiplicationExpression `parser:"@@"`
	}

	MultiplicationExpression struct {
		Unary *UnaryExpression      `parser:"@@"`
		Rest  []*MultiplicationRest `parser:"@@*"`
	}

	MultiplicationRest struct {
		Op    string           `parser:"@('*' | '/' | '%')"`
		Unary *UnaryExpression `parser:"@@"`
	}

	UnaryExpression struct {
		Op      string             `parser:"@('+' | '-')?"`
		Primary *PrimaryExpression `parser:"@@"`
	}

	// PrimaryExpression is the highest-precedence level. Order matters:
	// literals before identifiers (TRUE/FALSE/NULL are Ident tokens),
	// functions before identifiers (both start with a name), subqueries
	// before parenthesized expressions (both start with a parenthesis).
	PrimaryExpression struct {
		Literal    *Literal         `parser:"@@"`
		Case       *CaseExpression  `parser:"| @@"`
		Cast       *CastExpression  `parser:"| @@"`
		Function   *FunctionCall    `parser:"| @@"`
		Identifier *IdentifierExpr  `parser:"| @@"`
		Subquery   *Subquery        `parser:"| @@"`
		Paren      *ParenExpression `parser:"| @@"`
	}

	Literal struct {
		Str     *string `parser:"@String"`
		Number  *string `parser:"| @Number"`
		Boolean *string `parser:"| @('TRUE' | 'FALSE')"`
		Null    bool    `parser:"| @'NULL'"`
	}

	// IdentifierExpr is a column reference, optionally qualified by table
	// and database.
	IdentifierExpr struct {
		Database *string `parser:"(@(Ident | QuotedIdent) '.')?"`
		Table    *string `parser:"(@(Ident | QuotedIdent) '.')?"`
		Name     string  `parser:"@(Ident | QuotedIdent)"`
	}

	FunctionCall struct {
		Name     string         `parser:"@(Ident | QuotedIdent)"`
		Distinct bool           `parser:"'(' @'DISTINCT'?"`
		Args     []*FunctionArg `parser:"(@@ (',' @@)*)? ')'"`
		Over     *OverClause    `parser:"@@?"`
	}

	FunctionArg struct {
		Star       *string     `parser:"@'*'"`
		Expression *Expression `parser:"| @@"`
	}

	// OverClause is a trimmed window specification: partitioning and
	// ordering, no frame bounds.
	OverClause struct {
		PartitionBy []*Expression  `parser:"'OVER' '(' ('PARTITION' 'BY' @@ (',' @@)*)?"`
		OrderBy     *OrderByClause `parser:"@@? ')'"`
	}

	CaseExpression struct {
		Operand *Expression   `parser:"'CASE' ((?! 'WHEN') @@)?"`
		Whens   []*WhenClause `parser:"@@+"`
		Else    *Expression   `parser:"('ELSE' @@)? 'END'"`
	}

	WhenClause struct {
		Condition Expression `parser:"'WHEN' @@"`
		Result    Expression `parser:"'THEN' @@"`
	}

	CastExpression struct {
		Expr Expression `parser:"'CAST' '(' @@"`
		Type TypeName   `parser:"'AS' @@ ')'"`
	}

	// TypeName is a simple type, optionally parameterized: INT, VARCHAR(10),
	// NUMERIC(10, 2).
	TypeName struct {
		Name string   `parser:"@(Ident | QuotedIdent)"`
		Args []string `parser:"('(' @Number (',' @Number)* ')')?"`
	}

	// Subquery is a parenthesized query usable as a scalar or IN operand.
	Subquery struct {
		Query *Query `parser:"'(' @@ ')'"`
	}

	// ParenExpression is a parenthesized expression or tuple.
	ParenExpression struct {
		Exprs []*Expression `parser:"'(' @@ (',' @@)* ')'"`
	}
)

// String returns the canonical text of an expression.
func (e *Expression) String() string {
	if e.Or != nil {
		return e.Or.String()
	}
	return ""
}

func (o *OrExpression) String() string {
	var result strings.Builder
	result.WriteString(o.And.String())
	for _, rest := range o.Rest {
		result.WriteString(" OR " + rest.And.String())
	}
	return result.String()
}

func (a *AndExpression) String() string {
	var result strings.Builder
	result.WriteString(a.Not.String())
	for _, rest := range a.Rest {
		result.WriteString(" AND " + rest.Not.String())
	}
	return result.String()
}

func (n *NotExpression) String() string {
	if n.Not {
		return "NOT " + n.Comparison.String()
	}
	return n.Comparison.String()
}

func (c *ComparisonExpression) String() string {
	result := c.Addition.String()
	if c.Rest != nil {
		result += c.Rest.String()
	}
	if c.IsNull != nil {
		result += " IS"
		if c.IsNull.Not {
			result += " NOT"
		}
		result += " NULL"
	}
	return result
}

func (r *ComparisonRest) String() string {
	switch {
	case r.Simple != nil:
		return " " + r.Simple.Op.String() + " " + r.Simple.Addition.String()
	case r.In != nil:
		return r.In.String()
	case r.Between != nil:
		return r.Between.String()
	default:
		return ""
	}
}

func (o *SimpleComparisonOp) String() string {
	switch {
	case o.Eq:
		return "="
	case o.NotEq:
		return "!="
	case o.LtEq:
		return "<="
	case o.GtEq:
		return ">="
	case o.Lt:
		return "<"
	case o.Gt:
		return ">"
	case o.Like:
		return "LIKE"
	case o.NotLike:
		return "NOT LIKE"
	default:
		return ""
	}
}

func (i *InComparison) String() string {
	result := ""
	if i.Not {
		result = " NOT"
	}
	return result + " IN " + i.Target.String()
}

func (t *InTarget) String() string {
	if t.Subquery != nil {
		return t.Subquery.String()
	}
	exprs := make([]string, 0, len(t.List))
	for _, e := range t.List {
		exprs = append(exprs, e.String())
	}
	return "(" + strings.Join(exprs, ", ") + ")"
}

func (b *BetweenComparison) String() string {
	result := ""
	if b.Not {
		result = " NOT"
	}
	return result + " BETWEEN " + b.Low.String() + " AND " + b.High.String()
}

func (a *AdditionExpression) String() string {
	var result strings.Builder
	result.WriteString(a.Multiplication.String())
	for _, rest := range a.Rest {
		result.WriteString(" " + rest.Op + " " + rest.Multiplication.String())
	}
	return result.String()
}

func (m *MultiplicationExpression) String() string {
	var result strings.Builder
	result.WriteString(m.Unary.String())
	for _, rest := range m.Rest {
		result.WriteString(" " + rest.Op + " " + rest.Unary.String())
	}
	return result.String()
}

func (u *UnaryExpression) String() string {
	return u.Op + u.Primary.String()
}

func (p *PrimaryExpression) String() string {
	switch {
	case p.Literal != nil:
		return p.Literal.String()
	case p.Case != nil:
		return p.Case.String()
	case p.Cast != nil:
		return p.Cast.String()
	case p.Function != nil:
		return p.Function.String()
	case p.Identifier != nil:
		return p.Identifier.String()
	case p.Subquery != nil:
		return p.Subquery.String()
	case p.Paren != nil:
		return p.Paren.String()
	default:
		return ""
	}
}

func (l *Literal) String() string {
	switch {
	case l.Str != nil:
		return *l.Str
	case l.Number != nil:
		return *l.Number
	case l.Boolean != nil:
		return *l.Boolean
	case l.Null:
		return "NULL"
	default:
		return ""
	}
}

func (i *IdentifierExpr) String() string {
	result := i.Name
	if i.Table != nil {
		result = *i.Table + "." + result
	}
	if i.Database != nil {
		result = *i.Database + "." + result
	}
	return result
}

func (f *FunctionCall) String() string {
	result := f.Name + "("
	if f.Distinct {
		result += "DISTINCT "
	}
	args := make([]string, 0, len(f.Args))
	for _, arg := range f.Args {
		args = append(args, arg.String())
	}
	result += strings.Join(args, ", ") + ")"
	if f.Over != nil {
		result += f.Over.String()
	}
	return result
}

func (a *FunctionArg) String() string {
	if a.Star != nil {
		return "*"
	}
	return a.Expression.String()
}

func (o *OverClause) String() string {
	var parts []string
	if len(o.PartitionBy) > 0 {
		exprs := make([]string, 0, len(o.PartitionBy))
		for _, e := range o.PartitionBy {
			exprs = append(exprs, e.String())
		}
		parts = append(parts, "PARTITION BY "+strings.Join(exprs, ", "))
	}
	if o.OrderBy != nil {
		parts = append(parts, o.OrderBy.String())
	}
	return " OVER (" + strings.Join(parts, " ") + ")"
}

func (c *CaseExpression) String() string {
	result := "CASE"
	if c.Operand != nil {
		result += " " + c.Operand.String()
	}
	for _, when := range c.Whens {
		result += " WHEN " + when.Condition.String() + " THEN " + when.Result.String()
	}
	if c.Else != nil {
		result += " ELSE " + c.Else.String()
	}
	return result + " END"
}

func (c *CastExpression) String() string {
	return "CAST(" + c.Expr.String() + " AS " + c.Type.String() + ")"
}

func (t *TypeName) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	return t.Name + "(" + strings.Join(t.Args, ", ") + ")"
}

func (s *Subquery) String() string {
	return "(" + s.Query.String() + ")"
}

func (p *ParenExpression) String() string {
	exprs := make([]string, 0, len(p.Exprs))
	for _, e := range p.Exprs {
		exprs = append(exprs, e.String())
	}
	return "(" + strings.Join(exprs, ", ") + ")"
}
