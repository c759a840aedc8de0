package analyzer_test

import (
	"testing"

	"github.com/rowsleuth/rowsleuth/pkg/analyzer"
	"github.com/rowsleuth/rowsleuth/pkg/parser"
	"github.com/stretchr/testify/require"
)

func TestDecompose(t *testing.T) {
	tests := []struct {
		name  string
		input string
		steps []string
	}{
		{
			"single table",
			"SELECT * FROM t1;",
			[]string{"SELECT COUNT(*) FROM t1"},
		},
		{
			"one step per join",
			"SELECT * FROM t1 JOIN t2 ON true;",
			[]string{
				"SELECT COUNT(*) FROM t1",
				"SELECT COUNT(*) FROM t1 JOIN t2 ON true",
			},
		},
		{
			"join chain in written order",
			"SELECT * FROM t1 JOIN t2 ON true LEFT JOIN t3 ON true;",
			[]string{
				"SELECT COUNT(*) FROM t1",
				"SELECT COUNT(*) FROM t1 JOIN t2 ON true",
				"SELECT COUNT(*) FROM t1 JOIN t2 ON true LEFT JOIN t3 ON true",
			},
		},
		{
			"one step per from item",
			"SELECT * FROM t1, t2;",
			[]string{
				"SELECT COUNT(*) FROM t1",
				"SELECT COUNT(*) FROM t1, t2",
			},
		},
		{
			"joins bind to their from item",
			"SELECT * FROM t1 JOIN t2 ON true, t3;",
			[]string{
				"SELECT COUNT(*) FROM t1",
				"SELECT COUNT(*) FROM t1 JOIN t2 ON true",
				"SELECT COUNT(*) FROM t1 JOIN t2 ON true, t3",
			},
		},
		{
			"where after relations",
			"SELECT * FROM t1 WHERE x = 1;",
			[]string{
				"SELECT COUNT(*) FROM t1",
				"SELECT COUNT(*) FROM t1 WHERE x = 1",
			},
		},
		{
			"one step per group by key",
			"SELECT x, y FROM t1 GROUP BY x, y;",
			[]string{
				"SELECT COUNT(*) FROM t1",
				"SELECT COUNT(*) FROM t1 GROUP BY x",
				"SELECT COUNT(*) FROM t1 GROUP BY x, y",
			},
		},
		{
			"having last",
			"SELECT x FROM t1 WHERE y > 0 GROUP BY x HAVING COUNT(*) > 2;",
			[]string{
				"SELECT COUNT(*) FROM t1",
				"SELECT COUNT(*) FROM t1 WHERE y > 0",
				"SELECT COUNT(*) FROM t1 WHERE y > 0 GROUP BY x",
				"SELECT COUNT(*) FROM t1 WHERE y > 0 GROUP BY x HAVING COUNT(*) > 2",
			},
		},
		{
			"full clause ladder",
			"SELECT u.name, COUNT(o.id) AS order_count FROM users AS u LEFT JOIN orders AS o ON u.id = o.user_id WHERE u.active = 1 GROUP BY u.name HAVING COUNT(o.id) > 5 ORDER BY order_count DESC LIMIT 10;",
			[]string{
				"SELECT COUNT(*) FROM users AS u",
				"SELECT COUNT(*) FROM users AS u LEFT JOIN orders AS o ON u.id = o.user_id",
				"SELECT COUNT(*) FROM users AS u LEFT JOIN orders AS o ON u.id = o.user_id WHERE u.active = 1",
				"SELECT COUNT(*) FROM users AS u LEFT JOIN orders AS o ON u.id = o.user_id WHERE u.active = 1 GROUP BY u.name",
				"SELECT COUNT(*) FROM users AS u LEFT JOIN orders AS o ON u.id = o.user_id WHERE u.active = 1 GROUP BY u.name HAVING COUNT(o.id) > 5",
			},
		},
		{
			"implicit aliases render canonical",
			"SELECT u.* FROM users u JOIN orders o ON u.id = o.user_id;",
			[]string{
				"SELECT COUNT(*) FROM users AS u",
				"SELECT COUNT(*) FROM users AS u JOIN orders AS o ON u.id = o.user_id",
			},
		},
		{
			"subquery relation kept whole",
			"SELECT * FROM (SELECT id FROM users) AS u JOIN t2 ON true;",
			[]string{
				"SELECT COUNT(*) FROM (SELECT id FROM users) AS u",
				"SELECT COUNT(*) FROM (SELECT id FROM users) AS u JOIN t2 ON true",
			},
		},
		{
			"where without from",
			"SELECT 1 WHERE true;",
			[]string{"SELECT COUNT(*) WHERE true"},
		},
		{
			"bare select has no steps",
			"SELECT 1;",
			nil,
		},
		{
			"set operation has no steps",
			"SELECT * FROM t1 UNION SELECT * FROM t2;",
			nil,
		},
		{
			"values body has no steps",
			"VALUES (1), (2);",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.steps, analyzer.Decompose(parseQuery(t, tt.input)))
		})
	}
}

func TestDecomposeCTEs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		steps []string
	}{
		{
			"cte steps come first",
			"WITH a AS (SELECT * FROM t1 JOIN t2 ON true) SELECT * FROM a;",
			[]string{
				"SELECT COUNT(*) FROM t1",
				"SELECT COUNT(*) FROM t1 JOIN t2 ON true",
				"WITH a AS (SELECT * FROM t1 JOIN t2 ON true) SELECT COUNT(*) FROM a",
			},
		},
		{
			"each cte sees only its predecessors",
			"WITH a AS (SELECT * FROM t1), b AS (SELECT * FROM a WHERE x = 1) SELECT * FROM b;",
			[]string{
				"SELECT COUNT(*) FROM t1",
				"WITH a AS (SELECT * FROM t1) SELECT COUNT(*) FROM a",
				"WITH a AS (SELECT * FROM t1) SELECT COUNT(*) FROM a WHERE x = 1",
				"WITH a AS (SELECT * FROM t1), b AS (SELECT * FROM a WHERE x = 1) SELECT COUNT(*) FROM b",
			},
		},
		{
			"nested with scopes compose",
			"WITH a AS (WITH b AS (SELECT * FROM t1) SELECT * FROM b) SELECT * FROM a;",
			[]string{
				"SELECT COUNT(*) FROM t1",
				"WITH b AS (SELECT * FROM t1) SELECT COUNT(*) FROM b",
				"WITH a AS (WITH b AS (SELECT * FROM t1) SELECT * FROM b) SELECT COUNT(*) FROM a",
			},
		},
		{
			"set operation body still decomposes its ctes",
			"WITH a AS (SELECT * FROM t1) SELECT * FROM a UNION SELECT * FROM t2;",
			[]string{
				"SELECT COUNT(*) FROM t1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.steps, analyzer.Decompose(parseQuery(t, tt.input)))
		})
	}
}

// Decompose never mutates its input: a second call over the same tree must
// produce the same steps, and the query's own text must be unchanged.
func TestDecomposeIsPure(t *testing.T) {
	q := parseQuery(t, "WITH a AS (SELECT * FROM t1) SELECT * FROM a JOIN t2 ON true WHERE x = 1 GROUP BY x, y;")
	before := q.String()

	first := analyzer.Decompose(q)
	second := analyzer.Decompose(q)

	require.Equal(t, first, second)
	require.Equal(t, before, q.String())
}

// Every emitted step must itself be parseable, so it can be pasted into a
// database shell verbatim.
func TestDecomposeStepsParse(t *testing.T) {
	q := parseQuery(t, "WITH a AS (SELECT * FROM t1), b AS (SELECT * FROM a) SELECT * FROM b JOIN t2 ON true, t3 WHERE x = 1 GROUP BY x HAVING COUNT(*) > 1;")

	for _, step := range analyzer.Decompose(q) {
		_, err := parser.ParseString(step + ";")
		require.NoError(t, err, "step does not parse: %s", step)
	}
}

func parseQuery(t *testing.T, sql string) *parser.Query {
	t.Helper()

	file, err := parser.ParseString(sql)
	require.NoError(t, err, "failed to parse: %s", sql)
	require.Len(t, file.Statements, 1)
	require.NotNil(t, file.Statements[0].Query, "expected a query statement")
	return &file.Statements[0].Query.Query
}
