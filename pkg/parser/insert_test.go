package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsertParsing(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"insert select", "INSERT INTO t1 SELECT * FROM t2;", true},
		{"insert select with clauses", "INSERT INTO t1 SELECT a, b FROM t2 WHERE a > 0 GROUP BY a, b;", true},
		{"insert values", "INSERT INTO t1 VALUES (1, 'a');", true},
		{"insert values multiple rows", "INSERT INTO t1 (a, b) VALUES (1, 'a'), (2, 'b');", true},
		{"insert with cte source", "INSERT INTO t1 WITH c AS (SELECT * FROM s) SELECT * FROM c;", true},
		{"insert union source", "INSERT INTO t1 SELECT * FROM t2 UNION SELECT * FROM t3;", true},
		{"qualified target", "INSERT INTO db.t1 SELECT * FROM t2;", true},
		{"lowercase keywords", "insert into t1 values (1);", true},

		{"missing source", "INSERT INTO t1;", false},
		{"missing target", "INSERT INTO SELECT * FROM t2;", false},
		{"unclosed column list", "INSERT INTO t1 (a, b VALUES (1, 2);", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := ParseString(tt.input)
			if !tt.valid {
				require.Error(t, err, "expected parse error for: %s", tt.input)
				return
			}

			require.NoError(t, err, "failed to parse: %s", tt.input)
			require.Len(t, file.Statements, 1)
			require.NotNil(t, file.Statements[0].Insert, "expected an insert statement")
		})
	}
}

func TestInsertStructure(t *testing.T) {
	ins := mustParseInsert(t, "INSERT INTO db.t1 (a, b) VALUES (1, 'x'), (2, 'y');")

	require.Equal(t, "db.t1", ins.Table.String())
	require.Equal(t, []string{"a", "b"}, ins.Columns)
	require.Nil(t, ins.Source.Body.Select)
	require.Len(t, ins.Source.Body.Values.Rows, 2)
}

// The source keyword after the target table starts the source query; it is
// never captured as an implicit target alias.
func TestInsertTargetTakesNoAlias(t *testing.T) {
	for _, sql := range []string{
		"INSERT INTO t1 VALUES (1);",
		"INSERT INTO t1 SELECT * FROM t2;",
		"INSERT INTO t1 WITH c AS (SELECT * FROM s) SELECT * FROM c;",
	} {
		ins := mustParseInsert(t, sql)
		require.Nil(t, ins.Table.Alias, "unexpected target alias in: %s", sql)
	}
}

func TestInsertString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"select source", "insert into t1 select * from t2;", "INSERT INTO t1 SELECT * FROM t2"},
		{"values source", "INSERT INTO t1 (a) VALUES (1), (2);", "INSERT INTO t1 (a) VALUES (1), (2)"},
		{"cte source", "INSERT INTO t1 WITH c AS (SELECT * FROM s) SELECT * FROM c;", "INSERT INTO t1 WITH c AS (SELECT * FROM s) SELECT * FROM c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, mustParseInsert(t, tt.input).String())
		})
	}
}

func mustParseInsert(t *testing.T, sql string) *InsertStatement {
	t.Helper()

	file, err := ParseString(sql)
	require.NoError(t, err, "failed to parse: %s", sql)
	require.Len(t, file.Statements, 1)
	require.NotNil(t, file.Statements[0].Insert, "expected an insert statement")
	return file.Statements[0].Insert
}
