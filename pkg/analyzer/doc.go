// Package analyzer contains the row-count analysis core: the clause
// decomposition engine, the insert payload analyzer, and the aggregator
// that runs both over a parsed SQL source.
//
// Decomposition turns one SELECT into a sequence of COUNT(*) queries that
// add one clause element at a time: each table, then each join, then the
// filter, then each grouping key, then the having filter. Executing the sequence
// against a live database bisects the query's construction and pinpoints
// the addition that changed the row count. Inserts instead get two count
// queries: the current size of the target table and the size of the
// incoming payload.
//
//	analysis, err := analyzer.Analyze("SELECT * FROM t1 JOIN t2 ON true;")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	analysis.Render(os.Stdout)
//
// Every analysis is a pure function of the statement's own syntax tree;
// nothing is executed against a database and no state is shared across
// statements.
package analyzer
