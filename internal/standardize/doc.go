// Package standardize implements the financial-statement
// standardization engine. It maps heterogeneous, hierarchically coded
// raw CVM accounts onto the fixed canonical charts, isolates true
// single-quarter figures out of cumulative filings, and fills a small
// set of derivable accounts.
//
// # Architecture
//
// The engine is a pipeline of pure transforms over immutable inputs:
//
// 1. Resolver: evaluates account mapping expressions against one period's rows
// 2. Hybrid resolver: sector-specific keyword resolution over row descriptions
// 3. Period matrix builder: canonical-account × period matrix of cumulative values
// 4. Quarter isolation: cumulative to single-quarter conversion per account kind
// 5. Derived filler: one-hop arithmetic fill for accounts still missing
// 6. Synthetic extractor: combined depreciation and amortization capture
//
// # Usage
//
// One run standardizes one (ticker, statement kind) pair:
//
//	engine := standardize.New(logger)
//	table, err := engine.Run(ctx, standardize.Input{
//	    Ticker:    "BBSE3",
//	    Kind:      domain.StatementIncome,
//	    Sectors:   sectors,
//	    Quarterly: itr,
//	    Annual:    dfp,
//	})
//
// # Resource model
//
// No network or file I/O happens inside the engine: raw tables are
// passed in memory and the output table is returned, not written.
// Runs share no mutable state, so an orchestrator may fan them out
// across goroutines freely.
//
// # Error Handling
//
// Schema and unit failures abort the whole run before any row is
// processed and carry the errors.AppError taxonomy. Unresolvable
// values are not errors: they flow through as explicit missing
// markers and surface as blank output cells.
package standardize
