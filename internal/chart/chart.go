// Package chart defines the fixed canonical charts of accounts the
// standardization engine maps raw CVM filings onto, one chart per
// sector profile for the income statement plus a shared cash-flow
// chart. A chart fixes the output row order, each account's
// resolution rules and isolation kind, and the policy used to build
// fourth-quarter values.
package chart

import (
	"cvmstd/internal/sector"
	"cvmstd/pkg/contracts/domain"
)

// Kind classifies how an account's cumulative series is converted to
// single-quarter values.
type Kind string

const (
	// Flow accounts are isolated by differencing cumulative values.
	Flow Kind = "flow"
	// ClosingStock accounts are point-in-time balances, passed
	// through unchanged.
	ClosingStock Kind = "closing-stock"
	// OpeningStock accounts report the paired closing account's
	// balance with a one-quarter lag.
	OpeningStock Kind = "opening-stock"
	// Scalar accounts, per-share figures, are resolved per period and
	// never differenced.
	Scalar Kind = "scalar"
)

// Q4Policy selects how the fourth quarter of a flow account is built.
// Each chart declares its own policy; nothing in the engine hard-codes
// one globally.
type Q4Policy string

const (
	// Q4AnnualMinusSum builds Q4 as the annual cumulative minus the
	// sum of the isolated first three quarters.
	Q4AnnualMinusSum Q4Policy = "annual-minus-sum"
	// Q4Differencing builds Q4 like every other quarter, as the Q4
	// cumulative minus the Q3 cumulative.
	Q4Differencing Q4Policy = "differencing"
)

// HybridSpec resolves sector-specific accounts that have no stable
// code across filers. Keywords must be given pre-normalized
// (lowercase, no diacritics); they are matched against normalized row
// descriptions by substring containment.
type HybridSpec struct {
	// Code is tried first as an exact match, without rollup.
	Code string
	// Include and Exclude drive the keyword search: rows whose
	// normalized description contains any include keyword and none of
	// the exclude keywords are summed.
	Include []string
	Exclude []string
	// Fallback is a composite expression tried as last resort.
	Fallback Expr
}

// ScalarSpec resolves non-differenced per-share accounts.
type ScalarSpec struct {
	// Priority lists source codes in increasing specificity; codes
	// resolving to zero or missing are skipped.
	Priority []string
	// Branch bounds the largest-magnitude fallback scan when every
	// prioritized code is zero or missing.
	Branch string
}

// SyntheticSpec captures a combined depreciation and amortization
// figure from row descriptions under one branch of the cash-flow
// statement.
type SyntheticSpec struct {
	Branch string
}

// Account is one canonical output row together with the rules that
// resolve and isolate it. Exactly one of Expr, Hybrid, Scalar and
// Synthetic is set.
type Account struct {
	// Slug is the canonical_code column value.
	Slug string
	// Label is the canonical_label column value.
	Label string
	Kind  Kind

	Expr      Expr
	Hybrid    *HybridSpec
	Scalar    *ScalarSpec
	Synthetic *SyntheticSpec

	// DerivedFrom lists source account slugs for the one-hop derived
	// filler. The fill only happens when the account is still missing
	// after isolation and every source is present.
	DerivedFrom []string
	// PairedClosing names the closing-stock account an opening-stock
	// account lags behind.
	PairedClosing string
}

// Chart is one fixed, ordered canonical chart of accounts. Charts are
// built once at package load and treated as read-only afterwards.
type Chart struct {
	Name     string
	Q4Policy Q4Policy
	Accounts []Account
}

// Find returns the account with the given slug.
func (c *Chart) Find(slug string) (*Account, bool) {
	for i := range c.Accounts {
		if c.Accounts[i].Slug == slug {
			return &c.Accounts[i], true
		}
	}
	return nil, false
}

// Slugs returns the account slugs in chart order.
func (c *Chart) Slugs() []string {
	slugs := make([]string, len(c.Accounts))
	for i, account := range c.Accounts {
		slugs[i] = account.Slug
	}
	return slugs
}

// ForProfile returns the canonical chart for a statement kind under a
// sector profile. The cash-flow chart is shared by every profile; the
// income chart depends on the sector.
func ForProfile(profile sector.Profile, kind domain.StatementKind) *Chart {
	if kind == domain.StatementCashFlow {
		return cashFlow
	}
	switch profile {
	case sector.Insurance:
		return incomeInsurance
	case sector.Banking:
		return incomeBanking
	default:
		return incomeStandard
	}
}
