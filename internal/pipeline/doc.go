// Package pipeline implements the merge/filter/dedup stages that turn raw
// contract-enrollment rows into the canonical active list.
//
// The stages run strictly in order, each a pure transformation producing a
// new view of the data:
//
// 1. Normalizer: derives the RootID dedup key from the raw 340B ID and
// coerces textual dates, treating blanks and unparsable text as null.
//
// 2. Filter: keeps rows whose RootID carries an allowed prefix and, unless
// disabled, rows whose contract is still active against the run date.
//
// 3. Deduplicator: collapses rows sharing a RootID to one survivor, by
// latest BeginDate or load order depending on policy.
//
// 4. Projector: renders the survivors against the curated or all-columns
// output column set.
//
// Every dropped row is attributable to exactly one stage and counted in the
// RunSummary, so the output row count always reconciles against the input.
package pipeline
