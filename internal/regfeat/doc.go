// Package regfeat computes morphological features of the labeled regions of a
// label map.
//
// An Analysis holds the label map, the ordered set of labels to measure, and
// the features requested by the caller. Features are identified by an ID and
// built on demand from a Registry of factories. Each feature declares the
// features it depends on; the Analysis resolves these dependencies depth-first
// and memoizes every result, so that a feature shared by several others (for
// example the binary configuration histogram used by both perimeter and Euler
// number) is computed once.
//
// # Feature Kinds
//
// Every feature implements Feature. Features that contribute to the output
// table additionally implement one of:
//
//   - Tabular: produces one or more named columns per region
//   - Scalar: produces one real value per region, shown as a single column
//
// Features implementing neither (such as the configuration histogram) are
// intermediate results consumed by other features.
//
// # Results
//
// Computed values are stored as a Result, a closed set of variants: Counts,
// Histograms, Scalars and Fragment. Consumers read them with Get, which
// reports a TypeMismatchError when the stored variant differs from the
// expected one.
//
// # Output Tables
//
// CreateTables computes every registered feature and assembles one row per
// region, in label set order. The UnitDisplay policy decides how unit names
// are shown: not at all, appended to column names, as sibling columns, or in
// a separate table.
//
// # Concurrency
//
// An Analysis is not safe for concurrent use. Listener callbacks run
// synchronously on the goroutine that called Process, ComputeAll or
// CreateTables.
package regfeat
