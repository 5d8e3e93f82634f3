// Package types defines the Todo entity, the materialized path codec, the
// Store interface, and standard errors for the Stride tracking system.
//
// A Todo with a nil ParentID is a root ("Goal"); every other Todo hangs
// beneath exactly one parent owned by the same user. Hierarchy is kept in a
// flat collection: each record carries a parent pointer plus a dot-delimited
// materialized path, and a 1-based order number among its siblings. The tree
// operations that maintain those fields live in pkg/tree; types only holds
// the data shapes and the pure path arithmetic.
package types
