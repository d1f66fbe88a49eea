// Package compose turns retrieval results into reply text.
//
// Composition is deterministic: the same result always renders the same
// string. Sections appear in a fixed kind order regardless of which record
// was closest to the query.
package compose
