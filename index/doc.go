// Package index implements an exact, brute-force Euclidean nearest-neighbor
// index over a fixed embedding matrix.
//
// The corpus is small, so every search scans all vectors. Squared L2
// distances come from vecgo's SIMD kernels. The index is built once and
// never updated.
package index
