// Package discovery lists the MOV sources of a run.
//
// Discover reads the input directory exactly once and hands back a lazy,
// single-use sequence of matching paths. Subdirectories are never entered.
package discovery
