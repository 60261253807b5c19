// Package chunking groups an ordered scene list into bounded-duration chunks.
//
// Chunk boundaries always land on a scene end; no scene is ever split. The
// builder applies the Nearest Scene Boundary Rule: among the candidate scene
// ends reachable from a chunk's start it prefers the one closest to the
// configured target duration, falling back deterministically when no boundary
// lands inside the tolerance band. Downstream rendering relies on the exact
// tie-break order, so identical inputs must always produce identical chunks.
package chunking
