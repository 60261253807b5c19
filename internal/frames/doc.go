// Package frames computes per-scene frame sample positions and writes the
// frame plan artifact that downstream extractors consume.
package frames
