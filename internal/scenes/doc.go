// Package scenes defines the scene interval model, the scene-list codec, and
// the micro-scene merge engine.
//
// A scene is a half-open interval on a single episode's timeline and the
// atomic unit of all downstream grouping: chunking, subtitle alignment, and
// frame planning never split one. The merge engine collapses scenes shorter
// than a configured floor into their predecessor, bounded by a maximum merge
// chain so a run of micro-scenes cannot glue into one arbitrarily long scene.
package scenes
