// Package subtitles parses SRT files and aligns dialogue to scene boundaries.
//
// Cues keep their original multi-line content for window trimming and
// re-composition; normalized lines collapse whitespace for timeline
// alignment. Timestamps are converted to seconds up front so the rest of the
// pipeline never touches SRT's hour/minute/comma format.
package subtitles
