// Package markers manages the cortex section inside a shared instructions file.
//
// A managed section is delimited by a start comment carrying the installed
// version and date, and a fixed end comment:
//
//	<!-- CORTEX:START version="1.2.0" installed="2025-01-31" -->
//	...template body...
//	<!-- CORTEX:END -->
//
// Everything outside the delimiters belongs to the user and is never
// rewritten, apart from trailing whitespace normalization on removal. All
// functions operate on strings; reading and writing files is left to callers.
//
// A document may hold at most one section. [Validate] reports duplicate,
// unpaired or misordered delimiters as [ErrCorruptSection], and the mutating
// functions refuse to touch such documents.
package markers
