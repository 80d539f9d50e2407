// Package export renders WorkFlowy trees as Markdown, JSON and YAML and
// writes them to disk.
//
// # Roots
//
// Exports operate on an ordered forest of root nodes taken from InitData:
//
//	export.CollectAuxRoots(data) // shared trees only (default)
//	export.CollectAllRoots(data) // main tree children, then shared trees
//
// Shared roots are shallow copies with their top-level children attached;
// the loaded payload is never modified.
//
// # Markdown
//
// Each node becomes one bullet indented two spaces per level. Completed
// nodes use a checked task bullet and notes follow as a block quote:
//
//	- Projects
//	  - [x] Ship v1
//	    > released on friday
//	  - Plan v2
//
// BuildSectionMarkdown renders a single root as its own document with the
// root name as a heading.
//
// # Files
//
// WriteOutput writes workflowy.json and then workflowy.md into a directory.
// WriteSections writes one <name>.md per root with filenames derived from
// markup.Filename.
package export
