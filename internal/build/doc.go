// Package build provides the canonical artifact generation pipeline.
// All execution paths (CLI, watch mode, tests) route through Builder.
//
// A build scans the content tree, parses every document's frontmatter into
// metadata, constructs validated records, and runs each enabled artifact
// generator. Artifact failures are isolated: one bad record fails its
// artifact, not the build.
package build
