// Package handoff implements the flat-text artifact that carries properties
// from one build stage to the next.
//
// An artifact is two blocks of lines concatenated without a separator: first
// the image targets, one name per line, then the shared variables as
// "name=value" lines. The reader does not need block boundaries because the
// classification is syntactic: a line containing "=" is a variable,
// anything else is a target. An artifact with nothing to say is a zero-byte
// file, which downstream tooling treats the same as an absent one.
//
// Writing is deferred: configure-phase calls only register (image, path)
// pairs with a Generator, and Flush serializes the registry after the whole
// build description has been evaluated. That way a stage may keep publishing
// properties after the generate call that mentions them.
package handoff
