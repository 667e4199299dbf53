// Package generation consumes the output of the external transcription and
// narrative generation collaborators.
//
// Word-level transcripts arrive in milliseconds and are grouped into caption
// blocks here, converting to seconds at the boundary so the rest of the
// system only ever sees the tree's canonical unit. Generated payloads
// (title, caption segments, highlighted words) are merged into an existing
// tree additively: generation never silently deletes captions it did not
// address.
package generation
