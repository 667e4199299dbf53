// Package editconfig defines the edit configuration tree: the persistent
// description of a video's captions, styling, animation and export settings.
//
// The tree is a plain value. Components that change it (the mutator, the
// merger) work on deep copies so a half-applied batch can be abandoned
// without corrupting the original. Once a tree is handed to the render
// compiler it is treated as an immutable snapshot.
//
// All timestamps inside the tree are seconds. Producers that work in
// milliseconds (word-level transcripts) convert at the boundary before
// anything is stored here.
package editconfig
