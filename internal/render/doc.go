// Package render compiles an edit configuration tree into the artifacts an
// ffmpeg encode needs: an ASS subtitle track, a video filter chain, and the
// codec parameters for the requested resolution and quality. Compilation is
// pure; nothing here touches the filesystem or spawns a process.
package render
