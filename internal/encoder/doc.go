// Package encoder supervises the external ffmpeg process for a render. It
// owns the subprocess boundary: launching with a cancellable context,
// streaming progress out of ffmpeg's stderr, and turning a non-zero exit
// into a diagnosable error.
package encoder
