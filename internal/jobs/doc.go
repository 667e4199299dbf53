// Package jobs runs render sessions. A manager holds at most one live job
// per project, maps encode progress to 0-80 and upload progress to 80-100,
// and supports cancellation that terminates the encoder while leaving the
// project resumable. Temp artifacts and registry entries are cleaned up on
// every exit path.
package jobs
