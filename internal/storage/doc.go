// Package storage uploads rendered artifacts to object storage. The HTTP
// uploader streams the file body with byte-level progress reporting and
// returns the public URL the artifact is served from.
package storage
