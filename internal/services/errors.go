package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel markers for the failure taxonomy. Callers classify errors with
// errors.Is against these rather than string matching.
var (
	// ErrValidation marks a rejected edit instruction. Always local to one
	// instruction; never aborts the rest of a batch.
	ErrValidation = errors.New("validation error")
	// ErrMerge marks a malformed generated payload. The tree is left untouched.
	ErrMerge = errors.New("merge error")
	// ErrCompile marks a tree that fails the structural preconditions for
	// rendering. Raised before any encoder process starts.
	ErrCompile = errors.New("compile error")
	// ErrEncode marks a non-zero encoder exit.
	ErrEncode = errors.New("encode error")
	// ErrUpload marks an unreachable or rejecting upload destination.
	ErrUpload = errors.New("upload error")

	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrConfiguration
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
