package encoder

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"clipforge/internal/render"
	"clipforge/internal/services"
)

var commandContext = exec.CommandContext

// stderrTailLines bounds the diagnostic kept from a failed encode.
const stderrTailLines = 20

var timePattern = regexp.MustCompile(`time=(\d+):(\d+):(\d+(?:\.\d+)?)`)

// ProgressUpdate reports how far an encode has advanced through the source.
type ProgressUpdate struct {
	// Seconds of media time encoded so far.
	Seconds float64
	// Percent of the total duration, 0 to 100.
	Percent float64
}

// Client defines encoding behaviour.
type Client interface {
	Encode(ctx context.Context, spec *render.Spec, subtitlePath, outputPath string, progress func(ProgressUpdate)) error
}

// Option configures the ffmpeg client.
type Option func(*FFmpeg)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(f *FFmpeg) {
		if binary != "" {
			f.binary = binary
		}
	}
}

// FFmpeg runs renders through the ffmpeg command line.
type FFmpeg struct {
	binary string
}

// NewFFmpeg constructs an ffmpeg client using defaults.
func NewFFmpeg(opts ...Option) *FFmpeg {
	f := &FFmpeg{binary: "ffmpeg"}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func encodeErr(message string, err error) error {
	return services.Wrap(services.ErrEncode, "encoder", "ffmpeg encode", message, err)
}

// Encode runs the compiled spec to completion, writing the result to
// outputPath. Progress is parsed from ffmpeg's stderr time= reports and
// scaled against the spec duration. Cancelling the context kills the process.
func (f *FFmpeg) Encode(ctx context.Context, spec *render.Spec, subtitlePath, outputPath string, progress func(ProgressUpdate)) error {
	if spec == nil {
		return encodeErr("nil render spec", nil)
	}
	if strings.TrimSpace(outputPath) == "" {
		return encodeErr("output path required", nil)
	}

	cmd := commandContext(ctx, f.binary, spec.Args(subtitlePath, outputPath)...) //nolint:gosec
	cmd.Stdout = io.Discard
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return encodeErr("stderr pipe", err)
	}
	if err := cmd.Start(); err != nil {
		return encodeErr("start ffmpeg", err)
	}

	var tail []string
	group, _ := errgroup.WithContext(ctx)
	group.Go(func() error {
		scanner := bufio.NewScanner(stderr)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			tail = append(tail, line)
			if len(tail) > stderrTailLines {
				tail = tail[1:]
			}
			if progress == nil {
				continue
			}
			if seconds, ok := parseTime(line); ok {
				progress(update(seconds, spec.Duration))
			}
		}
		return scanner.Err()
	})

	drainErr := group.Wait()
	waitErr := cmd.Wait()
	if waitErr != nil {
		detail := strings.Join(tail, "\n")
		if detail == "" {
			detail = "no ffmpeg output captured"
		}
		if ctx.Err() != nil {
			return encodeErr("encode cancelled", ctx.Err())
		}
		return encodeErr(fmt.Sprintf("ffmpeg exited: %s", detail), waitErr)
	}
	if drainErr != nil {
		return encodeErr("read ffmpeg output", drainErr)
	}

	if progress != nil {
		progress(ProgressUpdate{Seconds: spec.Duration, Percent: 100})
	}
	return nil
}

func update(seconds, duration float64) ProgressUpdate {
	u := ProgressUpdate{Seconds: seconds}
	if duration > 0 {
		u.Percent = seconds / duration * 100
		if u.Percent > 100 {
			u.Percent = 100
		}
	}
	return u
}

// parseTime extracts the encoded media time from an ffmpeg stderr report.
func parseTime(line string) (float64, bool) {
	match := timePattern.FindStringSubmatch(line)
	if match == nil {
		return 0, false
	}
	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	seconds, _ := strconv.ParseFloat(match[3], 64)
	return float64(hours)*3600 + float64(minutes)*60 + seconds, true
}

var _ Client = (*FFmpeg)(nil)
