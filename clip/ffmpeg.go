package clip

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/user/video-clipper-cli/pkg/cliputil"
)

var (
	// ErrEmptyWindow is returned for a window whose start is not before its end.
	ErrEmptyWindow = errors.New("clip start must be before clip end")
	// ErrNegativeStart is returned for a window starting before the media.
	ErrNegativeStart = errors.New("clip start must not be negative")
)

// maxLogBytes bounds how much ffmpeg output is kept in an error.
const maxLogBytes = 2048

// FFmpeg cuts, probes and grabs frames using the ffmpeg and ffprobe binaries.
type FFmpeg struct {
	FFmpegPath  string
	FFprobePath string
	Logger      *slog.Logger
	// StreamCopy copies the source streams instead of re-encoding. Cuts are
	// much faster but start on the nearest keyframe.
	StreamCopy bool
}

// NewFFmpeg returns an FFmpeg using the given binaries; empty names default to
// "ffmpeg" and "ffprobe" on PATH.
func NewFFmpeg(ffmpegPath, ffprobePath string, logger *slog.Logger) *FFmpeg {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FFmpeg{FFmpegPath: ffmpegPath, FFprobePath: ffprobePath, Logger: logger}
}

// Duration runs ffprobe and returns the container duration in seconds.
func (f *FFmpeg) Duration(ctx context.Context, src string) (float64, error) {
	cmdPath, err := exec.LookPath(f.FFprobePath)
	if err != nil {
		return 0, fmt.Errorf("ffprobe not available: %w", err)
	}

	cmd := exec.CommandContext(ctx, cmdPath, probeArgs(src)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w\n%s", err, tail(stderr.Bytes()))
	}

	var probe struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(output, &probe); err != nil {
		return 0, fmt.Errorf("parsing ffprobe output: %w", err)
	}
	if probe.Format.Duration == "" {
		return 0, fmt.Errorf("ffprobe reported no duration for %s", src)
	}

	duration, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing duration %q: %w", probe.Format.Duration, err)
	}
	return duration, nil
}

// Cut writes w of src to out, re-encoded as H.264 video with AAC audio unless
// StreamCopy is set. The output directory is created if needed.
func (f *FFmpeg) Cut(ctx context.Context, src string, w cliputil.Window, out string) error {
	if w.Start < 0 {
		return fmt.Errorf("%w (got %.1fs)", ErrNegativeStart, w.Start)
	}
	if w.Start >= w.End {
		return fmt.Errorf("%w (start %s, end %s)", ErrEmptyWindow, fmtSeconds(w.Start), fmtSeconds(w.End))
	}

	cmdPath, err := exec.LookPath(f.FFmpegPath)
	if err != nil {
		return fmt.Errorf("ffmpeg not available: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	args := cutArgs(src, w, out, f.StreamCopy)
	f.Logger.Debug("running ffmpeg", "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, cmdPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w\n%s", err, tail(output))
	}
	return nil
}

// Frame extracts a single JPEG frame of src at offset seconds.
func (f *FFmpeg) Frame(ctx context.Context, src string, at float64) ([]byte, error) {
	cmdPath, err := exec.LookPath(f.FFmpegPath)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg not available: %w", err)
	}
	if at < 0 {
		at = 0
	}

	cmd := exec.CommandContext(ctx, cmdPath,
		"-v", "error",
		"-ss", fmtSeconds(at),
		"-i", src,
		"-frames:v", "1",
		"-q:v", "2",
		"-f", "image2pipe",
		"-vcodec", "mjpeg",
		"-",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("frame extraction failed: %w\n%s", err, tail(stderr.Bytes()))
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("no frame at %ss in %s", fmtSeconds(at), src)
	}
	return stdout.Bytes(), nil
}

func probeArgs(src string) []string {
	return []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		src,
	}
}

func cutArgs(src string, w cliputil.Window, out string, streamCopy bool) []string {
	args := []string{
		"-y",
		"-ss", fmtSeconds(w.Start),
		"-i", src,
		"-t", fmtSeconds(w.Duration()),
	}
	if streamCopy {
		args = append(args, "-c", "copy")
	} else {
		args = append(args, "-c:v", "libx264", "-c:a", "aac", "-preset", "fast")
	}
	return append(args, out)
}

func fmtSeconds(s float64) string {
	return fmt.Sprintf("%.3f", s)
}

func tail(b []byte) string {
	if len(b) > maxLogBytes {
		b = b[len(b)-maxLogBytes:]
	}
	return strings.TrimSpace(string(b))
}
