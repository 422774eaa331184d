// Package mpv previews a planned clip window in the mpv player.
package mpv

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/user/video-clipper-cli/deps"
	"github.com/user/video-clipper-cli/pkg/cliputil"
)

// Options tune the preview player.
type Options struct {
	// Binary is the mpv executable; empty means "mpv" on PATH.
	Binary string
	// Loop replays the window until the player is closed.
	Loop bool
}

// Args returns the mpv arguments playing only window w of videoPath.
func Args(videoPath string, w cliputil.Window, loop bool) []string {
	args := []string{
		fmt.Sprintf("--start=%.3f", w.Start),
		fmt.Sprintf("--end=%.3f", w.End),
		"--title=" + fmt.Sprintf("preview %s", w),
	}
	if loop {
		args = append(args, "--loop-file=inf")
	}
	return append(args, "--", videoPath)
}

// LaunchMpv starts mpv on window w of videoPath without waiting for it.
// It checks that mpv is installed first and returns an error with install link if not.
func LaunchMpv(ctx context.Context, videoPath string, w cliputil.Window, opts Options) (*exec.Cmd, error) {
	dep := deps.Mpv(opts.Binary)
	if err := dep.Check(); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, dep.Binary, Args(videoPath, w, opts.Loop)...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting mpv: %w", err)
	}
	return cmd, nil
}

// Preview plays window w of videoPath and returns when the player exits.
func Preview(ctx context.Context, videoPath string, w cliputil.Window, opts Options) error {
	cmd, err := LaunchMpv(ctx, videoPath, w, opts)
	if err != nil {
		return err
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("mpv exited: %w", err)
	}
	return nil
}
