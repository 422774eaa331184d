package mpv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/video-clipper-cli/deps"
	"github.com/user/video-clipper-cli/pkg/cliputil"
)

func TestArgs(t *testing.T) {
	w := cliputil.Window{Start: 290, End: 350}

	assert.Equal(t, []string{
		"--start=290.000", "--end=350.000", "--title=preview 00:04:50-00:05:50", "--", "match.mp4",
	}, Args("match.mp4", w, false))

	looped := Args("match.mp4", w, true)
	assert.Contains(t, looped, "--loop-file=inf")
	assert.Equal(t, "match.mp4", looped[len(looped)-1])
}

func TestLaunchMpv_Missing(t *testing.T) {
	_, err := LaunchMpv(context.Background(), "v.mp4", cliputil.Window{End: 1}, Options{Binary: "/nonexistent/mpv"})

	var depErr *deps.DependencyError
	require.True(t, errors.As(err, &depErr))
	assert.Equal(t, deps.MpvInstallURL, depErr.InstallURL)
}

func TestPreview_PassesWindow(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake")
	}
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args")
	bin := filepath.Join(dir, "mpv")
	script := "#!/bin/sh\necho \"$@\" > " + argsFile + "\n"
	require.NoError(t, os.WriteFile(bin, []byte(script), 0755))

	err := Preview(context.Background(), "v.mp4", cliputil.Window{Start: 1.5, End: 3}, Options{Binary: bin})
	require.NoError(t, err)

	got, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(got), "--start=1.500 --end=3.000"))
	assert.Contains(t, string(got), "-- v.mp4")
}
