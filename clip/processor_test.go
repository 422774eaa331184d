package clip

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/video-clipper-cli/pkg/batchfile"
	"github.com/user/video-clipper-cli/pkg/cliputil"
	"github.com/user/video-clipper-cli/pkg/timeutil"
)

type fakeCutter struct {
	mu     sync.Mutex
	calls  map[string]cliputil.Window
	failOn string
}

func newFakeCutter() *fakeCutter {
	return &fakeCutter{calls: make(map[string]cliputil.Window)}
}

func (c *fakeCutter) Cut(_ context.Context, _ string, w cliputil.Window, out string) error {
	c.mu.Lock()
	c.calls[filepath.Base(out)] = w
	c.mu.Unlock()

	if c.failOn != "" && strings.Contains(out, c.failOn) {
		return errors.New("encoder exploded")
	}
	return os.WriteFile(out, []byte("clip"), 0644)
}

type fakeFrames struct{}

func (fakeFrames) Frame(_ context.Context, _ string, at float64) ([]byte, error) {
	if at < 0 {
		return nil, errors.New("negative offset")
	}
	return []byte{0xFF, 0xD8}, nil
}

func testJob(t *testing.T) Job {
	t.Helper()
	return Job{
		Source:         "/videos/match.mp4",
		OutputDir:      t.TempDir(),
		Ext:            "mp4",
		RecordingStart: 36000,
		Before:         40,
		After:          20,
		DefaultSeconds: 40,
		Duration:       600,
	}
}

func readFile(t *testing.T, content string) *batchfile.File {
	t.Helper()
	f, err := batchfile.Read(strings.NewReader(content))
	require.NoError(t, err)
	return f
}

func TestRunner_Single(t *testing.T) {
	cutter := newFakeCutter()
	r := &Runner{Cutter: cutter}
	job := testJob(t)

	o, err := r.Single(context.Background(), job, "10:05:30")
	require.NoError(t, err)
	assert.True(t, o.OK())
	assert.Equal(t, cliputil.Window{Start: 290, End: 350}, o.Window)
	assert.Equal(t, "10-05-30.mp4", o.OutputName)
	assert.Equal(t, filepath.Join(job.OutputDir, "10-05-30.mp4"), o.OutputPath)
	assert.Equal(t, int64(4), o.Size)
	assert.Contains(t, cutter.calls, "10-05-30.mp4")
}

func TestRunner_SingleErrors(t *testing.T) {
	r := &Runner{Cutter: newFakeCutter()}
	job := testJob(t)

	_, err := r.Single(context.Background(), job, "10:05")
	assert.ErrorIs(t, err, timeutil.ErrInvalidFormat)

	_, err = r.Single(context.Background(), job, "09:00:00")
	assert.ErrorIs(t, err, cliputil.ErrTargetBeforeStart)

	job.Duration = 340
	_, err = r.Single(context.Background(), job, "10:05:30")
	assert.ErrorIs(t, err, cliputil.ErrWindowTooLate)
}

func TestRunner_SingleCutterFailure(t *testing.T) {
	cutter := newFakeCutter()
	cutter.failOn = "10-05-30"
	r := &Runner{Cutter: cutter}

	o, err := r.Single(context.Background(), testJob(t), "10:05:30")
	require.Error(t, err)
	assert.False(t, o.OK())
	assert.Contains(t, err.Error(), "encoder exploded")
}

func TestRunner_Batch(t *testing.T) {
	cutter := newFakeCutter()
	cutter.failOn = "10-03-00"

	var progress []Progress
	r := &Runner{
		Cutter:     cutter,
		Frames:     fakeFrames{},
		Workers:    3,
		OnProgress: func(p Progress) { progress = append(progress, p) },
	}
	job := testJob(t)

	f := readFile(t, strings.Join([]string{
		"# match timestamps",
		"10:01:00 first",
		"10:00:10 too early",
		"10:02 short form",
		"garbage line",
		"10:03:00 cutter fails",
		"10:09:50 too late",
		"09:00:00 before start",
		"10:61:00 bad minute",
		"2025-11-18 10:04:00描述",
	}, "\n"))

	outcomes, err := r.Batch(context.Background(), job, f)
	require.NoError(t, err)
	require.Len(t, outcomes, 8)

	lines := make([]int, len(outcomes))
	for i, o := range outcomes {
		lines[i] = o.Entry.Line
	}
	assert.Equal(t, []int{2, 3, 4, 6, 7, 8, 9, 10}, lines)

	assert.True(t, outcomes[0].OK())
	assert.Equal(t, cliputil.Window{Start: 20, End: 80}, outcomes[0].Window)
	assert.Equal(t, "10-01-00_first.mp4", outcomes[0].OutputName)
	assert.NotEmpty(t, outcomes[0].FirstFrame)
	assert.NotEmpty(t, outcomes[0].LastFrame)

	assert.ErrorIs(t, outcomes[1].Err, cliputil.ErrWindowTooEarly)

	// 10:02 takes the default seconds: 10:02:40.
	assert.True(t, outcomes[2].OK())
	assert.Equal(t, 36160, outcomes[2].Target)
	assert.Equal(t, "10-02_short form.mp4", outcomes[2].OutputName)

	assert.False(t, outcomes[3].OK())
	assert.Contains(t, outcomes[3].Err.Error(), "encoder exploded")

	assert.ErrorIs(t, outcomes[4].Err, cliputil.ErrWindowTooLate)
	assert.ErrorIs(t, outcomes[5].Err, cliputil.ErrTargetBeforeStart)
	assert.ErrorIs(t, outcomes[6].Err, timeutil.ErrOutOfRange)

	assert.True(t, outcomes[7].OK())
	assert.Equal(t, "2025-11-18_10-04-00_描述.mp4", outcomes[7].OutputName)

	require.Len(t, progress, 8)
	assert.Equal(t, 8, progress[7].Done)
	assert.Equal(t, 8, progress[7].Total)

	// Rejected entries never reach the cutter.
	assert.Len(t, cutter.calls, 4)

	s := Summarize(outcomes)
	assert.Equal(t, 8, s.Total)
	assert.Equal(t, 3, s.Succeeded)
	assert.Equal(t, 5, s.Failed)
	assert.Len(t, s.Failures, 3)
	assert.Equal(t, 2, s.MoreFailures)
	assert.Equal(t, int64(12), s.Bytes)
	assert.True(t, strings.HasPrefix(s.Failures[0], "line 3: 10:00:10 - "))
}

func TestRunner_BatchStrictReportsUnrecognizedLines(t *testing.T) {
	r := &Runner{Cutter: newFakeCutter()}
	job := testJob(t)
	job.Strict = true

	outcomes, err := r.Batch(context.Background(), job, readFile(t, "10:01:00 a\nnonsense\n10:02:00 b\n"))
	require.NoError(t, err)
	require.Len(t, outcomes, 3)
	assert.Equal(t, 2, outcomes[1].Entry.Line)
	assert.ErrorIs(t, outcomes[1].Err, batchfile.ErrUnrecognizedLine)
	assert.True(t, outcomes[0].OK())
	assert.True(t, outcomes[2].OK())
}

func TestRunner_BatchNoTimestamps(t *testing.T) {
	r := &Runner{Cutter: newFakeCutter()}

	_, err := r.Batch(context.Background(), testJob(t), readFile(t, "# only comments\n\n#another\n"))
	assert.ErrorIs(t, err, ErrNoTimestamps)
}

func TestRunner_BatchDuplicateNames(t *testing.T) {
	cutter := newFakeCutter()
	r := &Runner{Cutter: cutter}

	outcomes, err := r.Batch(context.Background(), testJob(t), readFile(t, "10:01:00 a\n10:01:00 a\n10:01:00 a\n"))
	require.NoError(t, err)
	assert.Equal(t, "10-01-00_a.mp4", outcomes[0].OutputName)
	assert.Equal(t, "10-01-00_a_2.mp4", outcomes[1].OutputName)
	assert.Equal(t, "10-01-00_a_3.mp4", outcomes[2].OutputName)
}

func TestRunner_BatchSuffixedNameNeverReused(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "label equals suffix",
			content: "10:01:00\n10:01:00\n10:01:00 2\n",
			want:    []string{"10-01-00.mp4", "10-01-00_2.mp4", "10-01-00_2_2.mp4"},
		},
		{
			name:    "suffix taken first",
			content: "10:01:00\n10:01:00 2\n10:01:00\n",
			want:    []string{"10-01-00.mp4", "10-01-00_2.mp4", "10-01-00_3.mp4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cutter := newFakeCutter()
			r := &Runner{Cutter: cutter, Workers: 3}

			outcomes, err := r.Batch(context.Background(), testJob(t), readFile(t, tt.content))
			require.NoError(t, err)
			require.Len(t, outcomes, len(tt.want))

			paths := make(map[string]bool)
			for i, o := range outcomes {
				require.True(t, o.OK(), "line %d: %v", o.Entry.Line, o.Err)
				assert.Equal(t, tt.want[i], o.OutputName)
				assert.False(t, paths[o.OutputPath], "duplicate path %s", o.OutputPath)
				paths[o.OutputPath] = true
			}
			assert.Len(t, cutter.calls, len(tt.want))
		})
	}
}

func TestRunner_BatchCancelled(t *testing.T) {
	r := &Runner{Cutter: newFakeCutter()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes, err := r.Batch(ctx, testJob(t), readFile(t, "10:01:00\n10:02:00\n"))
	require.NoError(t, err)
	for _, o := range outcomes {
		assert.ErrorIs(t, o.Err, context.Canceled)
	}
}

func TestRunner_PlanDoesNotCut(t *testing.T) {
	cutter := newFakeCutter()
	r := &Runner{Cutter: cutter}

	outcomes := r.Plan(testJob(t), readFile(t, "10:01:00\n10:00:01\n"))
	require.Len(t, outcomes, 2)
	assert.True(t, outcomes[0].OK())
	assert.False(t, outcomes[1].OK())
	assert.Empty(t, cutter.calls)
}
