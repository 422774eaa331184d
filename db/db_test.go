package db

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestOpen_AppliesMigrationsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	conn, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	conn, err = Open(path)
	require.NoError(t, err)
	defer conn.Close()

	var n int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&n))
	assert.Equal(t, 1, n)
}

func TestSaveRun_RoundTrip(t *testing.T) {
	conn := openTestDB(t)
	started := time.Date(2025, 11, 13, 9, 0, 0, 0, time.UTC)
	finished := started.Add(42 * time.Second)

	id, err := SaveRun(conn, Run{
		Mode:           ModeBatch,
		Source:         "match.mp4",
		RecordingStart: 300,
		Before:         40,
		After:          20,
		Duration:       600.5,
		StartedAt:      started,
		FinishedAt:     &finished,
		Succeeded:      1,
		Failed:         1,
		ReportPath:     "clip-report.html",
	}, []Outcome{
		{Line: 4, Expression: "00:06:00", Label: "late", Status: StatusFailed, Error: "window ends too late"},
		{Line: 2, Expression: "00:05:30", Label: "kickoff", Start: 290, End: 350, OutputPath: "a.mp4", Filesize: 1024, Status: StatusSuccess},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	runs, err := SelectRuns(conn, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	r := runs[0]
	assert.Equal(t, id, r.ID)
	assert.Equal(t, ModeBatch, r.Mode)
	assert.Equal(t, 300, r.RecordingStart)
	assert.Equal(t, 600.5, r.Duration)
	assert.True(t, started.Equal(r.StartedAt))
	require.NotNil(t, r.FinishedAt)
	assert.True(t, finished.Equal(*r.FinishedAt))
	assert.Equal(t, "clip-report.html", r.ReportPath)

	outcomes, err := SelectOutcomesByRun(conn, id)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Equal(t, 2, outcomes[0].Line)
	assert.Equal(t, "kickoff", outcomes[0].Label)
	assert.Equal(t, int64(1024), outcomes[0].Filesize)
	assert.Equal(t, 4, outcomes[1].Line)
	assert.Equal(t, "window ends too late", outcomes[1].Error)
}

func TestSelectRuns_NewestFirstWithLimit(t *testing.T) {
	conn := openTestDB(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := SaveRun(conn, Run{ID: string(rune('a' + i)), Mode: ModeSingle, Source: "v.mp4", StartedAt: base.Add(time.Duration(i) * time.Hour)}, nil)
		require.NoError(t, err)
	}

	runs, err := SelectRuns(conn, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
	assert.Nil(t, runs[0].FinishedAt)
}

func TestSelectRunByIDPrefix(t *testing.T) {
	conn := openTestDB(t)
	now := time.Now().UTC()
	for _, id := range []string{"abc111", "abd222"} {
		_, err := SaveRun(conn, Run{ID: id, Mode: ModeSingle, Source: "v.mp4", StartedAt: now}, nil)
		require.NoError(t, err)
	}

	r, err := SelectRunByIDPrefix(conn, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc111", r.ID)

	_, err = SelectRunByIDPrefix(conn, "ab")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = SelectRunByIDPrefix(conn, "zzz")
	assert.ErrorContains(t, err, "not found")
}

func TestSelectRunByIDPrefix_WildcardsAreLiteral(t *testing.T) {
	conn := openTestDB(t)
	now := time.Now().UTC()
	for _, id := range []string{"abc111", "abd222", "a_c333"} {
		_, err := SaveRun(conn, Run{ID: id, Mode: ModeSingle, Source: "v.mp4", StartedAt: now}, nil)
		require.NoError(t, err)
	}

	_, err := SelectRunByIDPrefix(conn, "%")
	assert.ErrorContains(t, err, "not found")

	r, err := SelectRunByIDPrefix(conn, "a_")
	require.NoError(t, err)
	assert.Equal(t, "a_c333", r.ID)
}

func TestDeleteRun_CascadesOutcomes(t *testing.T) {
	conn := openTestDB(t)
	id, err := SaveRun(conn, Run{Mode: ModeSingle, Source: "v.mp4", StartedAt: time.Now()}, []Outcome{
		{Line: 0, Expression: "00:05:30", Status: StatusSuccess},
	})
	require.NoError(t, err)

	require.NoError(t, DeleteRun(conn, id))

	outcomes, err := SelectOutcomesByRun(conn, id)
	require.NoError(t, err)
	assert.Empty(t, outcomes)

	assert.Error(t, DeleteRun(conn, id))
}

func TestLoadMigrations_SortsAndSkips(t *testing.T) {
	fsys := fstest.MapFS{
		"m/010_later.sql":    {Data: []byte("SELECT 10")},
		"m/002_early.sql":    {Data: []byte("SELECT 2")},
		"m/notes.sql":        {Data: []byte("SELECT 0")},
		"m/x_unnumbered.sql": {Data: []byte("SELECT 0")},
		"m/003_readme.txt":   {Data: []byte("ignored")},
	}

	got, err := loadMigrations(fsys, "m")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].version)
	assert.Equal(t, 10, got[1].version)
	assert.Equal(t, "SELECT 10", got[1].sql)
}
