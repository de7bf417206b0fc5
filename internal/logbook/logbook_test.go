package logbook

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTailReturnsRecentLinesAndTotal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journey.log")
	book, err := New(path)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		book.Info("entry-%d", i)
	}
	lines, total := book.Tail(3)
	assert.Equal(t, 5, total)
	require.Len(t, lines, 3)
	for idx, want := range []string{"entry-2", "entry-3", "entry-4"} {
		assert.Contains(t, lines[idx], want)
	}
}

func TestAppendFormatsTimestampAndScope(t *testing.T) {
	book, err := New(filepath.Join(t.TempDir(), "logs", "journey.log"))
	require.NoError(t, err)
	book.now = func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC) }

	book.WithScope("LN-1").Warn("stage %s missing", "kyc")
	data, err := os.ReadFile(book.Path())
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T09:30:00Z WARN  [LN-1] stage kyc missing\n", string(data))
}

func TestWarnErrorsSplitsJoinedErrors(t *testing.T) {
	book, err := New(filepath.Join(t.TempDir(), "journey.log"))
	require.NoError(t, err)
	book.WarnErrors("lint", errors.Join(errors.New("first"), errors.New("second")))
	lines, total := book.Tail(10)
	require.Equal(t, 2, total)
	assert.True(t, strings.HasSuffix(lines[0], "lint: first"))
	assert.True(t, strings.HasSuffix(lines[1], "lint: second"))
}

func TestNilLogbookIsSafe(t *testing.T) {
	var book *Logbook
	book.Info("ignored")
	book.WarnErrors("x", errors.New("y"))
	lines, total := book.Tail(3)
	assert.Nil(t, lines)
	assert.Zero(t, total)
	assert.Empty(t, book.Path())
	assert.Nil(t, book.WithScope("a"))
}
