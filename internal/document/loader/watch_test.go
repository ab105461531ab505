package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	post := writeFile(t, dir, "post/a.md", "---\ntitle: First\n---\n")
	writeFile(t, dir, "post/ignored.txt", "x")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan Result, 16)
	done := make(chan error, 1)
	l := newLoader(t, WithDebounce(100*time.Millisecond))
	go func() {
		done <- l.Watch(ctx, dir, []string{"**/*.md"}, func(r Result) { results <- r })
	}()

	next := func() Result {
		t.Helper()
		select {
		case r := <-results:
			return r
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for a watch result")
			return Result{}
		}
	}

	initial := next()
	assert.Equal(t, post, initial.Path)
	require.NoError(t, initial.Err)
	assert.Equal(t, "First", initial.Document.Title())

	require.NoError(t, os.WriteFile(post, []byte("---\ntitle: \"\"\n---\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "post", "ignored.txt"), []byte("y"), 0o644))

	changed := next()
	assert.Equal(t, post, changed.Path)
	assert.Error(t, changed.Err, "empty title is reported")

	fresh := writeFile(t, dir, "post/new.md", "---\ntitle: New\n---\n")
	created := next()
	assert.Equal(t, fresh, created.Path)
	require.NoError(t, created.Err)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
