package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveItemsNonPlaylist(t *testing.T) {
	// Plain watch URLs resolve to themselves without probing.
	url := "https://www.youtube.com/watch?v=X"
	items, err := ResolveItems(context.Background(), url, false)
	require.NoError(t, err)
	require.Equal(t, []string{url}, items)
}

func TestResolveItemsMixedWatchAndList(t *testing.T) {
	// watch?v= with a list parameter downloads the watched video itself
	// unless every playlist item was asked for.
	url := "https://www.youtube.com/watch?v=X&list=PLx"
	items, err := ResolveItems(context.Background(), url, false)
	require.NoError(t, err)
	require.Equal(t, []string{url}, items)
}

func TestPickArtifact(t *testing.T) {
	dir := t.TempDir()
	artifact := filepath.Join(dir, "My Song.m4a")
	require.NoError(t, os.WriteFile(artifact, []byte("x"), 0644))

	stdout := "[download]  42.0% of 10MiB\n" + artifact + "\n"
	require.Equal(t, artifact, pickArtifact(stdout))
}

func TestPickArtifactNoFile(t *testing.T) {
	stdout := "[download] 100% of 10MiB\n/nonexistent/path/file.mp4\n"
	require.Empty(t, pickArtifact(stdout))
	require.Empty(t, pickArtifact(""))
}

func TestPickArtifactPrefersLastExistingLine(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.m4a")
	second := filepath.Join(dir, "b.m4a")
	require.NoError(t, os.WriteFile(first, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("x"), 0644))

	require.Equal(t, second, pickArtifact(first+"\n"+second+"\n"))
}
