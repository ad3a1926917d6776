package git_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/emoscope/git"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRepo creates a temporary git repository with a known history for testing.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()

	runGit(t, dir, "init", "-b", "main")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")

	writeFile(t, dir, "README.md", "# Test Repo\n")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "Initial commit")

	return dir
}

// runGit executes a git command in the given directory.
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "command git %v failed: %s", args, string(output))
	return string(output)
}

// writeFile creates a file with the given content.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
	require.NoError(t, err)
}

func commit(t *testing.T, dir string, i int, msg string) {
	t.Helper()
	writeFile(t, dir, fmt.Sprintf("file%d.txt", i), "content\n")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", msg)
}

func TestRunner_Messages(t *testing.T) {
	t.Parallel()

	t.Run("returns subjects newest first", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)
		commit(t, dir, 1, "Finally fixed the flaky test!")
		commit(t, dir, 2, "Revert everything, this is a disaster\n\nLong body ignored.")

		msgs, err := git.NewRunner().Messages(context.Background(), dir, 10)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"Revert everything, this is a disaster",
			"Finally fixed the flaky test!",
			"Initial commit",
		}, msgs)
	})

	t.Run("respects limit", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)
		for i := 1; i <= 3; i++ {
			commit(t, dir, i, fmt.Sprintf("Commit %d", i))
		}

		msgs, err := git.NewRunner().Messages(context.Background(), dir, 2)

		require.NoError(t, err)
		assert.Equal(t, []string{"Commit 3", "Commit 2"}, msgs)
	})

	t.Run("zero limit returns all commits", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)
		commit(t, dir, 1, "Second")

		msgs, err := git.NewRunner().Messages(context.Background(), dir, 0)

		require.NoError(t, err)
		assert.Len(t, msgs, 2)
	})

	t.Run("returns error for non-repository", func(t *testing.T) {
		t.Parallel()
		if _, err := exec.LookPath("git"); err != nil {
			t.Skip("git not available")
		}

		_, err := git.NewRunner().Messages(context.Background(), t.TempDir(), 5)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "git log failed")
	})
}

func TestRunner_Show(t *testing.T) {
	t.Parallel()

	dir := setupTestRepo(t)
	writeFile(t, dir, "diary.txt", "What a lovely day\n")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "Add diary")

	patch, err := git.NewRunner().Show(context.Background(), dir, "HEAD")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(patch), "diff --git"))
	assert.Contains(t, patch, "+What a lovely day")
}

func TestLogSource_Messages(t *testing.T) {
	t.Parallel()

	dir := setupTestRepo(t)
	src := &git.LogSource{Runner: git.NewRunner(), RepoPath: dir, Limit: 1}

	msgs, err := src.Messages(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Initial commit"}, msgs)
}
