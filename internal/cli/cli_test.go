package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChooseRepo_Saved(t *testing.T) {
	repos := []string{"https://github.com/a/b", "https://github.com/c/d"}
	var out bytes.Buffer

	url, err := chooseRepo(strings.NewReader("2\n"), &out, repos)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/c/d", url)
	assert.Contains(t, out.String(), "1. https://github.com/a/b")
	assert.Contains(t, out.String(), "3. Enter new repository")
	assert.Contains(t, out.String(), "4. Exit")
}

func TestChooseRepo_New(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("2\nhttps://github.com/x/y\n")

	url, err := chooseRepo(in, &out, []string{"https://github.com/a/b"})
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/x/y", url)
	assert.Contains(t, out.String(), "Enter a new GitHub repository URL:")
}

func TestChooseRepo_Exit(t *testing.T) {
	var out bytes.Buffer

	url, err := chooseRepo(strings.NewReader("3\n"), &out, []string{"https://github.com/a/b"})
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestChooseRepo_NoSavedRepos(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("1\nhttps://github.com/x/y\n")

	url, err := chooseRepo(in, &out, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/x/y", url)
}

func TestChooseRepo_InvalidSelection(t *testing.T) {
	for _, input := range []string{"0\n", "9\n", "abc\n", "\n"} {
		var out bytes.Buffer
		_, err := chooseRepo(strings.NewReader(input), &out, []string{"https://github.com/a/b"})
		assert.Error(t, err, "input %q", input)
	}
}

func TestChooseRepo_EOF(t *testing.T) {
	var out bytes.Buffer
	url, err := chooseRepo(strings.NewReader(""), &out, nil)
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestRun_MissingTokenAuthExitCode(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	rootCmd.SetArgs([]string{"snapshot", "https://github.com/acme/widget"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	assert.Equal(t, ExitAuthError, Run())
}

func TestRun_BadRepoURLUsageExitCode(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	rootCmd.SetArgs([]string{"snapshot", "not a repository"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	assert.Equal(t, ExitUsageError, Run())
}

func TestBuildOverrides(t *testing.T) {
	flagBranch = "develop"
	flagOutputDir = "docs"
	flagNoCache = true
	flagStripComments = true
	flagEncoding = ""
	flagCacheDir = ""
	t.Cleanup(func() {
		flagBranch, flagOutputDir, flagEncoding, flagCacheDir = "", "", "", ""
		flagNoCache, flagStripComments = false, false
	})

	m := buildOverrides()
	assert.Equal(t, "develop", m["branch"])
	assert.Equal(t, "docs", m["outputDir"])
	assert.Contains(t, m, "noCache")
	assert.Contains(t, m, "stripComments")
	assert.NotContains(t, m, "encoding")
	assert.NotContains(t, m, "cacheDir")
}
