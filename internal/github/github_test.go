package github

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(srv *httptest.Server) *Client {
	return NewClientWith("test-token", srv.URL, srv.Client())
}

func TestDefaultBranch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/repos/owner/repo", r.URL.Path)
		w.Write([]byte(`{"default_branch":"main"}`))
	}))
	defer srv.Close()

	branch, err := testClient(srv).DefaultBranch(context.Background(), "owner", "repo")
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}

func TestBranchHead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/owner/repo/branches/main", r.URL.Path)
		w.Write([]byte(`{"commit":{"sha":"abc123"}}`))
	}))
	defer srv.Close()

	sha, err := testClient(srv).BranchHead(context.Background(), "owner", "repo", "main")
	require.NoError(t, err)
	assert.Equal(t, "abc123", sha)
}

func TestBranchHead_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		w.Write([]byte(`{"message":"Branch not found"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv).BranchHead(context.Background(), "owner", "repo", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestTree(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/owner/repo/git/trees/main", r.URL.Path)
		assert.Equal(t, "recursive=1", r.URL.RawQuery)
		w.Write([]byte(`{"tree":[
			{"path":"a.txt","type":"blob","sha":"s1","url":"http://x/blob/s1"},
			{"path":"dir","type":"tree","sha":"s2","url":"http://x/tree/s2"}
		],"truncated":false}`))
	}))
	defer srv.Close()

	items, truncated, err := testClient(srv).Tree(context.Background(), "owner", "repo", "main")
	require.NoError(t, err)
	assert.False(t, truncated)
	require.Len(t, items, 2)
	assert.Equal(t, "a.txt", items[0].Path)
	assert.True(t, items[0].IsBlob())
	assert.False(t, items[1].IsBlob())
}

func TestTree_Truncated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tree":[],"truncated":true}`))
	}))
	defer srv.Close()

	_, truncated, err := testClient(srv).Tree(context.Background(), "owner", "repo", "main")
	require.NoError(t, err)
	assert.True(t, truncated)
}

func TestTree_AuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
		w.Write([]byte(`{"message":"Bad credentials"}`))
	}))
	defer srv.Close()

	_, _, err := testClient(srv).Tree(context.Background(), "owner", "repo", "main")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")
}

func TestBlob(t *testing.T) {
	// GitHub wraps blob base64 in newlines; decoding must tolerate them.
	enc := base64.StdEncoding.EncodeToString([]byte("hello world\n"))
	payload := `{"content":"` + enc[:8] + `\n` + enc[8:] + `","encoding":"base64"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	content, err := testClient(srv).Blob(context.Background(), srv.URL+"/blob/s1")
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", content)
}

func TestBlob_MissingContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"encoding":"none"}`))
	}))
	defer srv.Close()

	content, err := testClient(srv).Blob(context.Background(), srv.URL+"/blob/s1")
	require.NoError(t, err)
	assert.Equal(t, SentinelNonText, content)
}

func TestBlob_Binary(t *testing.T) {
	enc := base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0x00, 0x01})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":"` + enc + `","encoding":"base64"}`))
	}))
	defer srv.Close()

	content, err := testClient(srv).Blob(context.Background(), srv.URL+"/blob/s1")
	require.NoError(t, err)
	assert.Equal(t, SentinelUndecodable, content)
}

func TestBlob_InvalidBase64(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":"!!!not base64!!!","encoding":"base64"}`))
	}))
	defer srv.Close()

	content, err := testClient(srv).Blob(context.Background(), srv.URL+"/blob/s1")
	require.NoError(t, err)
	assert.Equal(t, SentinelUndecodable, content)
}

func TestNewClient_MissingToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")

	_, err := NewClient()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GITHUB_TOKEN")
}

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		in    string
		owner string
		repo  string
	}{
		{"https://github.com/dshills/reposnap", "dshills", "reposnap"},
		{"https://github.com/dshills/reposnap/", "dshills", "reposnap"},
		{"https://github.com/dshills/reposnap.git", "dshills", "reposnap"},
		{"http://github.com/a/b", "a", "b"},
		{"git@github.com:dshills/reposnap.git", "dshills", "reposnap"},
		{"git@github.com:dshills/repo.snap", "dshills", "repo.snap"},
		{"dshills/reposnap", "dshills", "reposnap"},
	}
	for _, tt := range tests {
		owner, repo, err := ParseRepoURL(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.owner, owner, tt.in)
		assert.Equal(t, tt.repo, repo, tt.in)
	}
}

func TestParseRepoURL_Invalid(t *testing.T) {
	for _, in := range []string{
		"",
		"not a url",
		"https://github.com/onlyowner",
		"https://gitlab.com/a/b",
		"ftp://github.com/a/b",
	} {
		_, _, err := ParseRepoURL(in)
		assert.Error(t, err, in)
	}
}
