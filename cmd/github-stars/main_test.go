package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	stars "github.com/ianfoo/github-stars"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeGitHub answers repository lookups from a fixed table of star counts;
// unknown repositories get a 404.
func fakeGitHub(t *testing.T, counts map[string]int) (*httptest.Server, *atomic.Int32) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "GitHub-Stars-Fetcher", r.Header.Get("User-Agent"))
		count, ok := counts[strings.TrimPrefix(r.URL.Path, "/repos/")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message": "Not Found"}`)
			return
		}
		fmt.Fprintf(w, `{"stargazers_count": %d}`, count)
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func run(t *testing.T, server *httptest.Server, stdin string, args ...string) (string, error) {
	cmd := newRootCmd(zap.NewNop().Sugar(),
		stars.WithAPIBaseURL(server.URL),
		stars.WithHTTPClient(server.Client()),
		stars.WithDelay(0))
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if args == nil {
		// nil would make cobra fall back to os.Args.
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_NoRepositories(t *testing.T) {
	testCases := []struct {
		name  string
		stdin string
		args  []string
	}{
		{name: "empty stdin"},
		{name: "blank lines only", stdin: "\n   \n\t\n"},
		{name: "markdown requested", stdin: "\n", args: []string{"--markdown"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server, requests := fakeGitHub(t, nil)

			out, err := run(t, server, tc.stdin, tc.args...)

			require.NoError(t, err)
			assert.Equal(t, "No repositories provided on stdin.\n", out)
			assert.Zero(t, requests.Load())
		})
	}
}

func TestRootCmd_Markdown(t *testing.T) {
	server, requests := fakeGitHub(t, map[string]int{"foo/bar": 42, "big/one": 1000})

	out, err := run(t, server, "foo/bar\n  missing/repo\n\nbig/one\n", "-m")

	require.NoError(t, err)
	assert.Equal(t, int32(3), requests.Load())
	expected := "Fetching data for: foo/bar\n" +
		"Fetching data for: missing/repo\n" +
		"Fetching data for: big/one\n" +
		"- [big/one](https://github.com/big/one) (1000⭐)\n" +
		"- [foo/bar](https://github.com/foo/bar) (42⭐)\n" +
		"- [missing/repo](HTTP Error: 404 Not Found) (0⭐)\n"
	assert.Equal(t, expected, out)
}

func TestRootCmd_Table(t *testing.T) {
	server, _ := fakeGitHub(t, map[string]int{"a/three": 3, "c/ten": 10})

	out, err := run(t, server, "a/three\nb/zero\nc/ten\n", "--unknown", "extra")

	require.NoError(t, err)
	assert.NotContains(t, out, "- [")
	lines := strings.Split(out, "\n")
	assert.Equal(t, "Fetching data for: a/three", lines[0])
	assert.Equal(t, "Fetching data for: b/zero", lines[1])
	assert.Equal(t, "Fetching data for: c/ten", lines[2])

	header := strings.Index(out, "Repository")
	ten := strings.Index(out, "| c/ten ")
	three := strings.Index(out, "| a/three ")
	zero := strings.Index(out, "| b/zero ")
	require.True(t, header > 0 && ten > 0 && three > 0 && zero > 0, out)
	assert.True(t, header < ten && ten < three && three < zero, out)
	assert.Contains(t, out, "https://github.com/c/ten")
	assert.Contains(t, out, "HTTP Error: 404 Not Found")
}

func TestRootCmd_Idempotent(t *testing.T) {
	server, _ := fakeGitHub(t, map[string]int{"a/one": 1, "b/two": 2, "c/two": 2})
	stdin := "a/one\nb/two\nnope/nope\nc/two\n"

	for _, args := range [][]string{nil, {"--markdown"}} {
		first, err := run(t, server, stdin, args...)
		require.NoError(t, err)
		second, err := run(t, server, stdin, args...)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestRootCmd_StartupError(t *testing.T) {
	cmd := newRootCmd(zap.NewNop().Sugar(), stars.WithUserAgent("bad\nagent"))
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader("foo/bar\n"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to set up GitHub client")
	assert.Empty(t, out.String())
}
