package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-hit-matcher/model"
)

func TestVersionCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"full", nil, "hitmatch " + Version},
		{"short", []string{"--short"}, Version},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newVersionCmd()
			buf := &bytes.Buffer{}
			cmd.SetOut(buf)
			cmd.SetArgs(tt.args)

			require.NoError(t, cmd.Execute())
			assert.True(t, strings.HasPrefix(buf.String(), tt.want), "got %q", buf.String())
		})
	}
}

func TestRootCmd_VersionFlag(t *testing.T) {
	cmd := NewRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "hitmatch version "+Version+"\n", buf.String())
}

func TestMatchCmd_Stdin(t *testing.T) {
	request := `{
		"matcher": "proximity",
		"n_unique": 2,
		"window": 3,
		"tokens": {
			"context": [1, 1, 1, 1],
			"position": [1, 2, 3, 4],
			"term": [1, 2, 1, 2],
			"replace": [false, false, false, false]
		}
	}`

	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetIn(strings.NewReader(request))
	cmd.SetOut(out)
	cmd.SetArgs([]string{"match"})

	require.NoError(t, cmd.Execute())

	var resp model.MatchResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, []int{1, 1, 2, 2}, resp.HitIDs)
	assert.Equal(t, 2, resp.Hits)
}

func TestMatchCmd_TextFromFile(t *testing.T) {
	request := `{
		"matcher": "sequence",
		"terms": ["climate change"],
		"documents": [{"documentID": "doc1", "text": "Climate change policy and climate change research"}]
	}`
	path := filepath.Join(t.TempDir(), "request.json")
	require.NoError(t, os.WriteFile(path, []byte(request), 0o600))

	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"match", "--text", "--file", path})

	require.NoError(t, cmd.Execute())

	var resp model.TextMatchResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, 2, resp.Hits)
	require.Len(t, resp.Documents, 1)
	assert.Equal(t, "doc1", resp.Documents[0].DocumentID)
}

func TestMatchCmd_Errors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		input string
	}{
		{"invalid json", []string{"match"}, "{"},
		{"unknown matcher", []string{"match"}, `{"matcher": "or", "tokens": {"context": [], "position": [], "term": [], "replace": []}}`},
		{"missing file", []string{"match", "--file", "does-not-exist.json"}, ""},
		{"missing config", []string{"match", "--config", "does-not-exist.yaml"}, "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRootCmd()
			cmd.SetIn(strings.NewReader(tt.input))
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)

			assert.Error(t, cmd.Execute())
		})
	}
}

func TestServeOptions_Apply(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)

	opts := &serveOptions{port: "9000", workers: 3}
	opts.apply(&cfg)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 3, cfg.Matcher.Workers)

	// zero values keep the configured settings
	before := cfg
	(&serveOptions{}).apply(&cfg)
	assert.Equal(t, before, cfg)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hitmatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"7070\"\nmatcher:\n  default_window: 4\n"), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, 4.0, cfg.Matcher.DefaultWindow)
}
