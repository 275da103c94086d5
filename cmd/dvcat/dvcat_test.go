package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const playersYaml = `
- {id: 1, name: Ada, team: red, score: 10}
- {id: 2, name: Bob, team: blue, score: 7}
- {id: 3, name: Cid, team: red, score: 3}
- {id: 4, name: Dan, team: blue, score: 12}
`

const playersJson = `{
	"data": {
		"players": [
			{"id": 1, "name": "Ada", "team": "red", "score": 10},
			{"id": 2, "name": "Bob", "team": "blue", "score": 7},
			{"id": 3, "name": "Cid", "team": "red", "score": 3},
			{"id": 4, "name": "Dan", "team": "blue", "score": 12}
		]
	}
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(filename, []byte(content), 0644))
	return filename
}

func runDvcat(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPrintItems(t *testing.T) {
	filename := writeFile(t, "players.yaml", playersYaml)

	out, err := runDvcat(t, filename)
	require.NoError(t, err)

	expected := `{"id":1,"name":"Ada","score":10,"team":"red"}
{"id":2,"name":"Bob","score":7,"team":"blue"}
{"id":3,"name":"Cid","score":3,"team":"red"}
{"id":4,"name":"Dan","score":12,"team":"blue"}
`
	assert.Equal(t, expected, out)
}

func TestFilterAndSort(t *testing.T) {
	filename := writeFile(t, "players.json", playersJson)

	out, err := runDvcat(t, filename,
		"--path", "data.players",
		"--filter", `{"score":{"$gt":5}}`,
		"--sort", "score",
		"--desc",
	)
	require.NoError(t, err)

	expected := `{"id":4,"name":"Dan","score":12,"team":"blue"}
{"id":1,"name":"Ada","score":10,"team":"red"}
{"id":2,"name":"Bob","score":7,"team":"blue"}
`
	assert.Equal(t, expected, out)
}

func TestSearch(t *testing.T) {
	filename := writeFile(t, "players.yaml", playersYaml)

	out, err := runDvcat(t, filename, "--search", "BLUE", "--sort", "name", "--fast")
	require.NoError(t, err)

	expected := `{"id":2,"name":"Bob","score":7,"team":"blue"}
{"id":4,"name":"Dan","score":12,"team":"blue"}
`
	assert.Equal(t, expected, out)
}

func TestGroupWithTotals(t *testing.T) {
	filename := writeFile(t, "players.yaml", playersYaml)

	out, err := runDvcat(t, filename, "--group", "team", "--sum", "score", "--avg", "score")
	require.NoError(t, err)

	expected := `- blue (2)
  {"id":2,"name":"Bob","score":7,"team":"blue"}
  {"id":4,"name":"Dan","score":12,"team":"blue"}
  = avg(score)=9.5 sum(score)=19
- red (2)
  {"id":1,"name":"Ada","score":10,"team":"red"}
  {"id":3,"name":"Cid","score":3,"team":"red"}
  = avg(score)=6.5 sum(score)=13
`
	assert.Equal(t, expected, out)
}

func TestCollapsedGroups(t *testing.T) {
	filename := writeFile(t, "players.yaml", playersYaml)

	out, err := runDvcat(t, filename, "--group", "team", "--collapsed", "--max", "score")
	require.NoError(t, err)

	assert.Equal(t, "+ blue (2)\n+ red (2)\n", out)
}

func TestPaging(t *testing.T) {
	filename := writeFile(t, "players.yaml", playersYaml)

	out, err := runDvcat(t, filename, "--sort", "score", "--page-size", "3", "--page", "1")
	require.NoError(t, err)

	expected := `{"id":4,"name":"Dan","score":12,"team":"blue"}
page 2/2, 4 rows
`
	assert.Equal(t, expected, out)
}

func TestCustomId(t *testing.T) {
	filename := writeFile(t, "codes.json", `[{"code":"b"},{"code":"a"}]`)

	out, err := runDvcat(t, filename, "--id", "code", "--sort", "code")
	require.NoError(t, err)

	assert.Equal(t, "{\"code\":\"a\"}\n{\"code\":\"b\"}\n", out)
}

func TestErrors(t *testing.T) {
	yamlFile := writeFile(t, "players.yaml", playersYaml)

	t.Run("missing file", func(t *testing.T) {
		_, err := runDvcat(t, filepath.Join(t.TempDir(), "nope.json"))
		assert.ErrorContains(t, err, "read dataset")
	})

	t.Run("bad json", func(t *testing.T) {
		_, err := runDvcat(t, writeFile(t, "bad.json", `[{"id":`))
		assert.ErrorContains(t, err, "not valid JSON")
	})

	t.Run("not a list", func(t *testing.T) {
		_, err := runDvcat(t, writeFile(t, "object.json", `{"id":1}`))
		assert.ErrorContains(t, err, "expected a list of items")
	})

	t.Run("unknown path", func(t *testing.T) {
		_, err := runDvcat(t, yamlFile, "--path", "nothing.here")
		assert.ErrorContains(t, err, "path 'nothing.here' not found")
	})

	t.Run("bad filter", func(t *testing.T) {
		_, err := runDvcat(t, yamlFile, "--filter", "{")
		assert.ErrorContains(t, err, "bad --filter")
	})

	t.Run("duplicated ids", func(t *testing.T) {
		_, err := runDvcat(t, writeFile(t, "dup.json", `[{"id":1},{"id":1}]`))
		assert.ErrorContains(t, err, "duplicate id")
	})

	t.Run("aggregator without group", func(t *testing.T) {
		_, err := runDvcat(t, yamlFile, "--sum", "score")
		assert.ErrorContains(t, err, "aggregators need at least one --group")
	})
}
