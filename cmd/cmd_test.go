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

	"github.com/abhisek/wordpath/internal/errs"
	"github.com/abhisek/wordpath/internal/goals"
	"github.com/abhisek/wordpath/internal/vocab"
)

// run executes the root command against a temp database and returns stdout.
func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--db", db, "--plain", "--log", "prod"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestWrite_Formats(t *testing.T) {
	v := struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
		Flag  string `json:"flag"`
	}{"first", 2, "true"}

	var b bytes.Buffer
	require.NoError(t, write(&b, formatText, v, "plain text\n"))
	assert.Equal(t, "plain text\n", b.String())

	b.Reset()
	require.NoError(t, write(&b, formatJSON, v, ""))
	assert.JSONEq(t, `{"name":"first","count":2,"flag":"true"}`, b.String())

	b.Reset()
	require.NoError(t, write(&b, formatYAML, v, ""))
	assert.Equal(t, "name: first\ncount: 2\nflag: \"true\"\n", b.String())

	assert.Error(t, write(&b, "xml", v, ""))
}

func TestReadAnswers(t *testing.T) {
	p := filepath.Join(t.TempDir(), "answers.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
q_0: {answer: Want, time_spent: 3.5}
q_5: {answer: I want drink, time_spent: 6, used_hints: 1}
`), 0o644))

	answers, err := readAnswers(p)
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, "I want drink", answers["q_5"].Answer)
	assert.Equal(t, 1, answers["q_5"].UsedHints)
	assert.Equal(t, 3.5, answers["q_0"].TimeSpent)

	_, err = readAnswers("")
	assert.True(t, errs.IsValidation(err))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("q_0: {answr: Want}\n"), 0o644))
	_, err = readAnswers(bad)
	assert.True(t, errs.IsValidation(err))
}

func TestSetsListJSON(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	out, err := run(t, db, "sets", "list", "--level", "", "--format", "json")
	require.NoError(t, err)

	var sets []vocab.Set
	require.NoError(t, json.Unmarshal([]byte(out), &sets))
	require.NotEmpty(t, sets)
	assert.Equal(t, vocab.LevelBeginner, sets[0].Level)
}

func TestGoalLifecycle(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	out, err := run(t, db, "goal", "create", "u1", "--title", "Request items",
		"--target", "2026-12-31", "--milestone", "Use want", "--milestone", "Use more", "--format", "json")
	require.NoError(t, err)

	var g goals.Goal
	require.NoError(t, json.Unmarshal([]byte(out), &g))
	require.Len(t, g.Milestones, 2)

	_, err = run(t, db, "goal", "progress", g.ID, g.Milestones[0].ID, "40", "--format", "text")
	require.NoError(t, err)
	out, err = run(t, db, "goal", "progress", g.ID, g.Milestones[1].ID, "60", "--format", "json")
	require.NoError(t, err)

	var updated goals.Goal
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	assert.InDelta(t, 50.0, updated.Progress, 1e-9)
	assert.False(t, updated.IsCompleted)

	out, err = run(t, db, "goal", "complete", g.ID, "--format", "text")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "completed"))

	_, err = run(t, db, "goal", "progress", g.ID, g.Milestones[0].ID, "10", "--format", "text")
	assert.True(t, errs.IsValidation(err))
}

func TestLoadCatalog(t *testing.T) {
	b, err := loadCatalog("")
	require.NoError(t, err)
	assert.NotEmpty(t, b.Sets)

	_, err = loadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestAssessTake_BadGoalLinkRecordsNothing(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	answers := filepath.Join("..", "examples", "answers-first-words.yaml")

	_, err := run(t, db, "assess", "take", "u1", "first-words", "--answers", answers,
		"--goal", "no-such-goal", "--milestone", "m1", "--format", "json")
	assert.True(t, errs.IsNotFound(err))

	out, err := run(t, db, "assess", "history", "u1", "first-words", "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestMasteryList(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	_, err := run(t, db, "mastery", "set", "u1", "first-words", "stop", "mastered")
	require.NoError(t, err)
	_, err = run(t, db, "mastery", "set", "u1", "first-words", "want", "mastered")
	require.NoError(t, err)
	_, err = run(t, db, "mastery", "set", "u1", "first-words", "more", "learning")
	require.NoError(t, err)

	out, err := run(t, db, "mastery", "list", "u1", "first-words", "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `["want","stop"]`, out)

	out, err = run(t, db, "mastery", "list", "u2", "first-words", "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
}

func TestVersion(t *testing.T) {
	out, err := run(t, filepath.Join(t.TempDir(), "cli.db"), "version")
	require.NoError(t, err)
	assert.Equal(t, "wordpath (devel)\n", out)
}
