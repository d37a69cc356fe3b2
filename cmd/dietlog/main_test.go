package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestRootHelp(t *testing.T) {
	out, _, err := run(t, "--help")
	require.NoError(t, err)
	for _, sub := range []string{"serve", "migrate", "targets"} {
		assert.Contains(t, out, sub)
	}
}

func TestTargetsCommand(t *testing.T) {
	out, _, err := run(t, "targets",
		"--weight", "80", "--height", "180", "--age", "30",
		"--sex", "male", "--activity", "Medium", "--goal", "maintenance")
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"Calories: 2759.00 kcal",
		"Protein:  206.92 g",
		"Fat:      76.64 g",
		"Carbs:    310.39 g",
		"",
	}, "\n"), out)
}

func TestTargetsCommand_UnknownActivityWarns(t *testing.T) {
	out, errOut, err := run(t, "targets", "--weight", "80", "--height", "180", "--age", "30", "--activity", "extreme")
	require.NoError(t, err)
	assert.Contains(t, out, "Calories: 2136.00 kcal")
	assert.Contains(t, errOut, "unknown activity level")
}

func TestTargetsCommand_Errors(t *testing.T) {
	_, _, err := run(t, "targets", "--weight", "0", "--height", "180")
	assert.Error(t, err)

	_, _, err = run(t, "targets", "--weight", "abc", "--height", "180")
	assert.ErrorContains(t, err, "invalid --weight")

	_, _, err = run(t, "targets", "--height", "180")
	assert.Error(t, err, "weight is required")
}

func TestMigrateRequiresDatabase(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DATABASE_URL", "")
	_, _, err := run(t, "migrate")
	assert.ErrorContains(t, err, "DATABASE_URL")
}
