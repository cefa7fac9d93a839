package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mksls/pkg/errors"
	"mksls/pkg/types"
	"mksls/pkg/ui"
)

var conflictSpec = types.SymlinkSpec{Target: "/etc/foo.conf", Link: "/home/u/.foo"}

func TestResolveConflictChoices(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Choice
	}{
		{name: "skip", input: "s\n", want: types.Choice{Decision: types.DecisionSkip}},
		{name: "skip all", input: "S\n", want: types.Choice{Decision: types.DecisionSkip, All: true}},
		{name: "backup", input: "b\n", want: types.Choice{Decision: types.DecisionBackup}},
		{name: "backup all", input: "B\n", want: types.Choice{Decision: types.DecisionBackup, All: true}},
		{name: "overwrite", input: "o\n", want: types.Choice{Decision: types.DecisionOverwrite}},
		{name: "overwrite all", input: "O\n", want: types.Choice{Decision: types.DecisionOverwrite, All: true}},
		{name: "crlf input", input: "b\r\n", want: types.Choice{Decision: types.DecisionBackup}},
		{name: "choice without trailing newline", input: "s", want: types.Choice{Decision: types.DecisionSkip}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := NewConsole(strings.NewReader(tt.input), &out, ui.FormatText)

			choice, err := c.ResolveConflict(conflictSpec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, choice)
			assert.Contains(t, out.String(), "(?) /home/u/.foo -> /etc/foo.conf")
			assert.Contains(t, out.String(), "already exists")
		})
	}
}

func TestInvalidInputReprompts(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader("x\nq\no\n"), &out, ui.FormatText)

	choice, err := c.ResolveConflict(conflictSpec)
	require.NoError(t, err)
	assert.Equal(t, types.Choice{Decision: types.DecisionOverwrite}, choice)

	// Two bad answers, two complaints, three prompts
	assert.Equal(t, 2, strings.Count(out.String(), "Wrong input!"))
	assert.Equal(t, 3, strings.Count(out.String(), "[s]kip"))
}

func TestHelpShowsActionsAndReprompts(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader("h\ns\n"), &out, ui.FormatText)

	choice, err := c.ResolveConflict(conflictSpec)
	require.NoError(t, err)
	assert.Equal(t, types.Choice{Decision: types.DecisionSkip}, choice)
	assert.Contains(t, out.String(), "beware data loss")
}

func TestClosedInputIsAnError(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader(""), &out, ui.FormatText)

	_, err := c.ResolveConflict(conflictSpec)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrPromptRead))
}
