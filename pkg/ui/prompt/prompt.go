// Package prompt implements the interactive decision provider: one
// question per conflict, answered with a single character.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"mksls/pkg/errors"
	"mksls/pkg/types"
	"mksls/pkg/ui"
	"mksls/pkg/ui/output/styles"
)

const choiceLine = "    [s]kip [S]kip all [b]ackup [B]ackup all [o]verwrite [O]verwrite all [h]elp: "

const actionHelp = `    ----------
    [s]kip : Don't create the symlink and move on to the next one.
    [S]kip all : [s]kip for this conflict and all further ones.
    [b]ackup : Move the existing file into the backup directory, then make the symlink.
    [B]ackup all : [b]ackup for this conflict and all further ones.
    [o]verwrite : Replace the existing file with the symlink (beware data loss!)
    [O]verwrite all : [o]verwrite for this conflict and all further ones.
    ----------`

// Console prompts the operator on a reader/writer pair, normally
// stdin/stdout. It implements types.DecisionProvider.
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	format ui.Format
}

// NewConsole creates a console prompt. The format must already be
// resolved (not FormatAuto).
func NewConsole(in io.Reader, out io.Writer, format ui.Format) *Console {
	return &Console{in: bufio.NewReader(in), out: out, format: format}
}

// ResolveConflict announces the conflict and blocks until the operator
// enters a valid choice. Invalid input re-prompts without consuming
// the conflict; 'h' prints the action help and re-prompts.
func (c *Console) ResolveConflict(spec types.SymlinkSpec) (types.Choice, error) {
	header := fmt.Sprintf("(?) %s -> %s", spec.Link, spec.Target)
	if c.format == ui.FormatTerminal {
		header = styles.GetStyle("Conflict").Render(header)
	}
	fmt.Fprintln(c.out, header)
	fmt.Fprintf(c.out, "    A file of path %s already exists.\n", spec.Link)

	for {
		fmt.Fprint(c.out, choiceLine)

		input, err := c.in.ReadString('\n')
		if err != nil && input == "" {
			return types.Choice{}, errors.Wrap(err, errors.ErrPromptRead, "error reading your input")
		}

		switch strings.TrimRight(input, "\r\n") {
		case "s":
			return types.Choice{Decision: types.DecisionSkip}, nil
		case "S":
			return types.Choice{Decision: types.DecisionSkip, All: true}, nil
		case "b":
			return types.Choice{Decision: types.DecisionBackup}, nil
		case "B":
			return types.Choice{Decision: types.DecisionBackup, All: true}, nil
		case "o":
			return types.Choice{Decision: types.DecisionOverwrite}, nil
		case "O":
			return types.Choice{Decision: types.DecisionOverwrite, All: true}, nil
		case "h":
			fmt.Fprintln(c.out, actionHelp)
		default:
			fmt.Fprintln(c.out, "    Wrong input! Valid inputs are: s, S, b, B, o, O, h. Try again:")
		}
	}
}
