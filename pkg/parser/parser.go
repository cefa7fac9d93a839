// Package parser turns spec file lines into symlink specifications.
//
// Each non-blank, non-comment line holds exactly two tokens, target
// then link, separated by one or more whitespace characters. A token
// containing whitespace must be wrapped in double quotes; there is no
// escape mechanism for embedded quotes. A malformed line yields an
// error for that line only and parsing continues.
package parser

import (
	"bufio"
	"os"
	"strings"
	"unicode"

	"mksls/pkg/errors"
	"mksls/pkg/logging"
	"mksls/pkg/types"
)

// CommentPrefix marks a line as a comment.
const CommentPrefix = "//"

// Issue records one malformed line. The line is skipped; the rest of
// the file still parses.
type Issue struct {
	File string
	Line int
	Err  error
}

// ParseLine parses a single line. It returns (nil, nil) for blank and
// comment lines, a spec for well-formed lines, and an error carrying
// code PARSE_LINE otherwise.
func ParseLine(line string) (*types.SymlinkSpec, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, CommentPrefix) {
		return nil, nil
	}

	target, rest, err := scanToken(trimmed)
	if err != nil {
		return nil, err
	}
	if rest == "" {
		return nil, errors.New(errors.ErrParseLine, "expected two tokens, got one")
	}
	if !startsWithSpace(rest) {
		return nil, errors.New(errors.ErrParseLine, "tokens must be separated by whitespace")
	}

	link, rest, err := scanToken(strings.TrimLeftFunc(rest, unicode.IsSpace))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(rest) != "" {
		return nil, errors.Newf(errors.ErrParseLine, "unexpected trailing input %q", strings.TrimSpace(rest))
	}

	return &types.SymlinkSpec{Target: target, Link: link}, nil
}

// ParseFile reads a spec file line by line. Malformed lines are
// collected as issues; only a failure to open or read the file itself
// is returned as an error, and even that is local to this file as far
// as the runner is concerned.
func ParseFile(path string) ([]types.SymlinkSpec, []Issue, error) {
	logger := logging.GetLogger("parser")

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrParseRead, "failed to open %s", path)
	}
	defer func() { _ = f.Close() }()

	var (
		specs  []types.SymlinkSpec
		issues []Issue
	)

	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		spec, err := ParseLine(sc.Text())
		if err != nil {
			issues = append(issues, Issue{File: path, Line: lineNo, Err: err})
			continue
		}
		if spec != nil {
			specs = append(specs, *spec)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrParseRead, "failed to read %s", path)
	}

	logger.Debug().Str("file", path).Int("specs", len(specs)).Int("issues", len(issues)).Msg("parsed spec file")
	return specs, issues, nil
}

// scanToken consumes one token from the start of s and returns it with
// the unconsumed remainder. Quoted tokens have their quotes stripped.
func scanToken(s string) (string, string, error) {
	if s[0] == '"' {
		end := strings.IndexByte(s[1:], '"')
		if end < 0 {
			return "", "", errors.New(errors.ErrParseLine, "unterminated quote")
		}
		tok := s[1 : 1+end]
		if tok == "" {
			return "", "", errors.New(errors.ErrParseLine, "empty quoted token")
		}
		rest := s[2+end:]
		if rest != "" && !startsWithSpace(rest) {
			return "", "", errors.Newf(errors.ErrParseLine, "unexpected character after closing quote in %q", s)
		}
		return tok, rest, nil
	}

	i := strings.IndexFunc(s, unicode.IsSpace)
	tok := s
	rest := ""
	if i >= 0 {
		tok = s[:i]
		rest = s[i:]
	}
	// A quote inside a bare token cannot be part of a valid path;
	// there is no escape syntax
	if strings.ContainsRune(tok, '"') {
		return "", "", errors.Newf(errors.ErrParseLine, "unexpected quote inside token %q", tok)
	}
	return tok, rest, nil
}

func startsWithSpace(s string) bool {
	for _, r := range s {
		return unicode.IsSpace(r)
	}
	return false
}
