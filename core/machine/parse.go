package machine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/tapetools/tapeconv/core/errors"
)

// tableLexer tokenizes the table body. Comments run from ";" to end of
// line; newlines are significant because a transition must fit on one line.
var tableLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `;[^\n]*`},
	{Name: "Newline", Pattern: `\n`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "Field", Pattern: `[^ \t\r\n;]+`},
})

// lineGrammar is one transition row: a run of whitespace-separated fields.
// Field-count and field-shape checks happen after parsing so the error
// messages can say exactly what was wrong.
//
//nolint:govet // participle grammar tags are not standard struct tags
type lineGrammar struct {
	Pos    lexer.Position
	Fields []string `parser:"@Field+"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type tableGrammar struct {
	Lines []*lineGrammar `parser:"( @@ Newline | Newline )*"`
}

// tableParser is the participle parser for the transition rows.
var tableParser = participle.MustBuild[tableGrammar](
	participle.Lexer(tableLexer),
	participle.Elide("Comment", "Whitespace"),
)

// Parse parses a complete table file: a model tag header (";I" or ";S")
// on the first non-empty line, then one five-field transition per line.
func Parse(src string) (*Machine, error) {
	header, body, offset, err := splitHeader(src)
	if err != nil {
		return nil, err
	}
	model, err := ParseModelTag(header)
	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	parsed, err := tableParser.ParseString("", body)
	if err != nil {
		return nil, errors.NewTransition(parseErrorLine(err)+offset, "", err.Error())
	}

	transitions := make([]Transition, 0, len(parsed.Lines))
	for _, line := range parsed.Lines {
		t, err := buildTransition(line, offset)
		if err != nil {
			return nil, err
		}
		transitions = append(transitions, t)
	}

	return New(model, transitions)
}

// splitHeader peels the model tag off the first non-empty line and returns
// it together with the remaining body text and the number of lines consumed.
func splitHeader(src string) (header, body string, consumed int, err error) {
	rest := src
	for len(rest) > 0 {
		line := rest
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i], rest[i+1:]
		} else {
			rest = ""
		}
		consumed++
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		return trimmed, rest, consumed, nil
	}
	return "", "", consumed, errors.NewModelTag("")
}

func buildTransition(line *lineGrammar, offset int) (Transition, error) {
	lineNo := line.Pos.Line + offset
	if len(line.Fields) != 5 {
		msg := fmt.Sprintf("expected 5 fields, got %d", len(line.Fields))
		return Transition{}, errors.NewTransition(lineNo, strings.Join(line.Fields, " "), msg)
	}

	from, err := parseState(line, lineNo, line.Fields[0])
	if err != nil {
		return Transition{}, err
	}
	read, err := parseSymbol(line, lineNo, line.Fields[1])
	if err != nil {
		return Transition{}, err
	}
	write, err := parseSymbol(line, lineNo, line.Fields[2])
	if err != nil {
		return Transition{}, err
	}
	dir, err := ParseDirection(line.Fields[3])
	if err != nil {
		msg := fmt.Sprintf("direction %q must be \"l\" or \"r\"", line.Fields[3])
		return Transition{}, errors.NewTransition(lineNo, strings.Join(line.Fields, " "), msg)
	}
	to, err := parseState(line, lineNo, line.Fields[4])
	if err != nil {
		return Transition{}, err
	}

	return Transition{From: from, Read: read, Write: write, Dir: dir, To: to}, nil
}

func parseState(line *lineGrammar, lineNo int, field string) (State, error) {
	n, err := strconv.Atoi(field)
	if err != nil || n < 0 {
		msg := fmt.Sprintf("state %q must be a non-negative integer", field)
		return 0, errors.NewTransition(lineNo, strings.Join(line.Fields, " "), msg)
	}
	return State(n), nil
}

func parseSymbol(line *lineGrammar, lineNo int, field string) (Symbol, error) {
	if utf8.RuneCountInString(field) != 1 {
		msg := fmt.Sprintf("symbol %q must be a single character", field)
		return 0, errors.NewTransition(lineNo, strings.Join(line.Fields, " "), msg)
	}
	r, _ := utf8.DecodeRuneInString(field)
	return Symbol(r), nil
}

// parseErrorLine extracts the line number from a participle error, if any.
func parseErrorLine(err error) int {
	var perr participle.Error
	if errors.As(err, &perr) {
		return perr.Position().Line
	}
	return 0
}
