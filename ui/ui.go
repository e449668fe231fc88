package ui

import (
	"encoding/json"
	"io"
)

// Severity classifies the visual weight of a piece of inline text, mirroring
// the output methods on UI. Data consumers (JSON, tests) see plain text.
type Severity uint8

const (
	SeverityInfo     Severity = iota // plain
	SeveritySuccess                  // green, passed
	SeverityWarn                     // yellow, skipped or changed
	SeverityError                    // red, failed
	SeverityCritical                 // bold
)

// StyledText pairs a plain string with a Severity annotation. It marshals
// as the plain string.
type StyledText struct {
	Text     string
	Severity Severity
}

func (s StyledText) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Text)
}

// UI is the output surface of every asset-info command.
//
// Production code uses TerminalUI; tests use RecordingUI, which captures
// every call so that command output can be asserted without parsing ANSI.
// Use [UI.Indent] to get a child UI one level deeper; the child shares the
// parent's writer.
type UI interface {
	// Style returns t coloured according to its Severity, or the plain text
	// when colours are disabled.
	//
	//	u.Info("assets: %s", u.Style(ui.StyledText{Text: "ok", Severity: ui.SeveritySuccess}))
	Style(t StyledText) string

	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	// Error writes a failure in red. It does not exit.
	Error(format string, args ...any)
	Critical(format string, args ...any)

	// Section writes a separator centred around title, e.g.
	// "=============== consistency (2) ===============".
	Section(title string)

	// KeyValue renders an aligned 2-column block.
	KeyValue(rows [][2]string)

	// Table renders a bordered table with a header row.
	Table(headers []string, rows [][]string)

	// TableWithGroups renders a bordered table where each group of rows is
	// separated from the next by a divider.
	TableWithGroups(headers []string, groups [][][]string)

	// Spinner starts an animated spinner and returns its stop function. It
	// is a no-op outside a terminal.
	//
	//	stop := u.Spinner("Deriving images...")
	//	defer stop()
	Spinner(msg string) func()

	Indent() UI

	// Writer returns an io.Writer that prepends the current indentation to
	// every line.
	Writer() io.Writer
}
