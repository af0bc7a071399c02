package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/sadopc/folio/internal/editor"
	"github.com/sadopc/folio/internal/objref"
	"github.com/sadopc/folio/internal/upload"
)

var errNeedEditMode = errors.New("enter edit mode first (ctrl+e)")

// removeMarker in a file field clears the current file.
const removeMarker = "-"

// formStep forwards msg to an active form. It reports the outcome: done when
// the user submitted, cancelled on esc or abort.
func formStep(form *huh.Form, msg tea.Msg) (f *huh.Form, cmd tea.Cmd, done, cancelled bool) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		return nil, nil, false, true
	}
	m, cmd := form.Update(msg)
	if next, ok := m.(*huh.Form); ok {
		form = next
	}
	switch form.State {
	case huh.StateCompleted:
		return form, cmd, true, false
	case huh.StateAborted:
		return nil, nil, false, true
	}
	return form, cmd, false, false
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithShowHelp(true).WithShowErrors(true)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// describeMedia renders a stored reference for display.
func describeMedia(sess *editor.Session, ref string) string {
	switch {
	case ref == "":
		return "none"
	case objref.IsEphemeral(ref):
		if n := sess.Name(ref); n != "" {
			return "uploaded " + n
		}
		return "uploaded file"
	default:
		return ref
	}
}

// resolveMedia turns a form entry into a reference: links pass through,
// anything else is a local file attached for kind.
func resolveMedia(sess *editor.Session, input string, kind upload.Kind) (string, error) {
	return resolveMediaMax(sess, input, kind, kind.MaxBytes())
}

// resolveMediaMax is resolveMedia with a size limit in bytes for new files.
func resolveMediaMax(sess *editor.Session, input string, kind upload.Kind, maxBytes int64) (string, error) {
	input = strings.TrimSpace(input)
	switch {
	case input == "" || isLink(input):
		return input, nil
	case objref.IsEphemeral(input):
		if sess.Name(input) == "" {
			return "", fmt.Errorf("%s: %w", input, objref.ErrUnknownReference)
		}
		return input, nil
	}
	return sess.AttachFileMax(input, kind, maxBytes)
}

// resolveMediaList resolves each entry, stopping at the first failure and
// discarding what was attached before it.
func resolveMediaList(sess *editor.Session, inputs []string, kind upload.Kind) ([]string, error) {
	out := make([]string, 0, len(inputs))
	for _, in := range inputs {
		ref, err := resolveMedia(sess, in, kind)
		if err != nil {
			for _, r := range out {
				sess.DiscardUpload(r)
			}
			return nil, err
		}
		out = append(out, ref)
	}
	return out, nil
}

func errStatus(err error) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: err.Error(), isError: true} }
}
