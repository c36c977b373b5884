package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/diegomarinho/jabref/internal/model"
)

// updateEditorContent re-renders the entry editor pane into the viewport.
// Called after every selection, focus, filter or size change.
func (m *Model) updateEditorContent() {
	if !m.ready {
		return
	}
	if m.external {
		// The host owns the editor; the pane area just mirrors the table
		// selection as a preview.
		if sel := m.selectedMessage(); sel != nil {
			m.viewport.SetContent(fmt.Sprintf("%s\n\n%s", titleStyle.Render("Message"), sel.Text))
		} else {
			m.viewport.SetContent("")
		}
		return
	}
	if !m.pane.visible || m.pane.entry == nil {
		m.viewport.SetContent(dimStyle.Render("Press Enter on a row to open the entry editor."))
		return
	}

	content, focusLine := renderEntryEditor(m.pane)
	m.viewport.SetContent(content)
	if focusLine >= 0 {
		offset := focusLine - 2
		if offset < 0 {
			offset = 0
		}
		m.viewport.SetYOffset(offset)
	}
}

// renderEntryEditor renders the pane's entry with the focused field
// highlighted, followed by the syntax-highlighted raw source. It returns
// the rendered text and the line index of the focused field (-1 if none).
func renderEntryEditor(p *editorPane) (string, int) {
	e := p.entry
	var b strings.Builder
	focusLine := -1

	header := e.CitationKey()
	if header == "" {
		header = "(no citation key)"
	}
	b.WriteString(fmt.Sprintf("%s %s\n\n", titleStyle.Render(header), dimStyle.Render("@"+e.Type)))
	line := 2

	if p.focused == model.FieldKey {
		focusLine = 0
	}
	for _, f := range e.FieldOrder() {
		v, _ := e.GetField(f)
		label := fmt.Sprintf("%-14s", f.DisplayName()+":")
		if f == p.focused {
			b.WriteString(focusedFieldStyle.Render(fmt.Sprintf("%s %s", label, v)))
			focusLine = line
		} else {
			b.WriteString(fmt.Sprintf("%s %s", keyStyle.Render(label), v))
		}
		b.WriteString("\n")
		line++
	}

	if e.Raw != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Source:"))
		b.WriteString("\n")
		b.WriteString(highlightBibtex(e.Raw))
	}
	return b.String(), focusLine
}

// highlightBibtex renders BibTeX source with terminal colors, falling back
// to the plain text on any highlighting failure.
func highlightBibtex(src string) string {
	lexer := lexers.Get("bibtex")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, src)
	if err != nil {
		return src
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return src
	}
	return buf.String()
}
