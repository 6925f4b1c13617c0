package render

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/kordes/rolodex/internal/contact"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

type tableRenderer struct{}

func (r *tableRenderer) Render(records []contact.Record) ([]byte, error) {
	var buf bytes.Buffer

	if len(records) == 0 {
		buf.WriteString(dimStyle.Render("no contacts") + "\n")
		return buf.Bytes(), nil
	}

	nameWidth := len("NAME")
	for _, rec := range records {
		if len(rec.Name) > nameWidth {
			nameWidth = len(rec.Name)
		}
	}

	fmt.Fprintf(&buf, "%s\n", headerStyle.Render(pad("NAME", nameWidth)+"  PHONE"))
	for _, rec := range records {
		fmt.Fprintf(&buf, "%s  %s\n", pad(rec.Name, nameWidth), rec.Phone)
	}
	return buf.Bytes(), nil
}

func pad(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}
