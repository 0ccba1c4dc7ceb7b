package catalog

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableWidth keeps rendered tables narrow enough for a chat window.
const TableWidth = 50

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Width(TableWidth).
		Headers(headers...)
}

func render(title string, t *table.Table) string {
	return lipgloss.JoinVertical(lipgloss.Center, title, t.String())
}

// BookTables renders the book list as parts tables of roughly equal
// length, each small enough for one chat message.
func (c *Catalog) BookTables(parts int) []string {
	if parts < 1 {
		parts = 1
	}
	size := len(c.books)/parts + 1
	var out []string
	for start := 0; start < len(c.books); start += size {
		end := start + size
		if end > len(c.books) {
			end = len(c.books)
		}
		t := newTable("Skrót", "Nazwa", "Rozdziały")
		for _, b := range c.books[start:end] {
			t.Row(b.Abbrev, b.Name, strconv.Itoa(b.Chapters))
		}
		out = append(out, render("Wszystkie Księgi", t))
	}
	return out
}

// DeuteroTable renders the deuterocanonical codes with their descriptions.
func DeuteroTable() string {
	t := newTable("Siglum", "Opis")
	for _, d := range deuterocanonical {
		t.Row(d.Code, d.Description)
	}
	return render("Księgi Deuterokanoniczne", t)
}
