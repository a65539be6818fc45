package report

import (
	"io"

	"github.com/fatih/color"
	"github.com/rodaine/table"
)

// Row describes one code block for [Table].
type Row struct {
	File    string
	Line    int
	Dialect string
	Lines   int
}

// Table prints rows as an aligned table with a FILE, LINE, DIALECT, LINES
// header.
func Table(w io.Writer, rows []Row, colored bool) {
	tbl := table.New("FILE", "LINE", "DIALECT", "LINES").WithWriter(w)

	if colored {
		header := color.New(color.FgGreen, color.Underline)
		header.EnableColor()

		tbl.WithHeaderFormatter(header.SprintfFunc())
	}

	for _, row := range rows {
		tbl.AddRow(row.File, row.Line, row.Dialect, row.Lines)
	}

	tbl.Print()
}
