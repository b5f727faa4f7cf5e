package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/jrsteele09/storedesk/theme"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// printer writes headings and status lines in the colours of the theme.
type printer struct {
	out     io.Writer
	heading *color.Color
	success *color.Color
	muted   *color.Color
}

func newPrinter(out io.Writer, mode theme.Mode) *printer {
	p := &printer{
		out:     out,
		heading: color.New(color.Bold, color.FgCyan),
		success: color.New(color.FgGreen),
		muted:   color.New(color.FgHiBlack),
	}
	switch mode {
	case theme.Dark:
		p.heading = color.New(color.Bold, color.FgHiCyan)
		p.success = color.New(color.FgHiGreen)
		p.muted = color.New(color.FgWhite)
	case theme.Light:
		p.heading = color.New(color.Bold, color.FgBlue)
		p.muted = color.New(color.FgBlack)
	}

	colours := out == io.Writer(os.Stdout) && !color.NoColor
	for _, c := range []*color.Color{p.heading, p.success, p.muted} {
		if colours {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *printer) Header(format string, args ...any) {
	fmt.Fprintln(p.out, p.heading.Sprintf(format, args...))
}

func (p *printer) Success(format string, args ...any) {
	fmt.Fprintln(p.out, p.success.Sprintf("✓ "+format, args...))
}

func (p *printer) Info(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *printer) Muted(format string, args ...any) {
	fmt.Fprintln(p.out, p.muted.Sprintf(format, args...))
}

func (c *CLI) printerFor(w io.Writer) *printer {
	mode := theme.System
	if c.app != nil {
		mode = c.app.Theme.Current()
	}
	return newPrinter(w, mode)
}

// renderTable writes a borderless, left aligned table.
func renderTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
	table.Header(header)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
