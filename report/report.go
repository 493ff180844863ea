// Package report prints the console listing of a run: per-type results, a
// flattened summary of bridged methods and aggregate statistics.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/chazu/jtj/bridge"
)

// Color controls styling of the console report.
type Color string

const (
	ColorAuto   Color = "auto"
	ColorAlways Color = "always"
	ColorNever  Color = "never"
)

// ParseColor validates a color mode. Empty means ColorAuto.
func ParseColor(s string) (Color, error) {
	switch c := Color(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return c, nil
	}
	return "", fmt.Errorf("unknown report color %q (want auto, always or never)", s)
}

// Reporter writes the report to one writer. Styles degrade to plain text
// when the writer is not a terminal.
type Reporter struct {
	w io.Writer

	header     lipgloss.Style
	compatible lipgloss.Style
	rejected   lipgloss.Style
	static     lipgloss.Style
	dim        lipgloss.Style
}

// New returns a Reporter bound to w.
func New(w io.Writer, color Color) *Reporter {
	r := lipgloss.NewRenderer(w)
	switch color {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}
	return &Reporter{
		w:          w,
		header:     r.NewStyle().Bold(true),
		compatible: r.NewStyle().Foreground(lipgloss.Color("2")),
		rejected:   r.NewStyle().Foreground(lipgloss.Color("1")),
		static:     r.NewStyle().Foreground(lipgloss.Color("3")),
		dim:        r.NewStyle().Faint(true),
	}
}

// Discard is a Reporter that prints nothing.
func Discard() *Reporter { return New(io.Discard, ColorNever) }

func (r *Reporter) printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}

func (r *Reporter) staticMarker(static bool) string {
	if !static {
		return ""
	}
	return " " + r.static.Render("[STATIC]")
}

// Archive announces the archive being analysed.
func (r *Reporter) Archive(path string) {
	r.printf("%s %s\n\n", r.header.Render("Archive:"), path)
}

// TypeSection lists the members of one type in class-file order.
func (r *Reporter) TypeSection(res bridge.TypeResult) {
	owner := res.Name.String()
	r.printf("%s\n", r.header.Render(owner))
	r.printf("Methods:\n")
	for _, o := range res.Listing() {
		if o.Accepted {
			d := res.Accepted[o.Index]
			r.printf("  %s %s.%s %s%s\n", r.compatible.Render("COMPATIBLE"),
				owner, d.Signature(), d.Return().Label(), r.staticMarker(d.Static()))
			continue
		}
		rej := res.Rejected[o.Index]
		r.printf("  %s %s.%s %s\n", r.rejected.Render("REJECTED"),
			owner, rej.Member, r.dim.Render("("+string(rej.Reason)+")"))
	}
	r.printf("\n")
}

// TypeSkipped notes a type that could not be loaded or named.
func (r *Reporter) TypeSkipped(name string, err error) {
	r.printf("%s\n", r.header.Render(name))
	r.printf("  %s\n\n", r.rejected.Render(fmt.Sprintf("(could not load type: %v)", err)))
}

// TypeIgnored notes a type that is never bridged, such as an anonymous class.
func (r *Reporter) TypeIgnored(name string, err error) {
	r.printf("%s\n\n", r.dim.Render(fmt.Sprintf("Skipping %s: %v", name, err)))
}

// Summary lists every bridged method, owner by owner.
func (r *Reporter) Summary(m *bridge.Model) {
	r.printf("%s\n", r.header.Render("SUMMARY:"))
	for _, d := range m.All() {
		r.printf("%s %s.%s%s\n", d.Return().Label(), d.Owner(), d.Signature(), r.staticMarker(d.Static()))
	}
}

// Generated reports one written file.
func (r *Reporter) Generated(path string) {
	r.printf("%s %s\n", r.dim.Render("Generated:"), path)
}

// Stats prints the aggregate counters.
func (r *Reporter) Stats(s Stats) {
	r.printf("\n")
	r.printf("COMPATIBLE METHODS: %d (%d%%)\n", s.CompatibleMethods, s.CompatiblePercent())
	r.printf("CONVERTED FILES: %d (%d%%)\n", s.ConvertedTypes, s.ConvertedPercent())
	r.printf("TOTAL FILES: %d\n", s.TotalTypes)
	r.printf("TOTAL METHODS: %d\n", s.TotalMethods)
}
