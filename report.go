package stars

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
)

// Format selects how WriteReport renders results.
type Format int

const (
	// FormatTable renders a bordered Repository/Stars/URL table.
	FormatTable Format = iota
	// FormatMarkdown renders one markdown bullet link per result.
	FormatMarkdown
)

func (f Format) String() string {
	switch f {
	case FormatMarkdown:
		return "markdown"
	default:
		return "table"
	}
}

// MarkdownRequested reports whether args contain --markdown or -m. Matching
// is exact and case-sensitive; every other argument is ignored.
func MarkdownRequested(args []string) bool {
	for _, arg := range args {
		if arg == "--markdown" || arg == "-m" {
			return true
		}
	}
	return false
}

// FormatFromArgs picks the report format from command line arguments.
func FormatFromArgs(args []string) Format {
	if MarkdownRequested(args) {
		return FormatMarkdown
	}
	return FormatTable
}

// WriteReport sorts a copy of results by stars, highest first, and writes it
// to w in the given format.
func WriteReport(w io.Writer, results []Result, format Format) error {
	sorted := make([]Result, len(results))
	copy(sorted, results)
	SortByStars(sorted)

	if format == FormatMarkdown {
		return writeMarkdown(w, sorted)
	}
	writeTable(w, sorted)
	return nil
}

// writeMarkdown puts the detail column in the link target even for failed
// lookups, so those lines link to the error text.
func writeMarkdown(w io.Writer, results []Result) error {
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "- [%s](%s) (%d⭐)\n", r.Repository, r.Detail(), r.Stars); err != nil {
			return errors.Wrap(err, "error writing markdown report")
		}
	}
	return nil
}

func writeTable(w io.Writer, results []Result) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Repository", "Stars", "URL"})
	for _, r := range results {
		table.Append([]string{
			r.Repository,
			strconv.FormatUint(uint64(r.Stars), 10),
			r.Detail(),
		})
	}
	table.Render()
}
