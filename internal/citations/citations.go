// Package citations renders deterministic source listings for answers.
package citations

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"docqa/internal/models"
)

// FormatCitations groups the chunks by filename and renders one bullet line
// per file, sorted alphabetically, with collapsed page ranges where page
// metadata exists.
func FormatCitations(chunks []models.Chunk) string {
	if len(chunks) == 0 {
		return ""
	}

	pagesByFile := make(map[string]map[int]struct{})
	for _, c := range chunks {
		name := c.Metadata.Filename
		if name == "" {
			name = "Unknown"
		}
		if _, ok := pagesByFile[name]; !ok {
			pagesByFile[name] = make(map[int]struct{})
		}
		if c.Metadata.Page > 0 {
			pagesByFile[name][c.Metadata.Page] = struct{}{}
		}
	}

	names := make([]string, 0, len(pagesByFile))
	for name := range pagesByFile {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		pages := make([]int, 0, len(pagesByFile[name]))
		for p := range pagesByFile[name] {
			pages = append(pages, p)
		}
		sort.Ints(pages)

		if len(pages) > 0 {
			lines = append(lines, fmt.Sprintf("• %s (pages %s)", name, FormatPageRanges(pages)))
		} else {
			lines = append(lines, fmt.Sprintf("• %s", name))
		}
	}
	return strings.Join(lines, "\n")
}

// FormatPageRanges collapses a sorted page list into minimal contiguous
// ranges, e.g. [1 2 3 5 7 8 9] -> "1–3, 5, 7–9".
func FormatPageRanges(pages []int) string {
	if len(pages) == 0 {
		return ""
	}

	var ranges []string
	start, end := pages[0], pages[0]
	flush := func() {
		if start == end {
			ranges = append(ranges, strconv.Itoa(start))
		} else {
			ranges = append(ranges, fmt.Sprintf("%d–%d", start, end))
		}
	}

	for _, p := range pages[1:] {
		if p == end+1 {
			end = p
			continue
		}
		flush()
		start, end = p, p
	}
	flush()

	return strings.Join(ranges, ", ")
}

// CreateSourcesSection wraps the citation list with a header for appending
// to an answer. Zero chunks yield an empty string, never a dangling header.
func CreateSourcesSection(chunks []models.Chunk) string {
	cites := FormatCitations(chunks)
	if cites == "" {
		return ""
	}
	return "\n\nSources:\n\n" + cites
}
