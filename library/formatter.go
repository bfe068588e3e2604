package library

import (
	"fmt"
	"strings"
)

// FormatEntries formats library entries for console display
func FormatEntries(entries []Entry) string {
	if len(entries) == 0 {
		return "No movies found"
	}

	var sb strings.Builder

	tracked := 0
	for _, e := range entries {
		if e.Tracked {
			tracked++
		}
	}
	fmt.Fprintf(&sb, "\nRadarr library (%d of %d tracked):\n\n", tracked, len(entries))

	for i, e := range entries {
		isLast := i == len(entries)-1
		prefix := "├"
		indent := "│   "
		if isLast {
			prefix = "╰"
			indent = "    "
		}

		title := e.Title
		if e.Year > 0 {
			title = fmt.Sprintf("%s (%d)", e.Title, e.Year)
		}
		fmt.Fprintf(&sb, "%s── %s\n", prefix, title)
		fmt.Fprintf(&sb, "%s%s\n", indent, entryStatus(e))
		if e.Path != "" {
			fmt.Fprintf(&sb, "%sPath: %s\n", indent, e.Path)
		}

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

func entryStatus(e Entry) string {
	if !e.Tracked {
		return fmt.Sprintf("TMDB: %d | Not in Radarr", e.TMDBID)
	}

	parts := []string{
		fmt.Sprintf("TMDB: %d", e.TMDBID),
		fmt.Sprintf("Radarr: %d", e.RadarrID),
	}
	if e.Monitored {
		parts = append(parts, "Monitored")
	} else {
		parts = append(parts, "Unmonitored")
	}
	if e.HasFile {
		parts = append(parts, "Downloaded")
	} else {
		parts = append(parts, "Missing")
	}
	if !e.Added.IsZero() {
		parts = append(parts, "Added: "+e.Added.Format("2006-01-02"))
	}
	return strings.Join(parts, " | ")
}
