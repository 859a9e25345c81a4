package tui

import (
	"fmt"
	"strings"

	"github.com/irokhan/earth-trending/internal/trends"
)

// The story card is fixed at 45 columns, which leaves an approximately
// square globe area on an 80x24 terminal.
const panelWidth = 45

// renderStoryCard lays out the side panel for the selected country: status
// header, country identity, and the ranked track list.
func renderStoryCard(country trends.CountryTrend, hasCountry, feedUp, geoipUp bool, height int) []string {
	lines := make([]string, height)
	if height < 2 {
		return lines
	}

	feedStatus := "!"
	if feedUp {
		feedStatus = "+"
	}
	geoipStatus := "!"
	if geoipUp {
		geoipStatus = "+"
	}
	lines[0] = clipPanel(fmt.Sprintf("EARTH TRENDING | feed [%s]  geoip [%s]", feedStatus, geoipStatus))
	lines[1] = strings.Repeat("-", panelWidth)

	if !hasCountry {
		if height > 3 {
			lines[3] = clipPanel("  waiting for trend data...")
		}
		return lines
	}

	if height > 2 {
		lines[2] = clipPanel(fmt.Sprintf("%s - %s", country.Code, country.Name))
	}

	row := 4
	for _, track := range country.Tracks {
		// Two lines per track: title, then artist and play count.
		if row+1 >= height-1 {
			break
		}
		lines[row] = clipPanel(fmt.Sprintf("%2d. %s", track.Rank, track.Title))
		lines[row+1] = clipPanel(fmt.Sprintf("    %-24s %15s",
			clip(track.Artist, 24), formatPlays(track.Plays)+" plays"))
		row += 2
	}

	if height > 5 {
		lines[height-1] = clipPanel("  [<-/->] country   [q] quit")
	}

	return lines
}

func clipPanel(s string) string {
	return clip(s, panelWidth)
}

func clip(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// formatPlays groups thousands with commas: 1234567 -> "1,234,567".
func formatPlays(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
