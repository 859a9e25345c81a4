package tui

import "github.com/gdamore/tcell/v2"

// Theme is the color table for one look.
type Theme struct {
	Name        string
	Background  tcell.Color
	Text        tcell.Color
	Globe       tcell.Color
	Country     tcell.Color
	Selected    tcell.Color
	Listener    tcell.Color
	Panel       tcell.Color
	Tracks      tcell.Color
	Separator   tcell.Color
	StatusOk    tcell.Color
	StatusError tcell.Color
}

var themes = map[string]*Theme{
	"default": {
		Name:        "default",
		Background:  tcell.ColorBlack,
		Text:        tcell.ColorWhite,
		Globe:       tcell.ColorGreen,
		Country:     tcell.ColorYellow,
		Selected:    tcell.ColorRed,
		Listener:    tcell.ColorAqua,
		Panel:       tcell.ColorYellow,
		Tracks:      tcell.ColorAqua,
		Separator:   tcell.ColorGray,
		StatusOk:    tcell.ColorGreen,
		StatusError: tcell.ColorRed,
	},
	"mono": {
		Name:        "mono",
		Background:  tcell.ColorBlack,
		Text:        tcell.ColorWhite,
		Globe:       tcell.ColorWhite,
		Country:     tcell.ColorWhite,
		Selected:    tcell.ColorWhite,
		Listener:    tcell.ColorWhite,
		Panel:       tcell.ColorWhite,
		Tracks:      tcell.ColorWhite,
		Separator:   tcell.ColorWhite,
		StatusOk:    tcell.ColorWhite,
		StatusError: tcell.ColorWhite,
	},
}

// ThemeByName returns the named theme, falling back to the default table.
func ThemeByName(name string) *Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["default"]
}
