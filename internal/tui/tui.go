// Package tui renders the dot-field globe and the trending story card in a
// terminal.
package tui

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/irokhan/earth-trending/internal/dotfield"
	"github.com/irokhan/earth-trending/internal/geo"
	"github.com/irokhan/earth-trending/internal/trends"
)

// Options configures the terminal front end.
type Options struct {
	Theme        string
	Charset      string
	AspectRatio  float64
	SphereRadius float64
}

// TUI owns the tcell screen, the globe, and the story card panel.
type TUI struct {
	screen  tcell.Screen
	width   int
	height  int
	globe   *Globe
	theme   *Theme
	charset Charset

	aspectRatio  float64
	sphereRadius float64
	dots         []dotfield.DotRecord
	store        *trends.Store

	selected     int
	feedUp       bool
	geoipUp      bool
	globeChanged bool
	panelChanged bool
	mutex        sync.RWMutex
}

// New initialises the screen and lays out the globe next to the fixed-width
// story card.
func New(store *trends.Store, dots []dotfield.DotRecord, opts Options) (*TUI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	theme := ThemeByName(opts.Theme)
	screen.SetStyle(tcell.StyleDefault.Background(theme.Background).Foreground(theme.Text))
	screen.Clear()

	width, height := screen.Size()
	t := &TUI{
		screen:       screen,
		width:        width,
		height:       height,
		theme:        theme,
		charset:      ParseCharset(opts.Charset),
		aspectRatio:  opts.AspectRatio,
		sphereRadius: opts.SphereRadius,
		dots:         dots,
		store:        store,
		globeChanged: true,
		panelChanged: true,
	}
	t.globe = NewGlobe(t.globeWidth(), height, opts.AspectRatio, opts.SphereRadius, dots)
	return t, nil
}

// globeWidth is whatever the story card leaves over: total minus the panel,
// a separator column, and two columns of padding.
func (t *TUI) globeWidth() int {
	w := t.width - panelWidth - 3
	if w < 10 {
		w = 10
	}
	return w
}

// Close restores the terminal.
func (t *TUI) Close() {
	if t.screen != nil {
		t.screen.Fini()
	}
}

// HandleResize rebuilds the globe for the new screen size. The dot field is
// reused; only the screen radius changes.
func (t *TUI) HandleResize() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.width, t.height = t.screen.Size()
	t.globe = NewGlobe(t.globeWidth(), t.height, t.aspectRatio, t.sphereRadius, t.dots)
	t.globeChanged = true
	t.panelChanged = true
	t.screen.Clear()
}

// SetStatus updates the header indicators.
func (t *TUI) SetStatus(feedUp, geoipUp bool) {
	t.mutex.Lock()
	t.feedUp = feedUp
	t.geoipUp = geoipUp
	t.panelChanged = true
	t.mutex.Unlock()
}

// MarkGlobeChanged schedules a globe redraw on the next Render.
func (t *TUI) MarkGlobeChanged() {
	t.mutex.Lock()
	t.globeChanged = true
	t.mutex.Unlock()
}

// MarkPanelChanged schedules a story card redraw on the next Render.
func (t *TUI) MarkPanelChanged() {
	t.mutex.Lock()
	t.panelChanged = true
	t.mutex.Unlock()
}

func (t *TUI) cycleCountry(delta int) {
	t.mutex.Lock()
	t.selected += delta
	t.globeChanged = true
	t.panelChanged = true
	t.mutex.Unlock()
}

// markers assembles the overlay for the current snapshot: every country,
// every resolved listener, and the selected country on top.
func (t *TUI) markers() []Marker {
	countries := t.store.Countries()
	listeners := t.store.Listeners()

	markers := make([]Marker, 0, len(countries)+len(listeners)+1)
	for _, c := range countries {
		markers = append(markers, Marker{
			Point: geo.GeoPoint{Lat: c.Lat, Lon: c.Lon},
			Kind:  MarkCountry,
		})
	}
	for _, p := range listeners {
		markers = append(markers, Marker{Point: p, Kind: MarkListener})
	}
	if selected, ok := t.store.Country(t.selectedIndex()); ok {
		markers = append(markers, Marker{
			Point: geo.GeoPoint{Lat: selected.Lat, Lon: selected.Lon},
			Kind:  MarkSelected,
		})
	}
	return markers
}

func (t *TUI) selectedIndex() int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.selected
}

func (t *TUI) renderGlobe(rotation float64) {
	t.mutex.RLock()
	changed := t.globeChanged
	t.mutex.RUnlock()
	if !changed {
		return
	}

	screen, marks := t.globe.render(rotation, t.charset, t.markers())

	dotStyle := tcell.StyleDefault.Foreground(t.theme.Globe)
	markStyles := map[MarkKind]tcell.Style{
		MarkCountry:  tcell.StyleDefault.Foreground(t.theme.Country).Bold(true),
		MarkListener: tcell.StyleDefault.Foreground(t.theme.Listener),
		MarkSelected: tcell.StyleDefault.Foreground(t.theme.Selected).Bold(true),
	}

	for y := 0; y < t.globe.Height && y < t.height; y++ {
		for x := 0; x < t.globe.Width; x++ {
			ch := rune(' ')
			style := dotStyle
			if y < len(screen) && x < len(screen[y]) {
				ch = screen[y][x]
				if kind := marks[y][x]; kind != MarkNone {
					style = markStyles[kind]
				}
			}
			t.screen.SetContent(x, y, ch, nil, style)
		}
	}

	t.mutex.Lock()
	t.globeChanged = false
	t.mutex.Unlock()
}

func (t *TUI) renderPanel() {
	t.mutex.RLock()
	changed := t.panelChanged
	feedUp, geoipUp := t.feedUp, t.geoipUp
	t.mutex.RUnlock()
	if !changed {
		return
	}

	country, ok := t.store.Country(t.selectedIndex())
	lines := renderStoryCard(country, ok, feedUp, geoipUp, t.height)

	separatorX := t.globe.Width + 1
	startX := separatorX + 2

	separatorStyle := tcell.StyleDefault.Foreground(t.theme.Separator)
	for y := 0; y < t.height; y++ {
		t.screen.SetContent(separatorX, y, '|', nil, separatorStyle)
		for x := 0; x < panelWidth && startX+x < t.width; x++ {
			t.screen.SetContent(startX+x, y, ' ', nil, tcell.StyleDefault)
		}
	}

	headerStyle := tcell.StyleDefault.Foreground(t.theme.Panel).Bold(true)
	trackStyle := tcell.StyleDefault.Foreground(t.theme.Tracks)

	for y, line := range lines {
		if startX >= t.width {
			break
		}
		style := trackStyle
		if y <= 2 {
			style = headerStyle
		}
		t.drawText(startX, y, line, style)

		if y == 0 {
			t.colorStatusIndicators(startX, line, feedUp, geoipUp)
		}
	}

	t.mutex.Lock()
	t.panelChanged = false
	t.mutex.Unlock()
}

// colorStatusIndicators repaints the [+]/[!] characters in the header line
// with the ok/error colors.
func (t *TUI) colorStatusIndicators(startX int, line string, feedUp, geoipUp bool) {
	okStyle := tcell.StyleDefault.Foreground(t.theme.StatusOk).Bold(true)
	errStyle := tcell.StyleDefault.Foreground(t.theme.StatusError).Bold(true)

	first := strings.Index(line, "[")
	last := strings.LastIndex(line, "[")
	if first != -1 && first+1 < len(line) {
		style := errStyle
		if feedUp {
			style = okStyle
		}
		t.screen.SetContent(startX+first+1, 0, rune(line[first+1]), nil, style)
	}
	if last != -1 && last != first && last+1 < len(line) {
		style := errStyle
		if geoipUp {
			style = okStyle
		}
		t.screen.SetContent(startX+last+1, 0, rune(line[last+1]), nil, style)
	}
}

func (t *TUI) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		if x+i >= t.width {
			break
		}
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

// Render draws whatever changed since the last call and flips the screen.
func (t *TUI) Render(rotation float64) {
	t.renderGlobe(rotation)
	t.renderPanel()
	t.screen.Show()
}

// PollEvents watches for input in its own goroutine and reports quit on the
// returned channel. Country cycling and resizes are handled internally.
func (t *TUI) PollEvents() chan bool {
	quit := make(chan bool, 1)
	go func() {
		for {
			ev := t.screen.PollEvent()
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch ev.Key() {
				case tcell.KeyCtrlC, tcell.KeyEscape:
					quit <- true
					return
				case tcell.KeyLeft:
					t.cycleCountry(-1)
				case tcell.KeyRight:
					t.cycleCountry(1)
				case tcell.KeyRune:
					switch ev.Rune() {
					case 'q', 'Q', 'x', 'X':
						quit <- true
						return
					case 'h':
						t.cycleCountry(-1)
					case 'l', ' ':
						t.cycleCountry(1)
					}
				}
			case *tcell.EventResize:
				t.HandleResize()
			}
		}
	}()
	return quit
}
