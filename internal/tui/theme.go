package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme bundles the styles for one look. Tile styles are keyed by tile
// value; values past the highest key reuse the hottest style.
type Theme struct {
	Name     string
	Board    lipgloss.Style // border around the grid
	Empty    lipgloss.Style // empty cell
	Obstacle lipgloss.Style // blocked cell
	Title    lipgloss.Style
	Status   lipgloss.Style
	Help     lipgloss.Style
	Win      lipgloss.Style
	Lose     lipgloss.Style
	tiles    map[int]lipgloss.Style
	hottest  lipgloss.Style
}

// TileStyle returns the style for a tile value.
func (t Theme) TileStyle(value int) lipgloss.Style {
	if s, ok := t.tiles[value]; ok {
		return s
	}
	return t.hottest
}

func tileStyles(colors map[int]string, fg string) (map[int]lipgloss.Style, lipgloss.Style) {
	styles := make(map[int]lipgloss.Style, len(colors))
	var hottest lipgloss.Style
	max := 0
	for value, color := range colors {
		s := lipgloss.NewStyle().
			Background(lipgloss.Color(color)).
			Foreground(lipgloss.Color(fg)).
			Bold(value >= 128)
		styles[value] = s
		if value > max {
			max = value
			hottest = s
		}
	}
	return styles, hottest
}

func defaultTheme() Theme {
	tiles, hottest := tileStyles(map[int]string{
		2:    "252",
		4:    "223",
		8:    "215",
		16:   "209",
		32:   "203",
		64:   "196",
		128:  "227",
		256:  "226",
		512:  "220",
		1024: "214",
		2048: "208",
		4096: "201",
	}, "235")
	return Theme{
		Name:     "default",
		Board:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("245")).Padding(0, 1),
		Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Obstacle: lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("250")),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208")),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Win:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Lose:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		tiles:    tiles,
		hottest:  hottest,
	}
}

func monochromeTheme() Theme {
	styles := make(map[int]lipgloss.Style)
	plain := lipgloss.NewStyle()
	for _, v := range []int{2, 4, 8, 16, 32, 64, 128, 256, 512, 1024, 2048, 4096} {
		styles[v] = plain.Bold(v >= 128)
	}
	return Theme{
		Name:     "monochrome",
		Board:    lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
		Empty:    lipgloss.NewStyle(),
		Obstacle: lipgloss.NewStyle().Reverse(true),
		Title:    lipgloss.NewStyle().Bold(true),
		Status:   lipgloss.NewStyle(),
		Help:     lipgloss.NewStyle().Faint(true),
		Win:      lipgloss.NewStyle().Bold(true),
		Lose:     lipgloss.NewStyle().Bold(true).Reverse(true),
		tiles:    styles,
		hottest:  plain.Bold(true),
	}
}

func darkTheme() Theme {
	tiles, hottest := tileStyles(map[int]string{
		2:    "238",
		4:    "240",
		8:    "24",
		16:   "25",
		32:   "26",
		64:   "27",
		128:  "56",
		256:  "57",
		512:  "93",
		1024: "129",
		2048: "165",
		4096: "201",
	}, "255")
	return Theme{
		Name:     "dark",
		Board:    lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("60")).Padding(0, 1),
		Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
		Obstacle: lipgloss.NewStyle().Background(lipgloss.Color("232")).Foreground(lipgloss.Color("60")),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135")),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Win:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("84")),
		Lose:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("161")),
		tiles:    tiles,
		hottest:  hottest,
	}
}

// ThemeByName resolves a theme name from the configuration; unknown
// names fall back to the default theme.
func ThemeByName(name string) Theme {
	switch name {
	case "monochrome":
		return monochromeTheme()
	case "dark":
		return darkTheme()
	default:
		return defaultTheme()
	}
}
