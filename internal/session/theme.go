package session

import "github.com/muesli/termenv"

// Theme is the bundle of color tokens every view renders with. A
// theme is always replaced wholesale, never merged token by token.
type Theme struct {
	Name        string
	IsDark      bool
	Bg          string
	Text        string
	Hint        string
	Link        string
	Button      string
	ButtonText  string
	SecondaryBg string
}

var lightTheme = Theme{
	Name:        "light",
	Bg:          "#ffffff",
	Text:        "#000000",
	Hint:        "#999999",
	Link:        "#2481cc",
	Button:      "#2481cc",
	ButtonText:  "#ffffff",
	SecondaryBg: "#f1f1f1",
}

var darkTheme = Theme{
	Name:        "dark",
	IsDark:      true,
	Bg:          "#1c1c1e",
	Text:        "#ffffff",
	Hint:        "#8e8e93",
	Link:        "#0a84ff",
	Button:      "#0a84ff",
	ButtonText:  "#ffffff",
	SecondaryBg: "#2c2c2e",
}

// ResolveTheme maps a configured preference to a theme. An empty
// preference follows the terminal background.
func ResolveTheme(pref string) Theme {
	switch pref {
	case "light":
		return lightTheme
	case "dark":
		return darkTheme
	}
	if termenv.HasDarkBackground() {
		return darkTheme
	}
	return lightTheme
}

// Opposite returns the other theme, for toggling.
func (t Theme) Opposite() Theme {
	if t.IsDark {
		return lightTheme
	}
	return darkTheme
}
