package domain

import "fmt"

// ColorRole names one of the fixed theme colour roles.
type ColorRole string

// Colour roles.
const (
	ColorPrimary    ColorRole = "primary"
	ColorSecondary  ColorRole = "secondary"
	ColorText       ColorRole = "text"
	ColorBackground ColorRole = "background"
)

// FontRole names one of the fixed theme font roles.
type FontRole string

// Font roles.
const (
	FontHeading FontRole = "heading"
	FontBody    FontRole = "body"
)

// ColorRoles returns every colour role.
func ColorRoles() []ColorRole {
	return []ColorRole{ColorPrimary, ColorSecondary, ColorText, ColorBackground}
}

// FontRoles returns every font role.
func FontRoles() []FontRole {
	return []FontRole{FontHeading, FontBody}
}

// ThemeColors holds the value of every colour role.
type ThemeColors struct {
	Primary    string `json:"primary" yaml:"primary" toml:"primary"`
	Secondary  string `json:"secondary" yaml:"secondary" toml:"secondary"`
	Text       string `json:"text" yaml:"text" toml:"text"`
	Background string `json:"background" yaml:"background" toml:"background"`
}

// ThemeFonts holds the value of every font role.
type ThemeFonts struct {
	Heading string `json:"heading" yaml:"heading" toml:"heading"`
	Body    string `json:"body" yaml:"body" toml:"body"`
}

// Theme is a complete set of colours and fonts.
type Theme struct {
	Colors ThemeColors `json:"colors" yaml:"colors" toml:"colors"`
	Fonts  ThemeFonts  `json:"fonts" yaml:"fonts" toml:"fonts"`
}

// DefaultTheme is used when neither the template nor the site provides one.
func DefaultTheme() Theme {
	return Theme{
		Colors: ThemeColors{
			Primary:    "#8B7355",
			Secondary:  "#D4AF37",
			Text:       "#2C2C2C",
			Background: "#FFFFFF",
		},
		Fonts: ThemeFonts{
			Heading: "Playfair Display, serif",
			Body:    "Montserrat, sans-serif",
		},
	}
}

// Color returns the value of a colour role.
func (t Theme) Color(role ColorRole) (string, error) {
	switch role {
	case ColorPrimary:
		return t.Colors.Primary, nil
	case ColorSecondary:
		return t.Colors.Secondary, nil
	case ColorText:
		return t.Colors.Text, nil
	case ColorBackground:
		return t.Colors.Background, nil
	default:
		return "", fmt.Errorf("unknown colour role %q: %w", role, ErrInvalidInput)
	}
}

// Font returns the value of a font role.
func (t Theme) Font(role FontRole) (string, error) {
	switch role {
	case FontHeading:
		return t.Fonts.Heading, nil
	case FontBody:
		return t.Fonts.Body, nil
	default:
		return "", fmt.Errorf("unknown font role %q: %w", role, ErrInvalidInput)
	}
}

// WithColor returns a copy of the theme with one colour role replaced.
func (t Theme) WithColor(role ColorRole, value string) (Theme, error) {
	switch role {
	case ColorPrimary:
		t.Colors.Primary = value
	case ColorSecondary:
		t.Colors.Secondary = value
	case ColorText:
		t.Colors.Text = value
	case ColorBackground:
		t.Colors.Background = value
	default:
		return t, fmt.Errorf("unknown colour role %q: %w", role, ErrInvalidInput)
	}
	return t, nil
}

// WithFont returns a copy of the theme with one font role replaced.
func (t Theme) WithFont(role FontRole, value string) (Theme, error) {
	switch role {
	case FontHeading:
		t.Fonts.Heading = value
	case FontBody:
		t.Fonts.Body = value
	default:
		return t, fmt.Errorf("unknown font role %q: %w", role, ErrInvalidInput)
	}
	return t, nil
}

// Complete fills any empty role from fallback.
func (t Theme) Complete(fallback Theme) Theme {
	for _, role := range ColorRoles() {
		if v, _ := t.Color(role); v == "" {
			fv, _ := fallback.Color(role)
			t, _ = t.WithColor(role, fv)
		}
	}
	for _, role := range FontRoles() {
		if v, _ := t.Font(role); v == "" {
			fv, _ := fallback.Font(role)
			t, _ = t.WithFont(role, fv)
		}
	}
	return t
}

// ThemeOverrides is the subset of roles a site overrides.
type ThemeOverrides struct {
	Colors map[ColorRole]string `json:"colors,omitempty" yaml:"colors,omitempty"`
	Fonts  map[FontRole]string  `json:"fonts,omitempty" yaml:"fonts,omitempty"`
}

// IsEmpty reports whether no role is overridden.
func (o ThemeOverrides) IsEmpty() bool {
	return len(o.Colors) == 0 && len(o.Fonts) == 0
}

// Clone returns a deep copy.
func (o ThemeOverrides) Clone() ThemeOverrides {
	out := ThemeOverrides{}
	if o.Colors != nil {
		out.Colors = make(map[ColorRole]string, len(o.Colors))
		for k, v := range o.Colors {
			out.Colors[k] = v
		}
	}
	if o.Fonts != nil {
		out.Fonts = make(map[FontRole]string, len(o.Fonts))
		for k, v := range o.Fonts {
			out.Fonts[k] = v
		}
	}
	return out
}

// Apply layers overrides on top of the theme. Unknown roles and empty values
// are ignored, so the result always has every role populated when the base does.
func (t Theme) Apply(o ThemeOverrides) Theme {
	for role, v := range o.Colors {
		if v == "" {
			continue
		}
		if next, err := t.WithColor(role, v); err == nil {
			t = next
		}
	}
	for role, v := range o.Fonts {
		if v == "" {
			continue
		}
		if next, err := t.WithFont(role, v); err == nil {
			t = next
		}
	}
	return t
}

// Diff returns the overrides needed to turn base into t.
func (t Theme) Diff(base Theme) ThemeOverrides {
	out := ThemeOverrides{}
	for _, role := range ColorRoles() {
		mine, _ := t.Color(role)
		theirs, _ := base.Color(role)
		if mine != theirs {
			if out.Colors == nil {
				out.Colors = make(map[ColorRole]string)
			}
			out.Colors[role] = mine
		}
	}
	for _, role := range FontRoles() {
		mine, _ := t.Font(role)
		theirs, _ := base.Font(role)
		if mine != theirs {
			if out.Fonts == nil {
				out.Fonts = make(map[FontRole]string)
			}
			out.Fonts[role] = mine
		}
	}
	return out
}
