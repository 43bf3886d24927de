package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTheme_Apply_PartialOverrides(t *testing.T) {
	base := DefaultTheme()
	overrides := ThemeOverrides{
		Colors: map[ColorRole]string{ColorPrimary: "#000000"},
		Fonts:  map[FontRole]string{FontBody: "Inter"},
	}

	merged := base.Apply(overrides)

	assert.Equal(t, "#000000", merged.Colors.Primary)
	assert.Equal(t, base.Colors.Secondary, merged.Colors.Secondary)
	assert.Equal(t, base.Colors.Text, merged.Colors.Text)
	assert.Equal(t, base.Colors.Background, merged.Colors.Background)
	assert.Equal(t, base.Fonts.Heading, merged.Fonts.Heading)
	assert.Equal(t, "Inter", merged.Fonts.Body)
}

func TestTheme_Apply_IgnoresEmptyAndUnknown(t *testing.T) {
	base := DefaultTheme()
	merged := base.Apply(ThemeOverrides{
		Colors: map[ColorRole]string{ColorText: "", ColorRole("accent"): "#123456"},
	})
	assert.Equal(t, base, merged)
}

func TestTheme_Diff_RoundTrip(t *testing.T) {
	base := DefaultTheme()
	edited, err := base.WithColor(ColorSecondary, "#ABCDEF")
	require.NoError(t, err)
	edited, err = edited.WithFont(FontHeading, "Lora")
	require.NoError(t, err)

	diff := edited.Diff(base)
	assert.Equal(t, map[ColorRole]string{ColorSecondary: "#ABCDEF"}, diff.Colors)
	assert.Equal(t, map[FontRole]string{FontHeading: "Lora"}, diff.Fonts)
	assert.Equal(t, edited, base.Apply(diff))

	assert.True(t, base.Diff(base).IsEmpty())
}

func TestTheme_UnknownRoles(t *testing.T) {
	theme := DefaultTheme()

	_, err := theme.WithColor(ColorRole("accent"), "#fff")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = theme.WithFont(FontRole("mono"), "Fira")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = theme.Color(ColorRole("accent"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTheme_Complete(t *testing.T) {
	partial := Theme{Colors: ThemeColors{Primary: "#111111"}}
	full := partial.Complete(DefaultTheme())

	assert.Equal(t, "#111111", full.Colors.Primary)
	assert.Equal(t, DefaultTheme().Colors.Background, full.Colors.Background)
	assert.Equal(t, DefaultTheme().Fonts.Body, full.Fonts.Body)
}

func TestThemeOverrides_Clone(t *testing.T) {
	o := ThemeOverrides{Colors: map[ColorRole]string{ColorPrimary: "#000"}}
	c := o.Clone()
	c.Colors[ColorPrimary] = "#fff"
	assert.Equal(t, "#000", o.Colors[ColorPrimary])
	assert.Nil(t, c.Fonts)
}
