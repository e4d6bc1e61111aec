package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestDefaultTheme_CoreTokens(t *testing.T) {
	def := DefaultTheme()

	assert.Equal(t, "#3b82f6", def.Colors["primary"])
	assert.Equal(t, "#ffffff", def.Colors["background"])
	assert.Equal(t, "Inter", def.Typography.HeadingFont)
	assert.Equal(t, "1rem", def.Layout.Spacing["md"])
	assert.Equal(t, "solid", def.Components["button"]["primaryVariant"])
}

func TestCompleteTokens_FillsMissingKeys(t *testing.T) {
	partial := ThemeDocument{
		Colors: map[string]string{"primary": "#111111"},
	}

	completed := CompleteTokens(partial)

	// Overrides survive
	assert.Equal(t, "#111111", completed.Colors["primary"])

	// Everything the tenant never set is present with the default value
	def := DefaultTheme()
	for key, want := range def.Colors {
		if key == "primary" {
			continue
		}
		assert.Equal(t, want, completed.Colors[key], "colors.%s", key)
	}
	assert.Equal(t, def.Typography.BodyFont, completed.Typography.BodyFont)
	assert.Equal(t, def.Typography.Weights["bold"], completed.Typography.Weights["bold"])
	assert.Equal(t, def.Layout.Radius["full"], completed.Layout.Radius["full"])
	for component := range def.Components {
		assert.NotEmpty(t, completed.Components[component], "components.%s", component)
	}
}

func TestCompleteTokens_ZeroValueGetsFullDefault(t *testing.T) {
	completed := CompleteTokens(ThemeDocument{})

	def := DefaultTheme()
	assert.Equal(t, def.Colors, completed.Colors)
	assert.Equal(t, def.Name, completed.Name)
	assert.Equal(t, def.Layout.Breakpoints, completed.Layout.Breakpoints)
}

func TestDocument_MalformedGroupFallsBackToDefaults(t *testing.T) {
	settings := &ThemeSettings{
		Name:   "Broken",
		Colors: datatypes.JSON([]byte(`"not an object"`)),
	}

	doc := settings.Document()

	// Malformed jsonb never produces a partial document
	assert.Equal(t, "#3b82f6", doc.Colors["primary"])
	assert.Equal(t, "Broken", doc.Name)
}

func TestIsValidHexColor(t *testing.T) {
	valid := []string{"#3b82f6", "#fff", "#FFF", "#1F2937", "#000"}
	for _, color := range valid {
		assert.True(t, IsValidHexColor(color), "expected %q to be valid", color)
	}

	invalid := []string{"", "3b82f6", "#3b82f", "#gggggg", "#12345678", "blue", "#12 456"}
	for _, color := range invalid {
		assert.False(t, IsValidHexColor(color), "expected %q to be invalid", color)
	}
}
