package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ThemeSettings is the persisted theme configuration for a tenant's
// storefront. Token groups are stored as jsonb so the admin UI can add
// per-component overrides without schema churn.
type ThemeSettings struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID    uuid.UUID      `json:"tenantId" gorm:"type:uuid;not null;uniqueIndex"`
	Name        string         `json:"name" gorm:"size:255;not null;default:'Default'"`
	Description string         `json:"description,omitempty" gorm:"type:text"`
	Colors      datatypes.JSON `json:"colors" gorm:"type:jsonb;default:'{}'"`
	Typography  datatypes.JSON `json:"typography" gorm:"type:jsonb;default:'{}'"`
	Layout      datatypes.JSON `json:"layout" gorm:"type:jsonb;default:'{}'"`
	Components  datatypes.JSON `json:"components" gorm:"type:jsonb;default:'{}'"`
	Version     int            `json:"version" gorm:"default:1"`
	CreatedAt   time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
	CreatedBy   *uuid.UUID     `json:"createdBy,omitempty" gorm:"type:uuid"`
	UpdatedBy   *uuid.UUID     `json:"updatedBy,omitempty" gorm:"type:uuid"`
}

// TypographyTokens represents the typography scale of a theme.
type TypographyTokens struct {
	HeadingFont string            `json:"headingFont"`
	BodyFont    string            `json:"bodyFont"`
	Sizes       map[string]string `json:"sizes"`
	Weights     map[string]int    `json:"weights"`
	LineHeights map[string]string `json:"lineHeights"`
}

// LayoutTokens represents spacing, radius, breakpoint and width scales.
type LayoutTokens struct {
	Spacing     map[string]string `json:"spacing"`
	Radius      map[string]string `json:"radius"`
	Breakpoints map[string]string `json:"breakpoints"`
	MaxWidths   map[string]string `json:"maxWidths"`
}

// ThemeDocument is the fully materialized theme served to storefronts.
// Consumers index into the token maps without existence checks, so every
// key present in the default document must be present here.
type ThemeDocument struct {
	Name        string                       `json:"name"`
	Description string                       `json:"description,omitempty"`
	Colors      map[string]string            `json:"colors"`
	Typography  TypographyTokens             `json:"typography"`
	Layout      LayoutTokens                 `json:"layout"`
	Components  map[string]map[string]string `json:"components"`
}

// ThemeSource identifies which configuration produced a resolved theme.
type ThemeSource string

const (
	ThemeSourceDefault ThemeSource = "default"
	ThemeSourceStored  ThemeSource = "stored"
	ThemeSourcePreview ThemeSource = "preview"
)

// ResolvedTheme is a ThemeDocument plus the provenance the admin UI uses
// to render the "previewing" banner.
type ResolvedTheme struct {
	Theme  ThemeDocument `json:"theme"`
	Source ThemeSource   `json:"source"`
}

// UpdateThemeRequest is a partial theme update. Nil groups are left
// untouched.
type UpdateThemeRequest struct {
	Name        *string                      `json:"name,omitempty"`
	Description *string                      `json:"description,omitempty"`
	Colors      map[string]string            `json:"colors,omitempty"`
	Typography  *TypographyTokens            `json:"typography,omitempty"`
	Layout      *LayoutTokens                `json:"layout,omitempty"`
	Components  map[string]map[string]string `json:"components,omitempty"`
}

// ThemeResponse is the API envelope for theme payloads.
type ThemeResponse struct {
	Success bool           `json:"success"`
	Data    *ThemeSettings `json:"data,omitempty"`
	Message string         `json:"message,omitempty"`
}

// ResolvedThemeResponse is the API envelope for resolved theme payloads.
type ResolvedThemeResponse struct {
	Success bool           `json:"success"`
	Data    *ResolvedTheme `json:"data,omitempty"`
	Message string         `json:"message,omitempty"`
}

// DefaultTheme returns the built-in theme every tenant starts from.
func DefaultTheme() ThemeDocument {
	return ThemeDocument{
		Name:        "Default",
		Description: "Built-in default storefront theme",
		Colors: map[string]string{
			"primary":    "#3b82f6",
			"secondary":  "#64748b",
			"accent":     "#f59e0b",
			"background": "#ffffff",
			"text":       "#1f2937",
			"error":      "#ef4444",
			"success":    "#22c55e",
			"warning":    "#eab308",
		},
		Typography: TypographyTokens{
			HeadingFont: "Inter",
			BodyFont:    "system-ui",
			Sizes: map[string]string{
				"xs": "0.75rem", "sm": "0.875rem", "base": "1rem",
				"lg": "1.125rem", "xl": "1.25rem", "2xl": "1.5rem",
				"3xl": "1.875rem", "4xl": "2.25rem",
			},
			Weights: map[string]int{
				"normal": 400, "medium": 500, "semibold": 600, "bold": 700,
			},
			LineHeights: map[string]string{
				"tight": "1.25", "normal": "1.5", "relaxed": "1.75",
			},
		},
		Layout: LayoutTokens{
			Spacing: map[string]string{
				"xs": "0.25rem", "sm": "0.5rem", "md": "1rem",
				"lg": "1.5rem", "xl": "2rem", "2xl": "3rem",
			},
			Radius: map[string]string{
				"none": "0", "sm": "0.125rem", "md": "0.375rem",
				"lg": "0.5rem", "full": "9999px",
			},
			Breakpoints: map[string]string{
				"sm": "640px", "md": "768px", "lg": "1024px", "xl": "1280px",
			},
			MaxWidths: map[string]string{
				"content": "1280px", "narrow": "768px",
			},
		},
		Components: map[string]map[string]string{
			"button": {
				"primaryVariant":   "solid",
				"secondaryVariant": "outline",
				"size":             "md",
			},
			"card": {
				"shadow": "sm",
				"border": "1px",
			},
			"input": {
				"variant": "outline",
				"size":    "md",
			},
			"label": {
				"weight": "medium",
			},
			"navigation": {
				"style":  "horizontal",
				"sticky": "true",
			},
		},
	}
}

// Document decodes the stored jsonb groups into a ThemeDocument. Malformed
// groups decode to their zero value; CompleteTokens fills the gaps.
func (t *ThemeSettings) Document() ThemeDocument {
	doc := ThemeDocument{
		Name:        t.Name,
		Description: t.Description,
	}
	if len(t.Colors) > 0 {
		_ = json.Unmarshal(t.Colors, &doc.Colors)
	}
	if len(t.Typography) > 0 {
		_ = json.Unmarshal(t.Typography, &doc.Typography)
	}
	if len(t.Layout) > 0 {
		_ = json.Unmarshal(t.Layout, &doc.Layout)
	}
	if len(t.Components) > 0 {
		_ = json.Unmarshal(t.Components, &doc.Components)
	}
	return CompleteTokens(doc)
}

// CompleteTokens fills any token key missing from doc with the value from
// the default theme. Storefront consumers index into these maps without
// existence checks, so a missing key is a crash on their side.
func CompleteTokens(doc ThemeDocument) ThemeDocument {
	def := DefaultTheme()

	doc.Colors = fillStringMap(doc.Colors, def.Colors)

	if doc.Typography.HeadingFont == "" {
		doc.Typography.HeadingFont = def.Typography.HeadingFont
	}
	if doc.Typography.BodyFont == "" {
		doc.Typography.BodyFont = def.Typography.BodyFont
	}
	doc.Typography.Sizes = fillStringMap(doc.Typography.Sizes, def.Typography.Sizes)
	doc.Typography.Weights = fillIntMap(doc.Typography.Weights, def.Typography.Weights)
	doc.Typography.LineHeights = fillStringMap(doc.Typography.LineHeights, def.Typography.LineHeights)

	doc.Layout.Spacing = fillStringMap(doc.Layout.Spacing, def.Layout.Spacing)
	doc.Layout.Radius = fillStringMap(doc.Layout.Radius, def.Layout.Radius)
	doc.Layout.Breakpoints = fillStringMap(doc.Layout.Breakpoints, def.Layout.Breakpoints)
	doc.Layout.MaxWidths = fillStringMap(doc.Layout.MaxWidths, def.Layout.MaxWidths)

	if doc.Components == nil {
		doc.Components = map[string]map[string]string{}
	}
	for component, defaults := range def.Components {
		doc.Components[component] = fillStringMap(doc.Components[component], defaults)
	}

	if doc.Name == "" {
		doc.Name = def.Name
	}
	return doc
}

func fillStringMap(dst, src map[string]string) map[string]string {
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		if _, ok := dst[k]; !ok {
			dst[k] = v
		}
	}
	return dst
}

func fillIntMap(dst, src map[string]int) map[string]int {
	if dst == nil {
		dst = make(map[string]int, len(src))
	}
	for k, v := range src {
		if _, ok := dst[k]; !ok {
			dst[k] = v
		}
	}
	return dst
}

// IsValidHexColor validates if a string is a valid hex color code
func IsValidHexColor(color string) bool {
	if len(color) != 4 && len(color) != 7 {
		return false
	}
	if color[0] != '#' {
		return false
	}
	for _, c := range color[1:] {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
