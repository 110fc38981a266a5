// Package theme turns the site palette into the docs theme's CSS custom
// properties.
package theme

import (
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Path is where the generated stylesheet is published.
const Path = "/theme.css"

// Palette maps shade (100-950) to a CSS color, per color family.
type Palette struct {
	Accent map[int]string `yaml:"accent" json:"accent"`
	Gray   map[int]string `yaml:"gray" json:"gray"`
}

// DefaultPalette is the Brioche palette (accent hue 70 chroma 0.227, gray
// hue 54 chroma 0.002).
func DefaultPalette() Palette {
	return Palette{
		Accent: map[int]string{
			200: "#e9c193",
			600: "#955e00",
			900: "#482b00",
			950: "#351e00",
		},
		Gray: map[int]string{
			100: "#f8f6f4",
			200: "#f2ece9",
			300: "#c7c0bc",
			400: "#968980",
			500: "#61554e",
			700: "#41362f",
			800: "#2f241e",
			900: "#1c1714",
		},
	}
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

func (p Palette) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Accent, validation.Required, validation.Each(validation.Match(hexColor))),
		validation.Field(&p.Gray, validation.Required, validation.Each(validation.Match(hexColor))),
	)
}

type variable struct {
	name   string
	family string
	shade  int // 0 means white
}

var darkVars = []variable{
	{"--sl-color-accent-low", "accent", 950},
	{"--sl-color-accent", "accent", 600},
	{"--sl-color-accent-high", "accent", 200},
	{"--sl-color-white", "", 0},
	{"--sl-color-gray-1", "gray", 200},
	{"--sl-color-gray-2", "gray", 300},
	{"--sl-color-gray-3", "gray", 400},
	{"--sl-color-gray-4", "gray", 500},
	{"--sl-color-gray-5", "gray", 700},
	{"--sl-color-gray-6", "gray", 800},
	{"--sl-color-black", "gray", 900},
}

var lightVars = []variable{
	{"--sl-color-accent-low", "accent", 200},
	{"--sl-color-accent", "accent", 600},
	{"--sl-color-accent-high", "accent", 900},
	{"--sl-color-white", "gray", 900},
	{"--sl-color-gray-1", "gray", 800},
	{"--sl-color-gray-2", "gray", 700},
	{"--sl-color-gray-3", "gray", 500},
	{"--sl-color-gray-4", "gray", 400},
	{"--sl-color-gray-5", "gray", 300},
	{"--sl-color-gray-6", "gray", 200},
	{"--sl-color-gray-7", "gray", 100},
	{"--sl-color-black", "", 0},
}

// CSS renders the palette as dark (default) and light theme variables.
// Shades missing from the palette are left to the theme's defaults.
func (p Palette) CSS() string {
	var b strings.Builder
	p.block(&b, ":root", darkVars)
	b.WriteString("\n")
	p.block(&b, ":root[data-theme='light']", lightVars)
	return b.String()
}

func (p Palette) block(b *strings.Builder, selector string, vars []variable) {
	fmt.Fprintf(b, "%s {\n", selector)
	for _, v := range vars {
		if color, ok := p.lookup(v); ok {
			fmt.Fprintf(b, "  %s: %s;\n", v.name, color)
		}
	}
	b.WriteString("}\n")
}

func (p Palette) lookup(v variable) (string, bool) {
	switch v.family {
	case "":
		return "#ffffff", true
	case "accent":
		c, ok := p.Accent[v.shade]
		return c, ok
	case "gray":
		c, ok := p.Gray[v.shade]
		return c, ok
	}
	return "", false
}
