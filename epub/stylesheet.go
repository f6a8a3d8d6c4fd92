package epub

import (
	"strings"

	"github.com/tsawler/bindery/model"
)

// presetThemes are the built-in stylesheet themes. Each is a complete
// baseline so a project with no custom CSS still renders consistently.
var presetThemes = map[string]string{
	"light": `body { font-family: serif; line-height: 1.6; margin: 1em; color: #222; background: #fff; }
h1, h2 { font-weight: bold; page-break-after: avoid; }
h1 { font-size: 1.5em; }
h2 { font-size: 1.25em; }
p { text-indent: 2em; margin: 0.4em 0; }
img { max-width: 100%; }`,
	"sepia": `body { font-family: serif; line-height: 1.7; margin: 1em; color: #5b4636; background: #f4ecd8; }
h1, h2 { font-weight: bold; page-break-after: avoid; }
h1 { font-size: 1.5em; }
h2 { font-size: 1.25em; }
p { text-indent: 2em; margin: 0.4em 0; }
img { max-width: 100%; }`,
	"dark": `body { font-family: serif; line-height: 1.6; margin: 1em; color: #d6d6d6; background: #1d1d1d; }
h1, h2 { font-weight: bold; page-break-after: avoid; }
h1 { font-size: 1.5em; }
h2 { font-size: 1.25em; }
a { color: #8ab4f8; }
p { text-indent: 2em; margin: 0.4em 0; }
img { max-width: 100%; }`,
}

// PresetThemes lists the available theme names.
func PresetThemes() []string {
	return []string{"light", "sepia", "dark"}
}

// mergedStylesheet concatenates the enabled preset theme with the
// project's custom CSS.
func mergedStylesheet(s model.StyleState) string {
	var parts []string
	if s.PresetEnabled {
		if theme, ok := presetThemes[s.PresetTheme]; ok {
			parts = append(parts, theme)
		}
	}
	if css := strings.TrimSpace(s.CustomCSS); css != "" {
		parts = append(parts, css)
	}
	return strings.Join(parts, "\n\n")
}

// primaryStylesheet reports whether a decoded CSS filename should be
// folded into the project's custom stylesheet rather than kept as an
// auxiliary file.
func primaryStylesheet(href string) bool {
	name := href
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.ToLower(strings.TrimSuffix(name, ".css"))
	switch name {
	case "style", "styles", "stylesheet", "main":
		return true
	}
	return false
}
