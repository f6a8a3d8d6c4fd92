package epub

import (
	"strings"
	"testing"

	"github.com/tsawler/bindery/model"
)

func TestMergedStylesheet(t *testing.T) {
	s := model.StyleState{PresetTheme: "sepia", PresetEnabled: true, CustomCSS: "p { color: red; }"}
	got := mergedStylesheet(s)
	if !strings.Contains(got, "#f4ecd8") {
		t.Error("preset theme missing from merged stylesheet")
	}
	if !strings.Contains(got, "color: red") {
		t.Error("custom css missing from merged stylesheet")
	}
	if strings.Index(got, "#f4ecd8") > strings.Index(got, "color: red") {
		t.Error("custom css should follow the preset so it can override it")
	}
}

func TestMergedStylesheetDisabledPreset(t *testing.T) {
	s := model.StyleState{PresetTheme: "dark", PresetEnabled: false, CustomCSS: "p {}"}
	if got := mergedStylesheet(s); strings.Contains(got, "#1d1d1d") {
		t.Error("disabled preset leaked into merged stylesheet")
	}
	if got := mergedStylesheet(model.StyleState{PresetTheme: "nope", PresetEnabled: true}); got != "" {
		t.Errorf("unknown theme produced output: %q", got)
	}
}

func TestPresetThemesComplete(t *testing.T) {
	for _, name := range PresetThemes() {
		if _, ok := presetThemes[name]; !ok {
			t.Errorf("listed theme %q has no stylesheet", name)
		}
	}
}

func TestPrimaryStylesheet(t *testing.T) {
	tests := []struct {
		href string
		want bool
	}{
		{"style.css", true},
		{"css/Style.css", true},
		{"stylesheet.css", true},
		{"main.css", true},
		{"fonts.css", false},
		{"page_styles.css", false},
	}
	for _, tt := range tests {
		if got := primaryStylesheet(tt.href); got != tt.want {
			t.Errorf("primaryStylesheet(%q) = %v, want %v", tt.href, got, tt.want)
		}
	}
}
