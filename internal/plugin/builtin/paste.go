package builtin

import (
	"regexp"
	"sort"
	"strings"
)

// Paster recognises pasted text that belongs to a plugin and returns the
// state of the document to create from it.
type Paster func(text string) (state any, ok bool)

var geogebraMaterial = regexp.MustCompile(`geogebra\.org/m/(.+)`)

// PasteGeoGebra accepts links to GeoGebra materials such as
// https://www.geogebra.org/m/abc123. The link itself becomes the state.
func PasteGeoGebra(text string) (any, bool) {
	text = strings.TrimSpace(text)
	if !geogebraMaterial.MatchString(text) {
		return nil, false
	}
	return text, true
}

// GeoGebraID returns the material id of a GeoGebra link, or "" if state
// is not one.
func GeoGebraID(state any) string {
	s, ok := state.(string)
	if !ok {
		return ""
	}
	m := geogebraMaterial.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	id, _, _ := strings.Cut(m[1], "?")
	return strings.TrimRight(id, "/")
}

// Pasters returns the paste handlers of the stock plugins by plugin name.
func Pasters() map[string]Paster {
	return map[string]Paster{
		GeoGebra: PasteGeoGebra,
	}
}

// Paste picks the plugin for pasted text. Stock handlers are tried in
// name order; text that none of them accepts becomes a text document.
func Paste(text string) (pluginName string, state any) {
	return PasteWith(Pasters(), text)
}

// PasteWith is Paste with a custom set of handlers.
func PasteWith(pasters map[string]Paster, text string) (pluginName string, state any) {
	names := make([]string, 0, len(pasters))
	for name := range pasters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if st, ok := pasters[name](text); ok {
			return name, st
		}
	}
	return Text, text
}
