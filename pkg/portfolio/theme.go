package portfolio

import (
	"regexp"
	"strings"
)

const (
	// DefaultName fills {{NAME}} when no name is supplied.
	DefaultName = "Professional Portfolio"
	// DefaultColor fills {{COLOR}} when no colour is supplied.
	DefaultColor = "#00d2ff"
	// FallbackTheme supplies the injection rules for themes without their own.
	FallbackTheme = "glass"
)

// Theme says where skill chips go in a template and how they are styled.
type Theme struct {
	Name       string
	SkillClass string
	Container  string // CSS selector of the element receiving the chips
}

var themes = map[string]Theme{
	"neo":   {Name: "neo", SkillClass: "pill", Container: ".skills"},
	"glass": {Name: "glass", SkillClass: "skill-chip", Container: ".skills"},
	"gloss": {Name: "gloss", SkillClass: "skill-chip", Container: ".skills-grid"},
}

var (
	reThemeName = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,31}$`)
	reHexColor  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	reNameColor = regexp.MustCompile(`^[a-zA-Z]{3,20}$`)
)

// LookupTheme returns the injection rules for name. Unknown names get the
// fallback theme's rules under their own name, so a custom template directory
// still renders.
func LookupTheme(name string) Theme {
	name = strings.ToLower(strings.TrimSpace(name))
	if t, ok := themes[name]; ok {
		return t
	}
	t := themes[FallbackTheme]
	t.Name = name
	return t
}

// ValidThemeName reports whether name is safe to use as a directory name.
func ValidThemeName(name string) bool {
	return reThemeName.MatchString(name)
}

// ValidColor accepts #rgb, #rgba, #rrggbb, #rrggbbaa and plain CSS colour names.
func ValidColor(c string) bool {
	return reHexColor.MatchString(c) || reNameColor.MatchString(c)
}
