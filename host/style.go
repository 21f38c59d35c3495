package host

import "strings"

// StyleDecl is one "property: value" pair of an inline style
type StyleDecl struct {
	Property string
	Value    string
}

// ParseStyle splits an inline style into declarations, skipping empty ones
func ParseStyle(css string) []StyleDecl {
	var out []StyleDecl
	for _, decl := range strings.Split(css, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop, val = strings.TrimSpace(prop), strings.TrimSpace(val)
		if prop == "" || val == "" {
			continue
		}
		out = append(out, StyleDecl{Property: prop, Value: val})
	}
	return out
}

// BuildStyle joins declarations back into an inline style
func BuildStyle(decls []StyleDecl) string {
	var b strings.Builder
	for _, d := range decls {
		b.WriteString(d.Property)
		b.WriteString(": ")
		b.WriteString(d.Value)
		b.WriteByte(';')
	}
	return b.String()
}

// SetStyleField sets or replaces one property of el's inline style
func SetStyleField(el Element, property, value string) {
	decls := ParseStyle(el.Attribute("style"))
	property = strings.TrimSpace(property)
	value = strings.TrimSpace(value)
	found := false
	for i := range decls {
		if strings.EqualFold(decls[i].Property, property) {
			decls[i].Value = value
			found = true
			break
		}
	}
	if !found {
		decls = append(decls, StyleDecl{Property: property, Value: value})
	}
	writeStyle(el, decls)
}

// RemoveStyleField deletes one property of el's inline style
// The style attribute is removed entirely once empty
func RemoveStyleField(el Element, property string) {
	decls := ParseStyle(el.Attribute("style"))
	kept := decls[:0]
	for _, d := range decls {
		if !strings.EqualFold(d.Property, strings.TrimSpace(property)) {
			kept = append(kept, d)
		}
	}
	writeStyle(el, kept)
}

func writeStyle(el Element, decls []StyleDecl) {
	if len(decls) == 0 {
		el.RemoveAttribute("style")
		return
	}
	el.SetAttribute("style", BuildStyle(decls))
}
