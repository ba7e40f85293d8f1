// Package templates renders notification title/message templates by
// literal {{placeholder}} substitution. Each trigger type declares a
// fixed variable set; a template referencing anything outside it is
// rejected rather than rendered with the placeholder left literal.
package templates

import (
	"fmt"
	"regexp"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// Render substitutes every {{name}} in tmpl with vars[name]. Placeholders
// with no matching variable make the render fail.
func Render(tmpl string, vars map[string]string) (string, error) {
	var unknown []string
	out := placeholderRe.ReplaceAllStringFunc(tmpl, func(m string) string {
		name := placeholderRe.FindStringSubmatch(m)[1]
		v, ok := vars[name]
		if !ok {
			unknown = append(unknown, name)
			return m
		}
		return v
	})
	if len(unknown) > 0 {
		return "", fmt.Errorf("unknown placeholder(s): %s", strings.Join(unknown, ", "))
	}
	return out, nil
}

// Validate checks that a template only references allowed variables,
// without rendering it. Used by the trigger config surface on save.
func Validate(tmpl string, allowed []string) error {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	var unknown []string
	for _, m := range placeholderRe.FindAllStringSubmatch(tmpl, -1) {
		if _, ok := set[m[1]]; !ok {
			unknown = append(unknown, m[1])
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown placeholder(s): %s", strings.Join(unknown, ", "))
	}
	return nil
}
