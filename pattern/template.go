package pattern

import (
	"fmt"
	"regexp"
	"strconv"
)

// placeholderPattern matches "{n}", "{index}", and width-padded variants
// like "{n:03}" used inside name_template fields (§4.1) for programmatic
// node numbering.
var placeholderPattern = regexp.MustCompile(`\{(n|index)(?::0(\d+))?\}`)

// RenderNodeTemplate substitutes every "{n}"/"{index}" placeholder in
// nameTemplate with the 1-based integer n, honoring an optional zero-pad
// width ("{n:03}" -> "001" for n=1). Placeholders with no width render with
// strconv.Itoa. A template with no placeholder returns nameTemplate
// unchanged with n ignored (a fixed-name single-node group).
func RenderNodeTemplate(nameTemplate string, n int) string {
	return placeholderPattern.ReplaceAllStringFunc(nameTemplate, func(ref string) string {
		m := placeholderPattern.FindStringSubmatch(ref)
		widthStr := m[2]
		if widthStr == "" {
			return strconv.Itoa(n)
		}
		width, err := strconv.Atoi(widthStr)
		if err != nil {
			return strconv.Itoa(n)
		}
		return fmt.Sprintf("%0*d", width, n)
	})
}

// HasNodeTemplatePlaceholder reports whether nameTemplate contains a
// programmatic numbering placeholder.
func HasNodeTemplatePlaceholder(nameTemplate string) bool {
	return placeholderPattern.MatchString(nameTemplate)
}
