// internal/workers/reporting/assemble-report/template.go
package assemblereport

import (
	"regexp"
	"strings"
)

var placeholder = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// renderTemplate fills {{key}} placeholders from data. Unknown keys render empty.
func renderTemplate(tpl string, data map[string]string) string {
	return placeholder.ReplaceAllStringFunc(tpl, func(m string) string {
		key := placeholder.FindStringSubmatch(m)[1]
		return data[key]
	})
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

// joinList renders items as "a, b and c".
func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
