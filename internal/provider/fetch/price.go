package fetch

import (
	"strconv"
	"strings"
)

// ExtractPrice pulls a numeric amount out of marketplace price text like
// "12 500 kr", "1.299,50" or "1,299.50". Swedish sites mix comma and dot
// conventions, so the separator roles are inferred from position.
func ExtractPrice(text string) (float64, bool) {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}

	hasComma := strings.Contains(cleaned, ",")
	hasDot := strings.Contains(cleaned, ".")
	switch {
	case hasComma && hasDot:
		if strings.LastIndex(cleaned, ",") > strings.LastIndex(cleaned, ".") {
			// "1.299,50": dot groups thousands, comma is the decimal mark
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			// "1,299.50"
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case hasComma:
		parts := strings.Split(cleaned, ",")
		if len(parts) == 2 && len(parts[1]) == 2 {
			// "299,00" reads as a decimal mark
			cleaned = parts[0] + "." + parts[1]
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// AbsoluteURL resolves a possibly relative storefront link against the
// site's base URL.
func AbsoluteURL(base, href string) string {
	href = strings.TrimSpace(href)
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	case strings.HasPrefix(href, "/"):
		return strings.TrimSuffix(base, "/") + href
	default:
		return strings.TrimSuffix(base, "/") + "/" + href
	}
}
