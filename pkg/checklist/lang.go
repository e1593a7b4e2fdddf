package checklist

import (
	"strings"

	"github.com/gnames/gnfmt/gnlang"
)

// NormalizeLang converts a language label to a lowercase 3-letter ISO
// 639-3 code where possible. 2-letter codes go through the 639-1 to
// 639-3 mapping, full language names are resolved by gnlang. Labels
// that cannot be resolved are returned lowercased as they came.
func NormalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if len(lang) == 2 {
		if code, err := gnlang.LangCode2To3Letters(lang); err == nil {
			return code
		}
		return lang
	}
	if code := gnlang.LangCode(lang); code != "" {
		return code
	}
	return lang
}
