// Package language maps BCP-47 tags to the language names pipocas.tv uses in
// its search form. The site only carries Portuguese (European and Brazilian),
// English and Spanish; every other tag is reported as unsupported so the
// caller can skip the search.
package language

import (
	"golang.org/x/text/language"
)

// siteNames keys are canonical tags. Region-specific entries take precedence;
// a tag with an unlisted region falls back to its base language.
var siteNames = map[language.Tag]string{
	language.MustParse("pt"):    "portugues",
	language.MustParse("pt-PT"): "portugues",
	language.MustParse("pt-BR"): "brasileiro",
	language.MustParse("en"):    "ingles",
	language.MustParse("en-US"): "ingles",
	language.MustParse("en-GB"): "ingles",
	language.MustParse("es"):    "espanhol",
	language.MustParse("es-ES"): "espanhol",
	language.MustParse("es-MX"): "espanhol",
}

// Supported returns the tags the provider advertises to the host framework.
func Supported() []language.Tag {
	return []language.Tag{
		language.MustParse("pt-PT"),
		language.MustParse("pt-BR"),
		language.MustParse("en"),
		language.MustParse("es"),
	}
}

// SiteName returns the pipocas.tv language name for the given tag.
// The second return value is false when the site does not carry the language.
func SiteName(tag language.Tag) (string, bool) {
	if name, ok := siteNames[tag]; ok {
		return name, true
	}

	base, conf := tag.Base()
	if conf == language.No {
		return "", false
	}
	baseTag, err := language.Parse(base.String())
	if err != nil {
		return "", false
	}
	name, ok := siteNames[baseTag]
	return name, ok
}
