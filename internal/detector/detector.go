package detector

import (
	"strings"

	lingua "github.com/pemistahl/lingua-go"
)

type Detector struct {
	detector lingua.LanguageDetector
}

func New() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		Build()

	return &Detector{detector: detector}
}

func (d *Detector) Detect(text string) (lingua.Language, bool) {
	if text == "" {
		return lingua.Unknown, false
	}
	return d.detector.DetectLanguageOf(text)
}

// DetectISO returns the lowercase ISO 639-1 code of the detected
// language, matching the codes the translation wire contract uses.
func (d *Detector) DetectISO(text string) (string, bool) {
	lang, ok := d.Detect(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}

// Matches reports whether the detected language of text agrees with the
// given ISO code. An undetectable text matches anything, so short or
// ambiguous sentences never produce warnings.
func (d *Detector) Matches(text, isoCode string) bool {
	code, ok := d.DetectISO(text)
	if !ok {
		return true
	}
	return code == strings.ToLower(isoCode)
}
