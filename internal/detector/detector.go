// Package detector resolves the "auto" direction tag by deciding whether a
// document is English or Arabic. The lingua model is restricted to those two
// languages, which keeps it small and makes classification of short inputs
// far more reliable than the all-languages build.
package detector

import (
	lingua "github.com/pemistahl/lingua-go"

	"github.com/xsukax/tarjuman/internal/engine"
)

// Detector classifies text as English or Arabic. Building the underlying
// lingua detector loads language models; construct once and reuse.
type Detector struct {
	detector lingua.LanguageDetector
}

func New() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.English, lingua.Arabic).
		Build()

	return &Detector{detector: detector}
}

// Detect returns the detected language of text.
func (d *Detector) Detect(text string) (lingua.Language, bool) {
	if text == "" {
		return lingua.Unknown, false
	}
	return d.detector.DetectLanguageOf(text)
}

// DetectDirection maps the detected source language to a translation
// direction: English input translates to Arabic and vice versa. ok is false
// when the text is empty or the classifier cannot decide.
func (d *Detector) DetectDirection(text string) (engine.Direction, bool) {
	lang, ok := d.Detect(text)
	if !ok {
		return "", false
	}
	switch lang {
	case lingua.English:
		return engine.EnglishToArabic, true
	case lingua.Arabic:
		return engine.ArabicToEnglish, true
	}
	return "", false
}
