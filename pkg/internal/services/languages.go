package services

import (
	"strings"

	"github.com/pemistahl/lingua-go"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

var languageDetector lingua.LanguageDetector

var DefaultDetectedLanguages = []string{"en", "fr"}

// InitializeLanguageDetector builds the detector from ISO 639-1 codes.
// Unknown codes are skipped, lingua needs at least two languages.
func InitializeLanguageDetector(codes []string) {
	languages := lo.Filter(lingua.AllLanguages(), func(item lingua.Language, _ int) bool {
		return lo.ContainsBy(codes, func(code string) bool {
			return strings.EqualFold(item.IsoCode639_1().String(), code)
		})
	})
	if len(languages) < 2 {
		log.Warn().Strs("languages", codes).Msg("Not enough languages to detect, falling back to defaults...")
		InitializeLanguageDetector(DefaultDetectedLanguages)
		return
	}

	languageDetector = lingua.NewLanguageDetectorBuilder().
		FromLanguages(languages...).
		WithPreloadedLanguageModels().
		Build()
	log.Info().Int("count", len(languages)).Msg("Language detector is ready.")
}

// DetectLanguage returns the lowercase ISO 639-1 code of content,
// or an empty string when the detector is not set up or not confident.
func DetectLanguage(content string) string {
	if languageDetector == nil || len(strings.TrimSpace(content)) == 0 {
		return ""
	}
	if language, ok := languageDetector.DetectLanguageOf(content); ok {
		return strings.ToLower(language.IsoCode639_1().String())
	}
	return ""
}
