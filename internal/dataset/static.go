package dataset

import "context"

// The smoke-test fixtures: one list per translation direction, processed
// as two independent sequential passes.
var (
	UkrainianSentences = []string{
		"Привіт, світе!",
		"Як справи?",
		"Я вивчаю програмування на Rust.",
		"Це дуже цікаво.",
		"Дякую за допомогу.",
		"Гарного дня!",
		"До побачення.",
		"Слава Україні!",
		"Героям слава!",
		"Україна понад усе!",
	}

	EnglishSentences = []string{
		"Hello, world!",
		"How are you?",
		"I'm learning Rust programming.",
		"It's very interesting.",
		"Thank you for your help.",
		"Have a nice day!",
		"Goodbye.",
		"Glory to Ukraine!",
		"Glory to the heroes!",
		"Ukraine above all!",
	}
)

// StaticSource serves a fixed list of sentences.
type StaticSource struct {
	sentences []string
}

func NewStaticSource(sentences []string) *StaticSource {
	return &StaticSource{sentences: sentences}
}

func (s *StaticSource) Sentences(ctx context.Context) ([]string, error) {
	out := make([]string, len(s.sentences))
	copy(out, s.sentences)
	return out, nil
}

// Pass pairs a static sentence list with the language direction it is
// sent under.
type Pass struct {
	Source     *StaticSource
	SourceLang string
	TargetLang string
}

// SmokePasses returns the two smoke-test passes in their fixed order:
// the Ukrainian list under en→uk, then the English list under uk→en.
func SmokePasses() []Pass {
	return []Pass{
		{Source: NewStaticSource(UkrainianSentences), SourceLang: "en", TargetLang: "uk"},
		{Source: NewStaticSource(EnglishSentences), SourceLang: "uk", TargetLang: "en"},
	}
}
