package screening

import "regexp"

// Language selects the instruction language of the resume prompt.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageChinese Language = "zh"
)

var latinWord = regexp.MustCompile(`[a-zA-Z]+`)

// DetectLanguage classifies text as Chinese when CJK ideographs outnumber Latin words.
func DetectLanguage(text string) Language {
	ideographs := 0
	for _, r := range text {
		if r >= 0x4E00 && r <= 0x9FFF {
			ideographs++
		}
	}

	if ideographs > len(latinWord.FindAllStringIndex(text, -1)) {
		return LanguageChinese
	}
	return LanguageEnglish
}
