package view

import "strings"

// Labels holds the fixed UI strings for one display language.
type Labels struct {
	History        string
	Popular        string
	Suggestions    string
	Loading        string
	NotFound       string
	NotFoundDetail string
	Example        string
	Synonyms       string
	Antonyms       string
	Audio          string
	PartsOfSpeech  map[string]string
}

var vietnamese = Labels{
	History:        "LỊCH SỬ TÌM KIẾM",
	Popular:        "TỪ TRA CỨU PHỔ BIẾN",
	Suggestions:    "GỢI Ý",
	Loading:        "Vui lòng chờ một chút ...",
	NotFound:       "No Result Found",
	NotFoundDetail: "Sorry, that word isn't in our dictionary yet",
	Example:        "Ví dụ:",
	Synonyms:       "Đồng nghĩa:",
	Antonyms:       "Trái nghĩa:",
	Audio:          "Âm thanh:",
	PartsOfSpeech: map[string]string{
		"noun":      "Danh từ",
		"verb":      "Động từ",
		"adjective": "Tính từ",
		"adverb":    "Trạng từ",
	},
}

var english = Labels{
	History:        "SEARCH HISTORY",
	Popular:        "POPULAR LOOKUPS",
	Suggestions:    "SUGGESTIONS",
	Loading:        "Please wait a moment ...",
	NotFound:       "No Result Found",
	NotFoundDetail: "Sorry, that word isn't in our dictionary yet",
	Example:        "Example:",
	Synonyms:       "Synonyms:",
	Antonyms:       "Antonyms:",
	Audio:          "Audio:",
	PartsOfSpeech: map[string]string{
		"noun":      "Noun",
		"verb":      "Verb",
		"adjective": "Adjective",
		"adverb":    "Adverb",
	},
}

// LabelsFor returns the labels for a language code such as "vi" or "vi-VN".
// Anything without a translation gets English.
func LabelsFor(lang string) Labels {
	base, _, _ := strings.Cut(strings.ToLower(lang), "-")
	if base == "vi" {
		return vietnamese
	}
	return english
}

// PartOfSpeech returns the label for pos, or "" for parts of speech without
// one (interjection, preposition, ...).
func (l Labels) PartOfSpeech(pos string) string {
	return l.PartsOfSpeech[strings.ToLower(pos)]
}
