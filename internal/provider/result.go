// Package provider holds the result types shared by the dictionary adapters.
// Every field is optional: the upstream APIs omit phonetics, examples and
// word lists freely.
package provider

// Entry is a dictionary entry for one word.
type Entry struct {
	Word          string    `json:"word"`
	Pronunciation string    `json:"pronunciation,omitempty"`
	AudioURL      string    `json:"audio,omitempty"`
	Meanings      []Meaning `json:"meanings"`
}

// Meaning groups the definitions sharing a part of speech.
type Meaning struct {
	PartOfSpeech string       `json:"part_of_speech"`
	Definitions  []Definition `json:"definitions"`
	Synonyms     []string     `json:"synonyms,omitempty"`
	Antonyms     []string     `json:"antonyms,omitempty"`
}

// Definition is one sense with an optional usage example.
type Definition struct {
	Definition string `json:"definition"`
	Example    string `json:"example,omitempty"`
}
