package config

// DefaultPopularWords returns the words offered on the home screen before
// the user has any history of their own.
func DefaultPopularWords() []string {
	return []string{
		"hello",
		"world",
		"react",
		"javascript",
		"dictionary",
		"app",
	}
}
