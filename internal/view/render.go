package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Renderer writes snapshots to a writer. Colours are only emitted when the
// writer is a terminal that supports them.
type Renderer struct {
	w      io.Writer
	labels Labels

	heading lipgloss.Style
	word    lipgloss.Style
	muted   lipgloss.Style
	link    lipgloss.Style
	pos     map[string]lipgloss.Style
}

// NewRenderer creates a Renderer for w using labels.
func NewRenderer(w io.Writer, labels Labels) *Renderer {
	r := lipgloss.NewRenderer(w)
	return &Renderer{
		w:       w,
		labels:  labels,
		heading: r.NewStyle().Bold(true),
		word:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#1e293b")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#64748b")),
		link:    r.NewStyle().Italic(true).Foreground(lipgloss.Color("#00A9FF")),
		pos: map[string]lipgloss.Style{
			"noun":      r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
			"verb":      r.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
			"adjective": r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
			"adverb":    r.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
		},
	}
}

// Home renders the search screen with numbered rows.
func (r *Renderer) Home(h Home) {
	items := h.Selectable()
	n := 0
	printSection := func(title string, src Source) {
		header := false
		for _, it := range items {
			if it.Source != src {
				continue
			}
			if !header {
				fmt.Fprintln(r.w, r.heading.Render(title))
				header = true
			}
			n++
			fmt.Fprintf(r.w, "%3d. %s\n", n, it.Word)
		}
		if header {
			fmt.Fprintln(r.w)
		}
	}

	if len(h.Results) > 0 {
		printSection(r.labels.Suggestions, SourceSuggestion)
		return
	}
	printSection(r.labels.History, SourceHistory)
	printSection(r.labels.Popular, SourcePopular)
}

// Detail renders the word screen.
func (r *Renderer) Detail(d Detail) {
	fmt.Fprintln(r.w, r.word.Render(d.Word))

	switch d.State {
	case StateLoading:
		fmt.Fprintln(r.w, r.muted.Render(r.labels.Loading))
		return
	case StateFailed:
		fmt.Fprintln(r.w, r.heading.Render(r.labels.NotFound))
		fmt.Fprintln(r.w, r.labels.NotFoundDetail)
		return
	}

	det := d.Detail
	if det.Pronunciation != "" {
		fmt.Fprintln(r.w, r.muted.Render(det.Pronunciation))
	}
	if det.AudioURL != "" {
		fmt.Fprintf(r.w, "%s %s\n", r.labels.Audio, r.link.Render(det.AudioURL))
	}
	if det.Translation != "" {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, r.heading.Render(det.Translation))
	}

	for _, m := range det.Meanings {
		if len(m.Definitions) == 0 {
			continue
		}
		fmt.Fprintln(r.w)

		def := m.Definitions[0]
		label := r.labels.PartOfSpeech(m.PartOfSpeech)
		if label != "" {
			style, ok := r.pos[strings.ToLower(m.PartOfSpeech)]
			if !ok {
				style = r.heading
			}
			fmt.Fprintf(r.w, "%s  %s\n", style.Render(label), def.Definition)
		} else {
			fmt.Fprintln(r.w, def.Definition)
		}

		if def.Example != "" {
			fmt.Fprintf(r.w, "  %s %s\n", r.labels.Example, r.muted.Italic(true).Render(def.Example))
		}
		r.related(r.labels.Synonyms, m.Synonyms)
		r.related(r.labels.Antonyms, m.Antonyms)
	}
}

func (r *Renderer) related(label string, words []string) {
	if len(words) == 0 {
		return
	}
	if len(words) > MaxRelated {
		words = words[:MaxRelated]
	}
	fmt.Fprintf(r.w, "  %s %s.\n", label, r.link.Render(strings.Join(words, ", ")))
}
