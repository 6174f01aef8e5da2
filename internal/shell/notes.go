package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/okravets/sytobook/internal/domain"
	"github.com/okravets/sytobook/internal/rank"
)

func (s *Shell) handleNote(ctx context.Context, cmd domain.Command, args []string) {
	switch cmd {
	case domain.CmdAddNote:
		s.addNote(ctx, args)
	case domain.CmdListNotes:
		s.listNotes()
	case domain.CmdAddTag:
		s.addTag(args)
	case domain.CmdSearchTag:
		s.searchTag(args)
	case domain.CmdSearchNote:
		s.searchNotes(ctx, args)
	case domain.CmdGroupNotes:
		s.groupNotes(args)
	default:
		dimc.Fprintln(s.out, "Unknown note command.")
	}
}

func (s *Shell) addNote(ctx context.Context, args []string) {
	text := s.argRest(args, 0, "Text: ")
	note, err := s.notes.Add(text, nil)
	if err != nil {
		errc.Fprintln(s.out, err)
		return
	}

	if s.tagger != nil {
		rctx, cancel := s.backendCtx(ctx)
		suggested, err := s.tagger.SuggestTags(rctx, note.Text, s.notes.AllTags())
		cancel()
		if err == nil && len(suggested) > 0 {
			fmt.Fprintf(s.out, "Suggested tags: %s\n", strings.Join(suggested, ", "))
			if s.confirm("Accept suggested tags? (y/n): ") {
				note.AddTags(suggested...)
			}
		}
	}

	if s.confirm("Add tags? (y/n): ") {
		raw, _ := s.read("Tags: ")
		note.AddTags(splitTags(raw)...)
	}
	okc.Fprintln(s.out, "Note saved.")
}

func (s *Shell) listNotes() {
	notes := s.notes.Notes()
	if len(notes) == 0 {
		dimc.Fprintln(s.out, "No notes.")
		return
	}
	fmt.Fprintf(s.out, "%4s  %-10s  %-20s  %s\n", "#", "Date", "Tags", "Text")
	for i, n := range notes {
		fmt.Fprintf(s.out, "%4d  %-10s  %-20s  %s\n",
			i+1, n.CreatedAt.Format("2006-01-02"), joinOr(n.Tags, ", "), n.Text)
	}
}

func (s *Shell) addTag(args []string) {
	raw := s.arg(args, 0, "Note index: ")
	index, err := strconv.Atoi(raw)
	if err != nil {
		errc.Fprintln(s.out, "Enter a note index number.")
		return
	}

	var tags []string
	if len(args) > 1 {
		tags = args[1:]
	} else {
		line, _ := s.read("Tags (comma): ")
		tags = splitTags(line)
	}

	if err := s.notes.AddTags(index, tags...); err != nil {
		errc.Fprintln(s.out, err)
		return
	}
	okc.Fprintln(s.out, "Tags added.")
}

func (s *Shell) searchTag(args []string) {
	tag := s.arg(args, 0, "Tag: ")
	hits := s.notes.SearchTag(tag)
	if len(hits) == 0 {
		dimc.Fprintf(s.out, "No notes with tag '%s'.\n", tag)
		return
	}
	for _, n := range hits {
		s.printNote(n)
	}
}

func (s *Shell) searchNotes(ctx context.Context, args []string) {
	if s.notes.Len() == 0 {
		dimc.Fprintln(s.out, "No notes to search.")
		return
	}
	query := s.argRest(args, 0, "Phrase: ")
	if query == "" {
		return
	}

	notes := s.notes.Notes()
	byID := make(map[string]*domain.NoteRecord, len(notes))
	docs := make([]rank.Document, 0, len(notes))
	for _, n := range notes {
		byID[n.ID] = n
		docs = append(docs, rank.Document{
			Key:    n.ID,
			Text:   n.SearchText(),
			Fields: n.SearchFields(),
		})
	}

	rctx, cancel := s.backendCtx(ctx)
	cands := rank.Rank(rctx, query, docs, s.embedder)
	cancel()
	s.reportFallback(cands)
	if len(cands) == 0 {
		dimc.Fprintln(s.out, "No matching notes.")
		return
	}
	for _, c := range cands {
		if n, ok := byID[c.Key]; ok {
			s.printNote(n)
		}
	}
}

func (s *Shell) groupNotes(args []string) {
	var filter string
	if len(args) > 0 {
		filter = strings.ToLower(args[0])
	}

	groups := s.notes.GroupByTag()
	if filter != "" {
		filtered := groups[:0]
		for _, g := range groups {
			if g.Tag == filter {
				filtered = append(filtered, g)
			}
		}
		groups = filtered
	}

	if len(groups) == 0 {
		if filter != "" {
			dimc.Fprintf(s.out, "No notes with tag '%s'.\n", filter)
		} else {
			dimc.Fprintln(s.out, "No notes.")
		}
		return
	}

	for _, g := range groups {
		h1c.Fprintf(s.out, "\n%s (%d)\n", strings.ToUpper(g.Tag), len(g.Notes))
		for i, n := range g.Notes {
			fmt.Fprintf(s.out, "  %d. %s  ", i+1, n.Text)
			dimc.Fprintf(s.out, "%s\n", n.CreatedAt.Format("2006-01-02"))
		}
	}
}

func (s *Shell) printNote(n *domain.NoteRecord) {
	fmt.Fprintf(s.out, "%s   [%s]   %s\n",
		n.CreatedAt.Format("2006-01-02"), joinOr(n.Tags, ", "), n.Text)
}

// splitTags splits tag input on commas and whitespace
func splitTags(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}
