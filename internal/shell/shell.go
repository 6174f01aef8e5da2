package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/okravets/sytobook/internal/book"
	"github.com/okravets/sytobook/internal/command"
	"github.com/okravets/sytobook/internal/domain"
	"github.com/okravets/sytobook/internal/rank"
)

// Tagger suggests tags for a note text.
type Tagger interface {
	SuggestTags(ctx context.Context, text string, existing []string) ([]string, error)
}

var (
	okc   = color.New(color.FgGreen)
	warnc = color.New(color.FgYellow)
	errc  = color.New(color.FgRed)
	dimc  = color.New(color.Faint)
	h1c   = color.New(color.FgCyan, color.Bold)
)

// Options configures a Shell. Completer, Embedder and Tagger are nil
// when no backend is available; the shell then runs fully local.
type Options struct {
	Input     io.Reader
	Output    io.Writer
	Completer command.Completer
	Embedder  rank.Embedder
	Tagger    Tagger
	Timeout   time.Duration
}

// Shell runs the interactive two-mode loop: it reads a line, resolves
// the first token to a command, prompts for missing arguments,
// dispatches, and prints the result.
type Shell struct {
	scanner  *bufio.Scanner
	out      io.Writer
	contacts *book.AddressBook
	notes    *book.NoteBook
	resolver *command.Resolver
	embedder rank.Embedder
	tagger   Tagger
	timeout  time.Duration
}

// New creates a Shell over the loaded collections
func New(contacts *book.AddressBook, notes *book.NoteBook, opts Options) *Shell {
	return &Shell{
		scanner:  bufio.NewScanner(opts.Input),
		out:      opts.Output,
		contacts: contacts,
		notes:    notes,
		resolver: command.NewResolver(opts.Completer),
		embedder: opts.Embedder,
		tagger:   opts.Tagger,
		timeout:  opts.Timeout,
	}
}

// backendCtx bounds a backend call so the loop cannot hang on the
// network.
func (s *Shell) backendCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Run processes lines until exit or end of input. The caller owns
// persistence: collections are flushed after Run returns.
func (s *Shell) Run(ctx context.Context) error {
	h1c.Fprintln(s.out, "\nWelcome to SYTObook — your personal contacts and notes assistant")
	if s.embedder == nil {
		warnc.Fprintln(s.out, "AI functions disabled (no API key).")
	}

	var mode domain.Mode
	for {
		if mode == "" {
			line, ok := s.read("\nChoose a mode > contacts | notes or exit: ")
			if !ok {
				return nil
			}
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "":
			case "exit", "close":
				return nil
			case string(domain.ModeContacts):
				mode = domain.ModeContacts
				s.printHelp(mode)
			case string(domain.ModeNotes):
				mode = domain.ModeNotes
				s.printHelp(mode)
			default:
				dimc.Fprintln(s.out, "Unknown mode. Enter 'contacts', 'notes' or 'exit'.")
			}
			continue
		}

		prompt := "\nContacts>>> Command: "
		if mode == domain.ModeNotes {
			prompt = "\nNotes>>> Command: "
		}
		line, ok := s.read(prompt)
		if !ok {
			return nil
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		cmd, err := s.resolveCommand(ctx, fields[0], mode)
		if err != nil {
			dimc.Fprintln(s.out, "Unknown command.")
			continue
		}
		args := fields[1:]

		switch cmd {
		case domain.CmdBack:
			mode = ""
		case domain.CmdExit, domain.CmdClose:
			return nil
		case domain.CmdHello, domain.CmdHelp:
			s.printHelp(mode)
		default:
			if mode == domain.ModeContacts {
				s.handleContact(ctx, cmd, args)
			} else {
				s.handleNote(ctx, cmd, args)
			}
		}
	}
}

// resolveCommand resolves the raw token against the mode's command set
// and confirms any correction with the user before applying it.
func (s *Shell) resolveCommand(ctx context.Context, raw string, mode domain.Mode) (domain.Command, error) {
	valid := domain.ContactCommands()
	if mode == domain.ModeNotes {
		valid = domain.NoteCommands()
	}

	rctx, cancel := s.backendCtx(ctx)
	cmd, err := s.resolver.Resolve(rctx, raw, valid)
	cancel()
	if err != nil {
		return "", err
	}

	if string(cmd) != strings.ToLower(strings.TrimSpace(raw)) {
		ans, _ := s.read(fmt.Sprintf("Did you mean '%s'? (y/n): ", cmd))
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(ans)), "y") {
			return "", command.ErrNoMatch
		}
	}
	return cmd, nil
}

func (s *Shell) read(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	if !s.scanner.Scan() {
		return "", false
	}
	return s.scanner.Text(), true
}

// arg returns the i-th argument, prompting for it when missing
func (s *Shell) arg(args []string, i int, prompt string) string {
	if i < len(args) {
		return args[i]
	}
	line, _ := s.read(prompt)
	return strings.TrimSpace(line)
}

// argRest joins the arguments from i on, prompting when missing
func (s *Shell) argRest(args []string, i int, prompt string) string {
	if i < len(args) {
		return strings.Join(args[i:], " ")
	}
	line, _ := s.read(prompt)
	return strings.TrimSpace(line)
}

// promptValidated keeps asking until the input passes validation.
// Blank input is returned as-is when allowed.
func (s *Shell) promptValidated(prompt string, validate func(string) error, allowBlank bool) string {
	for {
		line, ok := s.read(prompt)
		if !ok {
			return ""
		}
		line = strings.TrimSpace(line)
		if line == "" && allowBlank {
			return ""
		}
		if line == "" {
			errc.Fprintln(s.out, "Value cannot be empty.")
			continue
		}
		if validate != nil {
			if err := validate(line); err != nil {
				errc.Fprintln(s.out, err)
				continue
			}
		}
		return line
	}
}

func (s *Shell) confirm(prompt string) bool {
	ans, _ := s.read(prompt)
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(ans)), "y")
}

type cmdHelp struct {
	cmd  string
	desc string
}

var contactHelp = []cmdHelp{
	{"add", "add new contact"},
	{"change", "change contact's phone, email or address"},
	{"remove-phone", "remove contact's phone"},
	{"phone", "show contact's phones"},
	{"delete", "delete contact"},
	{"all", "show all contacts"},
	{"search", "search contacts by name, phone, email or notes"},
	{"add-birthday", "add birthday to contact"},
	{"show-birthday", "show contact's birthday"},
	{"birthdays", "show contacts with a birthday in the next N days"},
	{"add-contact-note", "add note to contact"},
	{"change-address", "change contact's address"},
	{"change-email", "change contact's email"},
	{"back", "return to mode selection"},
	{"exit | close", "end assistant work"},
	{"hello | help", "show all commands"},
}

var noteHelp = []cmdHelp{
	{"add-note", "add new note"},
	{"list-notes", "view all notes"},
	{"add-tag", "add tags to a note"},
	{"search-tag", "find notes by tag"},
	{"search-note", "find notes by text"},
	{"group-notes", "show notes grouped by tag"},
	{"back", "return to mode selection"},
	{"exit | close", "end assistant work"},
	{"hello | help", "show all commands"},
}

func (s *Shell) printHelp(mode domain.Mode) {
	entries := contactHelp
	title := "Contact commands"
	if mode == domain.ModeNotes {
		entries = noteHelp
		title = "Note commands"
	}

	h1c.Fprintf(s.out, "\n%s\n", title)
	for _, e := range entries {
		fmt.Fprintf(s.out, "  %-18s %s\n", e.cmd, e.desc)
	}
}

// reportFallback tells the user when a semantic search silently fell
// back to literal matching, so empty results are never mistaken for a
// successful semantic pass.
func (s *Shell) reportFallback(cands []domain.MatchCandidate) {
	if s.embedder == nil {
		return
	}
	if len(cands) == 0 || cands[0].Strategy != domain.StrategySemantic {
		warnc.Fprintln(s.out, "Semantic search unavailable; showing literal matches.")
	}
}

func dash(v string) string {
	if v == "" {
		return "—"
	}
	return v
}

func joinOr(values []string, sep string) string {
	if len(values) == 0 {
		return "—"
	}
	return strings.Join(values, sep)
}

// titleCase capitalizes the first letter of each word for display;
// stored keys are lowercase.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = strings.ToUpper(string(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
