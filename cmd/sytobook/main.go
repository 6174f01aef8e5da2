package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/okravets/sytobook/internal/ai"
	"github.com/okravets/sytobook/internal/book"
	"github.com/okravets/sytobook/internal/config"
	"github.com/okravets/sytobook/internal/rank"
	"github.com/okravets/sytobook/internal/shell"
	"github.com/okravets/sytobook/internal/store"
	"github.com/spf13/cobra"
)

var dbPath string

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:          "sytobook",
		Short:        "Personal contacts and notes assistant",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (overrides config)")

	rootCmd.AddCommand(allCmd(cfg))
	rootCmd.AddCommand(searchCmd(cfg))
	rootCmd.AddCommand(notesCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getStore(cfg *config.Config) (*store.Store, error) {
	path := cfg.DBPath
	if dbPath != "" {
		path = dbPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	return store.New(path)
}

// backend returns the OpenAI client, or nil when no key is configured
func backend(cfg *config.Config) (*ai.Client, error) {
	client, err := ai.New(cfg)
	if errors.Is(err, ai.ErrUnavailable) {
		return nil, nil
	}
	return client, err
}

func runShell(cfg *config.Config) error {
	st, err := getStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	records, order, err := st.LoadContacts()
	if err != nil {
		return err
	}
	noteRecs, err := st.LoadNotes()
	if err != nil {
		return err
	}
	contacts := book.NewAddressBook(records, order)
	notes := book.NewNoteBook(noteRecs)

	client, err := backend(cfg)
	if err != nil {
		return err
	}
	opts := shell.Options{
		Input:   os.Stdin,
		Output:  os.Stdout,
		Timeout: cfg.Timeout(),
	}
	if client != nil {
		opts.Completer = client
		opts.Embedder = client
		opts.Tagger = client
	}

	save := func() error {
		recs, ord := contacts.Raw()
		if err := st.SaveContacts(recs, ord); err != nil {
			return err
		}
		return st.SaveNotes(notes.Notes())
	}

	// Flush on Ctrl-C the same way the exit command does. The handler
	// only closes stdin: the scanner read fails, Run returns, and the
	// save below runs on this goroutine, so the books are never
	// touched concurrently.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nInterrupted. Saving...")
		os.Stdin.Close()
	}()

	runErr := shell.New(contacts, notes, opts).Run(context.Background())

	if err := save(); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	fmt.Println("Data saved. Bye!")
	return runErr
}

func allCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "List all contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := getStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			records, order, err := st.LoadContacts()
			if err != nil {
				return err
			}
			contacts := book.NewAddressBook(records, order)
			if contacts.Len() == 0 {
				fmt.Println("No contacts yet. Run 'sytobook' to add one.")
				return nil
			}
			for _, rec := range contacts.Records() {
				fmt.Printf("%-30s %s\n", rec.FullName(), strings.Join(rec.Phones, ", "))
			}
			return nil
		},
	}
}

func searchCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Search contacts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := getStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			records, order, err := st.LoadContacts()
			if err != nil {
				return err
			}
			contacts := book.NewAddressBook(records, order)

			docs := make([]rank.Document, 0, contacts.Len())
			for _, rec := range contacts.Records() {
				docs = append(docs, rank.Document{
					Key:    rec.Key(),
					Text:   rec.SearchText(),
					Fields: rec.SearchFields(),
				})
			}

			client, err := backend(cfg)
			if err != nil {
				return err
			}
			var embedder rank.Embedder
			if client != nil {
				embedder = client
			}

			cands := rank.Rank(cmd.Context(), strings.Join(args, " "), docs, embedder)
			if len(cands) == 0 {
				fmt.Println("No matching contacts found.")
				return nil
			}
			for _, c := range cands {
				rec, ok := contacts.Get(c.Key)
				if !ok {
					continue
				}
				fmt.Printf("%.2f  %-9s  %s\n", c.Score, c.Strategy, rec.FullName())
			}
			return nil
		},
	}
}

func notesCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Work with notes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := getStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			noteRecs, err := st.LoadNotes()
			if err != nil {
				return err
			}
			if len(noteRecs) == 0 {
				fmt.Println("No notes yet. Run 'sytobook' to add one.")
				return nil
			}
			for i, n := range noteRecs {
				tags := strings.Join(n.Tags, ", ")
				if tags == "" {
					tags = "—"
				}
				fmt.Printf("%4d  %s  [%s]  %s\n", i+1, n.CreatedAt.Format("2006-01-02"), tags, n.Text)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "search [query]",
		Short: "Search notes by text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := getStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			noteRecs, err := st.LoadNotes()
			if err != nil {
				return err
			}

			docs := make([]rank.Document, 0, len(noteRecs))
			byID := make(map[string]int, len(noteRecs))
			for i, n := range noteRecs {
				byID[n.ID] = i
				docs = append(docs, rank.Document{
					Key:    n.ID,
					Text:   n.SearchText(),
					Fields: n.SearchFields(),
				})
			}

			client, err := backend(cfg)
			if err != nil {
				return err
			}
			var embedder rank.Embedder
			if client != nil {
				embedder = client
			}

			cands := rank.Rank(cmd.Context(), strings.Join(args, " "), docs, embedder)
			if len(cands) == 0 {
				fmt.Println("No matching notes found.")
				return nil
			}
			for _, c := range cands {
				i, ok := byID[c.Key]
				if !ok {
					continue
				}
				fmt.Printf("%.2f  %-9s  %s\n", c.Score, c.Strategy, noteRecs[i].Text)
			}
			return nil
		},
	})

	return cmd
}
