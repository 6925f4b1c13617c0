package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kordes/rolodex/internal/config"
	"github.com/kordes/rolodex/internal/contact"
	"github.com/kordes/rolodex/internal/merge"
	"github.com/kordes/rolodex/internal/render"
	"github.com/kordes/rolodex/internal/store"
	"github.com/kordes/rolodex/internal/ui"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// exitErr carries a numeric exit code through the cobra error path.
// Code 1 is a user-facing operation failure (duplicate, not found, bad
// input); code 2 is an I/O or config failure.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

// codeError returns an exitErr for the given code.
func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// outputFlags holds the shared flags of the record-listing commands.
type outputFlags struct {
	format string
	out    string
}

func main() {
	var fileFlag string

	root := &cobra.Command{
		Use:     "rolodex",
		Short:   "Manage a flat-file contact list",
		Long:    "Rolodex keeps contacts (name and phone) in a plain text file, one per line.\nRun without arguments for the interactive menu.",
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(fileFlag)
		},
	}
	root.PersistentFlags().StringVar(&fileFlag, "file", "", "Contacts file (default: ROLODEX_FILE, .rolodex.yaml, or contacts.txt)")

	root.AddCommand(&cobra.Command{
		Use:   "add <name> <phone>",
		Short: "Add a contact",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(fileFlag, args[0], args[1], cmd.OutOrStdout())
		},
	})

	var listFlags outputFlags
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(fileFlag, "", listFlags, cmd.OutOrStdout())
		},
	}
	addOutputFlags(listCmd, &listFlags, "table")
	root.AddCommand(listCmd)

	var findFlags outputFlags
	findCmd := &cobra.Command{
		Use:   "find <query>",
		Short: "Search contacts by name (case-insensitive substring)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(fileFlag, args[0], findFlags, cmd.OutOrStdout())
		},
	}
	addOutputFlags(findCmd, &findFlags, "table")
	root.AddCommand(findCmd)

	root.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a contact by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(fileFlag, args[0], cmd.OutOrStdout())
		},
	})

	var dryRun bool
	importCmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Merge contacts from another file, skipping duplicates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(fileFlag, args[0], dryRun, cmd.OutOrStdout())
		},
	}
	importCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the resulting file change as patch text without writing")
	root.AddCommand(importCmd)

	var exportFlags outputFlags
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export all contacts as json or yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(fileFlag, "", exportFlags, cmd.OutOrStdout())
		},
	}
	addOutputFlags(exportCmd, &exportFlags, "json")
	root.AddCommand(exportCmd)

	root.AddCommand(&cobra.Command{
		Use:   "shell",
		Short: "Run the interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(fileFlag)
		},
	})

	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		// cobra already printed the error
		os.Exit(1)
	}
}

func addOutputFlags(cmd *cobra.Command, flags *outputFlags, defaultFormat string) {
	f := cmd.Flags()
	f.StringVar(&flags.format, "format", defaultFormat, "Output format: table, json, or yaml")
	f.StringVar(&flags.out, "out", "", "Write output to file instead of stdout")
}

// openStore resolves the contacts file path and loads the store, warning
// on stderr about any malformed lines it had to skip.
func openStore(fileFlag string) (*store.Store, error) {
	cfg, err := config.Load(fileFlag)
	if err != nil {
		return nil, codeError(2, "%s", err)
	}
	s, err := store.Open(cfg.File)
	if err != nil {
		return nil, codeError(2, "%s", err)
	}
	if n := s.Skipped(); n > 0 {
		fmt.Fprintf(os.Stderr, "WARN: ignored %d unparseable line(s) in %s\n", n, s.Path())
	}
	return s, nil
}

// userError reports whether err is an expected, user-correctable failure
// rather than an I/O problem.
func userError(err error) bool {
	return errors.Is(err, store.ErrDuplicate) ||
		errors.Is(err, contact.ErrEmptyName) ||
		errors.Is(err, contact.ErrBadPhone) ||
		errors.Is(err, contact.ErrDelimiter)
}

func runAdd(fileFlag, name, phone string, w io.Writer) error {
	s, err := openStore(fileFlag)
	if err != nil {
		return err
	}

	r, err := s.Add(name, phone)
	if err != nil {
		if userError(err) {
			return codeError(1, "%s", err)
		}
		// The contact exists in memory but the rewrite failed.
		return codeError(2, "contact not saved: %s", err)
	}

	fmt.Fprintf(w, "added %s (%s)\n", r.Name, r.Phone)
	return nil
}

func runList(fileFlag, query string, flags outputFlags, w io.Writer) error {
	renderer, err := render.NewRenderer(flags.format)
	if err != nil {
		return codeError(1, "%s", err)
	}

	s, err := openStore(fileFlag)
	if err != nil {
		return err
	}

	var records []contact.Record
	if query == "" {
		for r := range s.All() {
			records = append(records, r)
		}
	} else {
		for r := range s.Find(query) {
			records = append(records, r)
		}
	}

	out, err := renderer.Render(records)
	if err != nil {
		return codeError(2, "rendering output: %s", err)
	}
	return writeOutput(out, flags.out, w)
}

func runDelete(fileFlag, name string, w io.Writer) error {
	s, err := openStore(fileFlag)
	if err != nil {
		return err
	}

	ok, err := s.Delete(name)
	if err != nil {
		return codeError(2, "contact removed in memory but file not updated: %s", err)
	}
	if !ok {
		return codeError(1, "no contact named %q", name)
	}

	fmt.Fprintf(w, "deleted %s\n", name)
	return nil
}

func runImport(fileFlag, path string, dryRun bool, w io.Writer) error {
	s, err := openStore(fileFlag)
	if err != nil {
		return err
	}

	if dryRun {
		preview, err := merge.Preview(s, path)
		if err != nil {
			return codeError(2, "%s", err)
		}
		if preview == "" {
			fmt.Fprintln(w, "nothing to import")
		} else {
			fmt.Fprint(w, preview)
		}
	}

	rep, err := merge.File(s, path, dryRun)
	if err != nil {
		return codeError(2, "%s", err)
	}
	fmt.Fprintf(w, "%d added, %d duplicate(s) skipped, %d malformed line(s) skipped\n",
		rep.Added, rep.Duplicates, rep.Malformed)
	return nil
}

func runShell(fileFlag string) error {
	s, err := openStore(fileFlag)
	if err != nil {
		return err
	}
	if err := ui.Run(s); err != nil {
		return codeError(2, "%s", err)
	}
	return nil
}

// writeOutput writes rendered bytes to outPath when set, otherwise to w
// with a trailing newline guaranteed.
func writeOutput(out []byte, outPath string, w io.Writer) error {
	if outPath != "" {
		if err := os.WriteFile(outPath, out, 0o644); err != nil {
			return codeError(2, "writing output file: %s", err)
		}
		return nil
	}
	if _, err := w.Write(out); err != nil {
		return codeError(2, "writing output: %s", err)
	}
	if len(out) > 0 && out[len(out)-1] != '\n' {
		fmt.Fprintln(w)
	}
	return nil
}
