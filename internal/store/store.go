// Package store owns the contact collection and its flat-file persistence.
// One Store instance exclusively owns one file for the life of the process;
// concurrent external writers are unsupported (last write wins).
package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/kordes/rolodex/internal/contact"
)

// ErrDuplicate is returned by Add when the normalized name already exists.
var ErrDuplicate = errors.New("contact already exists")

// Store is an ordered collection of contacts backed by a text file,
// one "name,phone" line per contact. Names are unique case-insensitively.
type Store struct {
	path     string
	contacts []contact.Record
	skipped  int
}

// Open loads the store from path. A missing file yields an empty store.
// Lines that fail to decode are counted in Skipped and ignored; a fully
// malformed file yields an empty store, never an error.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening contacts file: %w", err)
	}
	defer f.Close()

	// bufio.Reader rather than Scanner: a line of any length is still
	// just one line to decode (or skip), never a read error.
	br := bufio.NewReader(f)
	for {
		line, rerr := br.ReadString('\n')
		if strings.TrimSpace(line) != "" {
			s.ingest(strings.TrimRight(line, "\r\n"))
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return nil, fmt.Errorf("reading contacts file: %w", rerr)
		}
	}

	return s, nil
}

// ingest decodes one non-blank line, counting undecodable lines and
// duplicate names (first occurrence wins) as skipped.
func (s *Store) ingest(line string) {
	r, err := contact.DecodeLine(line)
	if err != nil {
		s.skipped++
		return
	}
	if s.lookup(contact.Normalize(r.Name)) >= 0 {
		s.skipped++
		return
	}
	s.contacts = append(s.contacts, r)
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Len returns the number of contacts.
func (s *Store) Len() int { return len(s.contacts) }

// Skipped returns how many malformed or duplicate lines the last Open ignored.
func (s *Store) Skipped() int { return s.skipped }

// Add validates, inserts, and persists a new contact. It fails with
// ErrDuplicate when a contact with the same normalized name exists, and
// propagates validation errors from contact.New. The file is rewritten on
// success; a persistence failure is returned but the in-memory insert stands.
func (s *Store) Add(name, phone string) (contact.Record, error) {
	r, err := contact.New(name, phone)
	if err != nil {
		return contact.Record{}, err
	}

	if s.lookup(contact.Normalize(r.Name)) >= 0 {
		return contact.Record{}, fmt.Errorf("%q: %w", r.Name, ErrDuplicate)
	}

	s.contacts = append(s.contacts, r)
	if err := s.Save(); err != nil {
		return r, err
	}
	return r, nil
}

// Find returns the contacts whose name contains query, case-insensitively,
// in insertion order. The sequence is restartable and never nil.
func (s *Store) Find(query string) iter.Seq[contact.Record] {
	q := contact.Normalize(query)
	return func(yield func(contact.Record) bool) {
		for _, r := range s.contacts {
			if !strings.Contains(contact.Normalize(r.Name), q) {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

// All returns every contact in insertion order.
func (s *Store) All() iter.Seq[contact.Record] {
	return func(yield func(contact.Record) bool) {
		for _, r := range s.contacts {
			if !yield(r) {
				return
			}
		}
	}
}

// Delete removes the contact whose normalized name equals name and reports
// whether a removal happened. The file is rewritten only on removal.
func (s *Store) Delete(name string) (bool, error) {
	i := s.lookup(contact.Normalize(name))
	if i < 0 {
		return false, nil
	}
	s.contacts = append(s.contacts[:i], s.contacts[i+1:]...)
	if err := s.Save(); err != nil {
		return true, err
	}
	return true, nil
}

// Save rewrites the backing file from the in-memory collection. The write
// goes to a temp file in the same directory followed by a rename, so a
// crash mid-write cannot truncate the previous contents.
func (s *Store) Save() error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".rolodex-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, r := range s.contacts {
		if _, err := w.WriteString(r.EncodeLine() + "\n"); err != nil {
			tmp.Close()
			return fmt.Errorf("writing contacts: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("writing contacts: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing contacts file: %w", err)
	}
	return nil
}

// Encoded returns the exact file content Save would write.
func (s *Store) Encoded() string {
	var sb strings.Builder
	for _, r := range s.contacts {
		sb.WriteString(r.EncodeLine())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// lookup returns the index of the contact with the given normalized name,
// or -1 when absent.
func (s *Store) lookup(norm string) int {
	for i, r := range s.contacts {
		if contact.Normalize(r.Name) == norm {
			return i
		}
	}
	return -1
}
