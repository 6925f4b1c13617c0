// Package merge imports contacts from another flat file into a store.
package merge

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/kordes/rolodex/internal/contact"
	"github.com/kordes/rolodex/internal/store"
)

// Report summarizes one merge run.
type Report struct {
	Added      int
	Duplicates int
	Malformed  int
}

// File merges the contacts in path into s. Malformed lines and duplicates
// of existing names are counted and skipped, matching load semantics.
// When dryRun is set nothing is added or persisted; the Report still
// reflects what a real run would do. The store persists once, at the end,
// only when at least one contact was added.
func File(s *store.Store, path string, dryRun bool) (Report, error) {
	records, malformed, err := readFile(path)
	if err != nil {
		return Report{}, err
	}

	rep := Report{Malformed: malformed}
	seen := make(map[string]bool)
	for _, r := range records {
		norm := contact.Normalize(r.Name)
		if seen[norm] || hasName(s, norm) {
			rep.Duplicates++
			continue
		}
		seen[norm] = true
		rep.Added++
	}

	if dryRun || rep.Added == 0 {
		return rep, nil
	}

	// Second pass does the actual inserts; Add persists after each one,
	// which keeps the file consistent even if a later insert fails.
	for _, r := range records {
		if _, err := s.Add(r.Name, r.Phone); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				continue
			}
			return rep, fmt.Errorf("merging %q: %w", r.Name, err)
		}
	}
	return rep, nil
}

// Preview returns patch text describing how merging path would change the
// store's file content, without modifying anything. An empty string means
// the merge would be a no-op.
func Preview(s *store.Store, path string) (string, error) {
	records, _, err := readFile(path)
	if err != nil {
		return "", err
	}

	before := s.Encoded()
	var sb strings.Builder
	sb.WriteString(before)
	seen := make(map[string]bool)
	for _, r := range records {
		norm := contact.Normalize(r.Name)
		if seen[norm] || hasName(s, norm) {
			continue
		}
		seen[norm] = true
		sb.WriteString(r.EncodeLine())
		sb.WriteByte('\n')
	}
	after := sb.String()
	if after == before {
		return "", nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	patches := dmp.PatchMake(before, diffs)
	return dmp.PatchToText(patches), nil
}

// readFile decodes every line of path, returning the valid records in file
// order and the count of non-blank lines that failed to decode.
func readFile(path string) ([]contact.Record, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	// bufio.Reader rather than Scanner: an over-long line is one more
	// malformed line, not a read error.
	var records []contact.Record
	malformed := 0
	br := bufio.NewReader(f)
	for {
		line, rerr := br.ReadString('\n')
		if strings.TrimSpace(line) != "" {
			r, err := contact.DecodeLine(strings.TrimRight(line, "\r\n"))
			if err != nil {
				malformed++
			} else {
				records = append(records, r)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return nil, 0, fmt.Errorf("reading import file: %w", rerr)
		}
	}
	return records, malformed, nil
}

func hasName(s *store.Store, norm string) bool {
	for r := range s.All() {
		if contact.Normalize(r.Name) == norm {
			return true
		}
	}
	return false
}
