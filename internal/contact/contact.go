package contact

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Delimiter separates the name and phone fields in the persisted file.
const Delimiter = ","

// Validation and parse errors. DecodeLine failures mean "skip this line";
// they never abort a file load.
var (
	ErrEmptyName = errors.New("name must not be empty")
	ErrBadPhone  = errors.New("phone must be digits with an optional leading +, 7-15 characters")
	ErrDelimiter = errors.New("field must not contain the delimiter")
	ErrBadLine   = errors.New("malformed line")
)

// phonePattern accepts an optional leading + followed by digits only.
// Length bounds are checked separately so the error can name them.
var phonePattern = regexp.MustCompile(`^\+?[0-9]+$`)

// Record is one contact. Both fields are trimmed and validated at
// construction; a zero Record is never valid.
type Record struct {
	Name  string `json:"name" yaml:"name"`
	Phone string `json:"phone" yaml:"phone"`
}

// New validates and constructs a Record. The stored casing is preserved;
// normalization happens only at comparison time (see Normalize).
func New(name, phone string) (Record, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)

	if name == "" {
		return Record{}, ErrEmptyName
	}
	if strings.Contains(name, Delimiter) {
		return Record{}, fmt.Errorf("name %q: %w", name, ErrDelimiter)
	}
	if strings.Contains(phone, Delimiter) {
		return Record{}, fmt.Errorf("phone %q: %w", phone, ErrDelimiter)
	}
	if len(phone) < 7 || len(phone) > 15 || !phonePattern.MatchString(phone) {
		return Record{}, fmt.Errorf("phone %q: %w", phone, ErrBadPhone)
	}

	return Record{Name: name, Phone: phone}, nil
}

// EncodeLine renders the Record as one persisted-file line, without the
// trailing newline. The delimiter cannot appear in either field (rejected
// in New), so no escaping scheme is needed.
func (r Record) EncodeLine() string {
	return r.Name + Delimiter + r.Phone
}

// DecodeLine parses one persisted-file line. The line must have exactly
// two delimiter-separated fields, and both must pass Record validation.
func DecodeLine(line string) (Record, error) {
	parts := strings.Split(line, Delimiter)
	if len(parts) != 2 {
		return Record{}, fmt.Errorf("%w: expected 2 fields, got %d", ErrBadLine, len(parts))
	}
	r, err := New(parts[0], parts[1])
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrBadLine, err)
	}
	return r, nil
}

// Normalize trims and case-folds s for uniqueness checks and search.
// Stored values keep their original casing.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
