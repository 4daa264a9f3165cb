// Package csvio reads and writes contacts as CSV.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/rolodex/internal/types"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Header is the column order written by WriteContacts.
var Header = []string{
	"first_name", "last_name", "email", "phone", "company",
	"job_title", "contact_type", "linkedin_url", "notes",
}

// columnAliases maps each canonical column to the spellings common address
// book exports use. Matching ignores case, spaces, underscores and hyphens.
var columnAliases = map[string][]string{
	"first_name":   {"First Name", "Firstname", "Given Name", "First"},
	"last_name":    {"Last Name", "Lastname", "Surname", "Family Name", "Last"},
	"email":        {"Email Address", "E-mail", "E-mail Address", "Email 1 - Value", "Mail"},
	"phone":        {"Phone Number", "Mobile", "Mobile Phone", "Telephone", "Tel"},
	"company":      {"Company Name", "Organization", "Organisation", "Organization Name", "Org"},
	"job_title":    {"Title", "Job", "Position", "Role", "Organization Title"},
	"contact_type": {"Type", "Category"},
	"linkedin_url": {"LinkedIn", "LinkedIn Profile", "LinkedIn URL", "Profile URL"},
	"notes":        {"Note", "Comments", "Description"},
}

var (
	// ErrEmptyFile is returned when the input has no header row.
	ErrEmptyFile = errors.New("csv file is empty")
	// ErrNoKnownColumns is returned when the header names none of first name, last name or email.
	ErrNoKnownColumns = errors.New("csv header has no first name, last name or email column")
)

// headerIndex maps normalized header spellings to canonical column names.
var headerIndex = buildHeaderIndex()

func buildHeaderIndex() map[string]string {
	idx := make(map[string]string)
	for canonical, aliases := range columnAliases {
		idx[headerKey(canonical)] = canonical
		for _, a := range aliases {
			idx[headerKey(a)] = canonical
		}
	}
	return idx
}

func headerKey(s string) string {
	s = strings.ToLower(cleanCell(s))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-':
			return -1
		}
		return r
	}, s)
}

// cleanCell applies NFKC normalization and trims whitespace and stray BOMs.
func cleanCell(v string) string {
	v = norm.NFKC.String(v)
	v = strings.TrimPrefix(v, "\ufeff")
	return strings.TrimSpace(v)
}

// WriteContacts writes contacts with a Header row.
func WriteContacts(w io.Writer, contacts []types.Contact) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, c := range contacts {
		rec := []string{
			c.FirstName, c.LastName, deref(c.Email), deref(c.Phone), deref(c.Company),
			deref(c.JobTitle), deref(c.ContactType), deref(c.LinkedInURL), deref(c.Notes),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write contact %s: %w", c.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Row is a parsed, validated import row.
type Row struct {
	Line  int
	Input types.ContactInput
}

// RowError explains why an input line was skipped.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ParseContacts reads contacts from CSV with a header row. UTF-8 and UTF-16
// input with a byte order mark are both accepted. Rows with no first name,
// last name or email, or that fail validation, are returned as RowErrors.
func ParseContacts(r io.Reader) ([]Row, []RowError, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, ErrEmptyFile
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int)
	for i, h := range header {
		if canonical, ok := headerIndex[headerKey(h)]; ok {
			if _, dup := cols[canonical]; !dup {
				cols[canonical] = i
			}
		}
	}
	if !hasAny(cols, "first_name", "last_name", "email") {
		return nil, nil, ErrNoKnownColumns
	}

	var rows []Row
	var skipped []RowError
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				skipped = append(skipped, RowError{Line: perr.StartLine, Reason: perr.Err.Error()})
				continue
			}
			return nil, nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)

		get := func(col string) string {
			i, ok := cols[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return cleanCell(rec[i])
		}

		if isBlank(rec) {
			continue
		}

		in := types.ContactInput{
			FirstName:   get("first_name"),
			LastName:    get("last_name"),
			Email:       types.StringPtr(get("email")),
			Phone:       types.StringPtr(get("phone")),
			Company:     types.StringPtr(get("company")),
			JobTitle:    types.StringPtr(get("job_title")),
			ContactType: types.StringPtr(strings.ToLower(get("contact_type"))),
			LinkedInURL: types.StringPtr(withScheme(get("linkedin_url"))),
			Notes:       types.StringPtr(get("notes")),
		}
		in.Normalize()

		if in.FirstName == "" && in.LastName == "" && in.Email == nil {
			skipped = append(skipped, RowError{Line: line, Reason: "missing first name, last name and email"})
			continue
		}
		if err := in.Validate(); err != nil {
			skipped = append(skipped, RowError{Line: line, Reason: describe(err)})
			continue
		}
		rows = append(rows, Row{Line: line, Input: in})
	}
	return rows, skipped, nil
}

func describe(err error) string {
	if fe, ok := types.FirstFieldError(err); ok {
		return fmt.Sprintf("invalid %s (%s)", fe.Field, fe.Tag)
	}
	return err.Error()
}

func hasAny(cols map[string]int, names ...string) bool {
	for _, n := range names {
		if _, ok := cols[n]; ok {
			return true
		}
	}
	return false
}

func isBlank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// withScheme prefixes bare profile links such as "linkedin.com/in/jane" with https.
func withScheme(u string) string {
	if u == "" || strings.Contains(u, "://") {
		return u
	}
	return "https://" + u
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
