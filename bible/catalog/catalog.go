// Package catalog holds the reference data the robot answers from: the
// canonical books with their chapter counts, the alias table used to find
// them, the deuterocanonical codes and the supported translations.
//
// A Catalog is built once at startup from the remote book list and the
// embedded reference files; it is read-only afterwards.
package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/michalplat/panibiblia/bible/aliases"
)

//go:embed data/translations.json data/references.json
var dataFS embed.FS

// ErrNoBooks is returned by New when the book list is empty.
var ErrNoBooks = errors.New("catalog: no books")

// Book is one canonical book as reported by the remote catalog.
type Book struct {
	Key      string // lower-case API id, the canonical alias key
	ID       string // API id used in request paths, e.g. "GEN"
	Abbrev   string // title-cased id shown in the book table, e.g. "Gen"
	Name     string
	Chapters int // intro chapters excluded
}

// NewBook derives the key and abbreviation from the API id.
func NewBook(id, name string, chapters int) Book {
	return Book{
		Key:      strings.ToLower(id),
		ID:       id,
		Abbrev:   titleID(id),
		Name:     name,
		Chapters: chapters,
	}
}

// titleID upper-cases the first letter and lower-cases the rest, so "1SA"
// becomes "1Sa".
func titleID(id string) string {
	lower := strings.ToLower(id)
	for i, r := range lower {
		if unicode.IsLetter(r) {
			return lower[:i] + string(unicode.ToUpper(r)) + lower[i+utf8.RuneLen(r):]
		}
	}
	return lower
}

// Translation is one of the bibles the robot can quote from.
type Translation struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	BibleID string `json:"bibleId"`
}

// LoadTranslations returns the embedded translation table.
func LoadTranslations() ([]Translation, error) {
	raw, err := dataFS.ReadFile("data/translations.json")
	if err != nil {
		return nil, err
	}
	var list []Translation
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("parsing translations.json: %w", err)
	}
	return list, nil
}

// LoadReferences returns the embedded alias lists keyed by upper-case API
// book id.
func LoadReferences() (map[string][]string, error) {
	raw, err := dataFS.ReadFile("data/references.json")
	if err != nil {
		return nil, err
	}
	var refs map[string]struct {
		Aliases string `json:"aliases"`
	}
	if err := json.Unmarshal(raw, &refs); err != nil {
		return nil, fmt.Errorf("parsing references.json: %w", err)
	}
	out := make(map[string][]string, len(refs))
	for id, r := range refs {
		for _, a := range strings.Split(r.Aliases, ",") {
			if a = strings.TrimSpace(a); a != "" {
				out[id] = append(out[id], a)
			}
		}
	}
	return out, nil
}

var polishLower = cases.Lower(language.Polish)

// Normalize prepares user-typed text for an alias lookup: NFC composition,
// trimmed, Polish lower case.
func Normalize(s string) string {
	return polishLower.String(norm.NFC.String(strings.TrimSpace(s)))
}

// Catalog answers book, alias, translation and deuterocanonical lookups.
type Catalog struct {
	books        []Book
	byKey        map[string]Book
	resolver     *aliases.Resolver
	translations []Translation
	skipped      []string
}

// New builds a Catalog. Every book is registered under its key, its
// abbreviation and its full name; refs adds further aliases per API id.
// Each alias is registered as given and normalized. An alias claimed by two
// books stays with the first one and is reported by Skipped.
func New(books []Book, refs map[string][]string, translations []Translation) (*Catalog, error) {
	if len(books) == 0 {
		return nil, ErrNoBooks
	}
	c := &Catalog{
		books:        make([]Book, len(books)),
		byKey:        make(map[string]Book, len(books)),
		translations: translations,
	}
	copy(c.books, books)

	b := aliases.NewBuilder()
	for _, book := range books {
		b.RegisterCanonical(book.Key)
		c.byKey[book.Key] = book
	}
	for _, book := range books {
		names := []string{book.Abbrev, book.Name}
		names = append(names, refs[strings.ToUpper(book.ID)]...)
		for _, name := range names {
			if name == "" {
				continue
			}
			for _, alias := range []string{name, Normalize(name)} {
				if err := b.AddAlias(alias, book.Key); err != nil {
					if errors.Is(err, aliases.ErrAliasConflict) {
						c.skipped = append(c.skipped, err.Error())
						continue
					}
					return nil, err
				}
			}
		}
	}
	c.resolver = b.Build()
	return c, nil
}

// Books returns the books in catalog order.
func (c *Catalog) Books() []Book {
	out := make([]Book, len(c.books))
	copy(out, c.books)
	return out
}

// Lookup finds the book a user-typed name refers to.
func (c *Catalog) Lookup(name string) (Book, bool) {
	key, err := c.resolver.Resolve(Normalize(name))
	if err != nil {
		return Book{}, false
	}
	book, ok := c.byKey[key]
	return book, ok
}

// AliasesOf returns the aliases of the book name refers to followed by its
// key, or nil when name is unknown.
func (c *Catalog) AliasesOf(name string) []string {
	book, ok := c.Lookup(name)
	if !ok {
		return nil
	}
	return append(c.resolver.AliasesOf(book.Key), book.Key)
}

// Skipped lists alias registrations dropped because of conflicts.
func (c *Catalog) Skipped() []string {
	return c.skipped
}

// Translation finds a translation by code or full name, ignoring case.
func (c *Catalog) Translation(name string) (Translation, bool) {
	name = strings.TrimSpace(name)
	for _, t := range c.translations {
		if strings.EqualFold(t.Code, name) || strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Translation{}, false
}

// Translations returns the supported translations.
func (c *Catalog) Translations() []Translation {
	out := make([]Translation, len(c.translations))
	copy(out, c.translations)
	return out
}

// PluralForm picks the Polish noun form for count: singular for exactly one,
// minor for counts ending in 2, 3 or 4, major otherwise. Counts 12 to 14
// take the minor form although Polish grammar wants the major one.
func PluralForm(count int, singular, minor, major string) string {
	switch {
	case count == 1:
		return singular
	case count%10 == 2 || count%10 == 3 || count%10 == 4:
		return minor
	default:
		return major
	}
}
