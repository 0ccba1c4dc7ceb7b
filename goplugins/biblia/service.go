package biblia

import (
	"context"
	"fmt"
	"sync"

	"github.com/michalplat/panibiblia/bible/catalog"
	"github.com/michalplat/panibiblia/bible/chunker"
	"github.com/michalplat/panibiblia/bible/scripture"
)

// minMessageLimit leaves the chunker room to find a verse boundary.
const minMessageLimit = 1200

// service holds everything a command needs; it's built once by the plugin's
// init command and read-only afterwards.
type service struct {
	client   *scripture.Client
	catalog  *catalog.Catalog
	cfg      config
	fallback catalog.Translation // used when a command names no translation
}

var current = struct {
	s *service
	sync.RWMutex
}{}

func setService(s *service) {
	current.Lock()
	current.s = s
	current.Unlock()
}

func getService() *service {
	current.RLock()
	defer current.RUnlock()
	return current.s
}

// newService fetches the book list of the catalog translation and builds
// the catalog around it.
func newService(ctx context.Context, cfg *config) (*service, error) {
	c := *cfg
	if c.MessageLimit <= 0 {
		c.MessageLimit = chunker.DefaultLimit
	}
	if c.MessageLimit < minMessageLimit {
		return nil, fmt.Errorf("MessageLimit %d is below %d", c.MessageLimit, minMessageLimit)
	}
	if len(c.CatalogTranslation) == 0 {
		c.CatalogTranslation = "UBG"
	}
	if len(c.DefaultTranslation) == 0 {
		c.DefaultTranslation = c.CatalogTranslation
	}

	translations, err := catalog.LoadTranslations()
	if err != nil {
		return nil, err
	}
	refs, err := catalog.LoadReferences()
	if err != nil {
		return nil, err
	}
	client := scripture.New(scripture.Config{
		BaseURL: c.BaseURL,
		APIKey:  c.APIToken,
		Timeout: c.RequestTimeout,
	})

	var source catalog.Translation
	for _, t := range translations {
		if t.Code == c.CatalogTranslation || t.Name == c.CatalogTranslation {
			source = t
		}
	}
	if len(source.BibleID) == 0 {
		return nil, fmt.Errorf("unknown CatalogTranslation %q", c.CatalogTranslation)
	}
	infos, err := client.Books(ctx, source.BibleID)
	if err != nil {
		return nil, err
	}
	books := make([]catalog.Book, 0, len(infos))
	for _, info := range infos {
		name := info.NameLong
		if len(name) == 0 {
			name = info.Name
		}
		books = append(books, catalog.NewBook(info.ID, name, info.ChapterCount()))
	}
	cat, err := catalog.New(books, refs, translations)
	if err != nil {
		return nil, err
	}
	fallback, ok := cat.Translation(c.DefaultTranslation)
	if !ok {
		return nil, fmt.Errorf("unknown DefaultTranslation %q", c.DefaultTranslation)
	}
	return &service{client: client, catalog: cat, cfg: c, fallback: fallback}, nil
}
