package biblia

import (
	"context"
	"errors"

	"github.com/michalplat/panibiblia/bible/catalog"
	"github.com/michalplat/panibiblia/bible/chunker"
	"github.com/michalplat/panibiblia/bible/scripture"
	"github.com/michalplat/panibiblia/bible/verses"
	"github.com/michalplat/panibiblia/robot"
)

// passage is a resolved lookup target.
type passage struct {
	bookID      string
	bookName    string
	chapter     int
	sel         verses.Selection
	translation catalog.Translation
	note        string // deuterocanonical notice put before the header
}

func (s *service) admin(r robot.Robot) string {
	if len(s.cfg.AdminContact) > 0 {
		return s.cfg.AdminContact
	}
	if c := r.GetBotAttribute("contact"); c.RetVal == robot.Ok && len(c.Attribute) > 0 {
		return c.Attribute
	}
	return "admina"
}

// resolve finds the book for token. On failure the returned string is the
// reply explaining why.
func (s *service) resolve(token string, chapter int, sel verses.Selection, tr catalog.Translation) (*passage, string) {
	if book, ok := s.catalog.Lookup(token); ok {
		if chapter < 1 || chapter > book.Chapters {
			return nil, chapterOutOfRange(chapter, book)
		}
		return &passage{
			bookID:      book.ID,
			bookName:    book.Name,
			chapter:     chapter,
			sel:         sel,
			translation: tr,
		}, ""
	}
	if d, ok := catalog.LookupDeutero(token); ok {
		kjv, found := s.catalog.Translation(catalog.DeuteroTranslation)
		if !found {
			return nil, bookNotFound(token)
		}
		return &passage{
			bookID:      d.Code,
			bookName:    d.Description,
			chapter:     chapter,
			sel:         sel,
			translation: kjv,
			note:        deuteroNote(d.Code),
		}, ""
	}
	return nil, bookNotFound(token)
}

// lookup returns the messages answering one passage request, in sending
// order. Every failure is logged and answered.
func (s *service) lookup(ctx context.Context, r robot.Robot, token string, chapter int, sel verses.Selection, tr catalog.Translation) []string {
	p, msg := s.resolve(token, chapter, sel, tr)
	if p == nil {
		r.Log(robot.Debug, "Lookup of '%s %d' refused: %s", token, chapter, msg)
		return []string{msg}
	}
	text, err := s.client.Verses(ctx, p.translation.BibleID, p.bookID, p.chapter, sel.From, sel.To)
	if err != nil {
		return []string{p.note + s.fetchFailed(ctx, r, p, err)}
	}
	return s.format(r, p, text)
}

// format puts the header and the fenced text together and splits the
// result at verse boundaries, leaving room for the fences each part gets.
func (s *service) format(r robot.Robot, p *passage, text string) []string {
	full := p.note + passageHeader(p.bookName, p.chapter, p.sel.Display, p.translation.Name) + "```" + text + "```"
	chunks, err := chunker.Split(full, s.cfg.MessageLimit-6)
	if err != nil {
		r.Log(robot.Error, "Splitting %s %d:%s from %s: %v", p.bookID, p.chapter, p.sel, p.translation.Code, err)
		return []string{p.note + genericError(s.admin(r))}
	}
	return chunker.Fence(chunks)
}

// fetchFailed explains a failed verse request. A 404 usually means the
// verses run past the end of the chapter, so the chapter is counted.
func (s *service) fetchFailed(ctx context.Context, r robot.Robot, p *passage, err error) string {
	if !scripture.IsNotFound(err) {
		r.Log(robot.Error, "Fetching verses: %v", err)
		return genericError(s.admin(r))
	}
	count, cerr := s.client.ChapterVerseCount(ctx, p.translation.BibleID, p.bookID, p.chapter)
	if cerr != nil {
		if errors.Is(cerr, context.Canceled) {
			r.Log(robot.Warn, "Counting verses canceled: %v", cerr)
		} else {
			r.Log(robot.Error, "Counting verses after a 404: %v", cerr)
		}
		return genericError(s.admin(r))
	}
	r.Log(robot.Debug, "Verses %s past the end of %s %d (%d verses)", p.sel, p.bookID, p.chapter, count)
	return verseOutOfRange(p.sel.Display, p.chapter, p.bookName, count)
}
