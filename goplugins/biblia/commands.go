package biblia

import (
	"strconv"
	"strings"

	"github.com/michalplat/panibiblia/bible/catalog"
	"github.com/michalplat/panibiblia/bible/chunker"
	"github.com/michalplat/panibiblia/bible/verses"
	"github.com/michalplat/panibiblia/robot"
)

// maxHits caps the number of search results shown.
const maxHits = 10

func (s *service) translation(name string) (catalog.Translation, bool) {
	if len(strings.TrimSpace(name)) == 0 {
		return s.fallback, true
	}
	return s.catalog.Translation(name)
}

func say(r robot.Robot, msgs []string) {
	for _, m := range msgs {
		if ret := r.Say(m); ret != robot.Ok {
			r.Log(robot.Warn, "Sending reply part failed: %s", ret)
			return
		}
	}
}

func (s *service) wersy(r robot.Robot, book, chapter, raw, translation string) robot.TaskRetVal {
	tr, ok := s.translation(translation)
	if !ok {
		r.Say(unknownTranslation(translation, s.catalog.Translations()))
		return robot.Fail
	}
	sel, err := verses.Parse(raw)
	if err != nil {
		r.Log(robot.Debug, "Bad verses: %v", err)
		r.Say(badVerses(raw))
		return robot.Fail
	}
	say(r, s.lookup(r.Context(), r, catalog.Normalize(book), parseChapter(chapter), sel, tr))
	return robot.Normal
}

func (s *service) ksiegi(r robot.Robot) robot.TaskRetVal {
	for _, t := range s.catalog.BookTables(4) {
		r.Say("```\n" + t + "\n```")
	}
	return robot.Normal
}

func (s *service) skroty(r robot.Robot, book string) robot.TaskRetVal {
	list := s.catalog.AliasesOf(book)
	if len(list) == 0 {
		r.Say(unknownBook(book))
		return robot.Fail
	}
	r.Say(strings.Join(list, ", "))
	return robot.Normal
}

func (s *service) apokryfy(r robot.Robot) robot.TaskRetVal {
	r.Say("```\n" + catalog.DeuteroTable() + "\n```")
	return robot.Normal
}

// searchQuery is a parsed szukaj argument.
type searchQuery struct {
	phrase      string
	fuzziness   int
	translation string
}

// parseSearch reads leading key=value options off raw; values may be
// double-quoted. The rest is the phrase. The returned string is a reply
// when the options are bad.
func parseSearch(raw string) (searchQuery, string) {
	var q searchQuery
	rest := strings.TrimSpace(raw)
	for {
		key, value, remainder, ok := nextOption(rest)
		if !ok {
			break
		}
		switch catalog.Normalize(key) {
		case "dokladnosc", "dokładność":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 || n > 2 {
				return q, "Dokładność ma być **0**, **1** albo **2**, a podane zostało: **`" + value + "`**."
			}
			q.fuzziness = n
		case "tlumaczenie", "tłumaczenie":
			q.translation = value
		default:
			// not an option, so part of the phrase
			q.phrase = rest
			return q, checkPhrase(q)
		}
		rest = remainder
	}
	q.phrase = rest
	return q, checkPhrase(q)
}

func checkPhrase(q searchQuery) string {
	if len(strings.TrimSpace(q.phrase)) == 0 {
		return "Podaj frazę do wyszukania."
	}
	return ""
}

func nextOption(s string) (key, value, rest string, ok bool) {
	eq := strings.IndexByte(s, '=')
	if eq <= 0 || strings.ContainsAny(s[:eq], " \t\n") {
		return "", "", s, false
	}
	key, after := s[:eq], s[eq+1:]
	if strings.HasPrefix(after, `"`) {
		end := strings.IndexByte(after[1:], '"')
		if end < 0 {
			return "", "", s, false
		}
		return key, after[1 : end+1], strings.TrimSpace(after[end+2:]), true
	}
	if sp := strings.IndexAny(after, " \t\n"); sp >= 0 {
		return key, after[:sp], strings.TrimSpace(after[sp:]), true
	}
	return key, after, "", true
}

func (s *service) szukaj(r robot.Robot, raw string) robot.TaskRetVal {
	q, problem := parseSearch(raw)
	if len(problem) > 0 {
		r.Say(problem)
		return robot.Fail
	}
	tr, ok := s.translation(q.translation)
	if !ok {
		r.Say(unknownTranslation(q.translation, s.catalog.Translations()))
		return robot.Fail
	}
	res, err := s.client.Search(r.Context(), tr.BibleID, q.phrase, q.fuzziness)
	if err != nil {
		r.Log(robot.Error, "Search: %v", err)
		r.Say(genericError(s.admin(r)))
		return robot.MechanismFail
	}
	if len(res.Verses) == 0 {
		r.Say(noResults)
		return robot.Normal
	}
	hits := res.Verses
	if len(hits) > maxHits {
		hits = hits[:maxHits]
	}
	entries := make([]string, len(hits))
	for i, v := range hits {
		entries[i] = searchHit(v.Reference, v.Text)
	}
	text := searchHeader(q.phrase, tr.Name) + strings.Join(entries, "\n\n")
	chunks, err := chunker.Splitter{Marker: "\n\n`", Limit: s.cfg.MessageLimit}.Split(text)
	if err != nil {
		r.Log(robot.Warn, "Splitting search results at entries: %v", err)
		chunks = chunker.Lines(text, s.cfg.MessageLimit)
	}
	say(r, chunks)
	return robot.Normal
}
