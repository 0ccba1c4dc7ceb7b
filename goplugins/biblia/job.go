package biblia

import (
	"regexp"
	"strings"
	"time"

	"github.com/michalplat/panibiblia/bible/catalog"
	"github.com/michalplat/panibiblia/bible/verses"
	"github.com/michalplat/panibiblia/robot"
)

// jobConfig lists passages for werset runs without arguments, written the
// way the wersy command takes them, e.g. "J 3 16-18" or "Ps 23 1-6 KJV".
type jobConfig struct {
	Passages []string `yaml:"Passages"`
}

var passageMatcher = regexp.MustCompile(`^\s*` + passageRegex + `\s*$`)

// werset posts a passage to the job's channel. The arguments name the
// passage; without them one of the configured Passages is picked by the day
// of the year.
func werset(r robot.Robot, args ...string) robot.TaskRetVal {
	s := getService()
	if s == nil {
		r.Log(robot.Error, "Job run before the catalog was loaded")
		return robot.MechanismFail
	}
	passage := strings.Join(args, " ")
	if len(args) == 0 {
		var cfg *jobConfig
		if ret := r.GetTaskConfig(&cfg); ret != robot.Ok || len(cfg.Passages) == 0 {
			r.Log(robot.Error, "No arguments and no Passages configured")
			return robot.ConfigurationError
		}
		passage = pickPassage(cfg.Passages, time.Now())
	}
	m := passageMatcher.FindStringSubmatch(passage)
	if m == nil {
		r.Log(robot.Error, "Passage needs a book, a chapter and verses, got %q", passage)
		return robot.ConfigurationError
	}
	book, chapter, raw, translation := m[1], m[2], m[3], m[4]
	tr, ok := s.translation(translation)
	if !ok {
		r.Log(robot.Error, "Unknown translation '%s' in passage %q", translation, passage)
		return robot.ConfigurationError
	}
	sel, err := verses.Parse(raw)
	if err != nil {
		r.Log(robot.Error, "Bad verses in passage %q: %v", passage, err)
		return robot.ConfigurationError
	}
	say(r, s.lookup(r.Context(), r, catalog.Normalize(book), parseChapter(chapter), sel, tr))
	return robot.Normal
}

func pickPassage(passages []string, now time.Time) string {
	return passages[now.YearDay()%len(passages)]
}
