// Package biblia is the Pani Biblia plugin: it quotes Bible passages from
// API.Bible, searches them, and lists books, aliases and deuterocanonical
// books. The werset job posts a passage to a channel on a schedule.
package biblia

import (
	"strconv"
	"time"

	"github.com/michalplat/panibiblia/robot"
)

// passageRegex matches "<book> <chapter> <verses> [translation]"; the book
// may contain spaces, as in "1 Kor".
const passageRegex = `(.+?)\s+(\d+)\s+(\S+)(?:\s+(.+))?`

const defaultConfig = `
AllChannels: true
Help:
- Keywords: [ "wersy", "werset", "wers", "biblia" ]
  Helptext: [ "(alias)wersy <księga> <rozdział> <wersy> [tłumaczenie] - wypisze wersy, np. (alias)wersy J 3 16-18 KJV" ]
- Keywords: [ "ksiegi", "księgi", "biblia" ]
  Helptext: [ "(alias)ksiegi - wszystkie księgi ze skrótem, pełną nazwą i liczbą rozdziałów" ]
- Keywords: [ "skroty", "skróty", "biblia" ]
  Helptext: [ "(alias)skroty <księga> - alternatywne skróty podanej księgi" ]
- Keywords: [ "szukaj", "biblia" ]
  Helptext: [ "(alias)szukaj [dokladnosc=0|1|2] [tlumaczenie=KJV] <fraza> - wyszukiwanie słowa lub frazy w Biblii" ]
- Keywords: [ "apokryfy", "biblia" ]
  Helptext: [ "(alias)apokryfy - skróty ksiąg deuterokanonicznych" ]
- Keywords: [ "pomoc", "biblia" ]
  Helptext: [ "(alias)biblia pomoc - jak gadać z Panią Biblią" ]
CommandMatchers:
- Command: wersy
  Regex: '(?i:wersy)\s+` + passageRegex + `'
- Command: ksiegi
  Regex: '(?i:ksi[eę]gi)'
- Command: skroty
  Regex: '(?i:skr[oó]ty)\s+(.+)'
- Command: szukaj
  Regex: '(?i:szukaj)\s+(.+)'
- Command: apokryfy
  Regex: '(?i:apokryfy)'
- Command: pomoc
  Regex: '(?i:biblia[ _]pomoc|pomoc)'
Config:
  APIToken: {{ env "BIBLE_API_TOKEN" }}
  BaseURL: https://api.scripture.api.bible/v1
  RequestTimeout: 15s
  MessageLimit: 2000
  DefaultTranslation: UBG
  CatalogTranslation: UBG
`

type config struct {
	APIToken           string        `yaml:"APIToken"`
	BaseURL            string        `yaml:"BaseURL"`
	RequestTimeout     time.Duration `yaml:"RequestTimeout"`
	MessageLimit       int           `yaml:"MessageLimit"`
	DefaultTranslation string        `yaml:"DefaultTranslation"` // code or name used when a command doesn't give one
	CatalogTranslation string        `yaml:"CatalogTranslation"` // bible whose book list is the catalog
	AdminContact       string        `yaml:"AdminContact"`       // named in error replies; defaults to the robot's AdminContact
}

func init() {
	robot.RegisterPlugin("biblia", robot.PluginHandler{
		DefaultConfig: defaultConfig,
		Handler:       biblia,
		Config:        &config{},
	})
	robot.RegisterJob("werset", robot.JobHandler{
		Handler: werset,
		Config:  &jobConfig{},
	})
}

func biblia(r robot.Robot, command string, args ...string) robot.TaskRetVal {
	if command == "init" {
		var cfg *config
		if ret := r.GetTaskConfig(&cfg); ret != robot.Ok {
			r.Log(robot.Fatal, "Unable to get biblia configuration: %s", ret)
		}
		s, err := newService(r.Context(), cfg)
		if err != nil {
			r.Log(robot.Fatal, "Unable to load the book catalog: %v", err)
		}
		for _, skipped := range s.catalog.Skipped() {
			r.Log(robot.Warn, "Skipped conflicting alias %s", skipped)
		}
		setService(s)
		r.Log(robot.Info, "Loaded %d books from %s", len(s.catalog.Books()), cfg.CatalogTranslation)
		return robot.Normal
	}

	s := getService()
	if s == nil {
		r.Log(robot.Error, "Command '%s' before the catalog was loaded", command)
		return robot.MechanismFail
	}
	switch command {
	case "wersy":
		return s.wersy(r, args[0], args[1], args[2], args[3])
	case "ksiegi":
		return s.ksiegi(r)
	case "skroty":
		return s.skroty(r, args[0])
	case "szukaj":
		return s.szukaj(r, args[0])
	case "apokryfy":
		return s.apokryfy(r)
	case "pomoc":
		r.Say(helpMessage)
	default:
		r.Log(robot.Warn, "Unknown command: %s", command)
		return robot.Fail
	}
	return robot.Normal
}

// parseChapter converts the matched chapter digits; the regex only lets
// digits through, so an error means an absurdly long number.
func parseChapter(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return n
}
