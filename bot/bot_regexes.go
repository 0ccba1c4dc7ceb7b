package bot

import (
	"regexp"
	"strings"
	"sync"

	"github.com/michalplat/panibiblia/robot"
)

const escapeAliases = `*+^$?\[]{}`
const aliases = `&!;:-%#@~<>/`

var regexes = struct {
	preRegex  *regexp.Regexp // matches prefixed commands, e.g. "Biblia, ksiegi" or "/ksiegi"
	postRegex *regexp.Regexp // matches e.g. "ksiegi, Biblia"
	bareRegex *regexp.Regexp // matches the robot's bare name
	sync.RWMutex
}{}

var idRegex = regexp.MustCompile(`^<(.*)>$`)

// extractID checks for a bracketed protocol ID, e.g. "<U0123>"
func extractID(u string) (string, bool) {
	matches := idRegex.FindStringSubmatch(u)
	if len(matches) > 0 {
		return matches[1], true
	}
	return u, false
}

func bracket(s string) string {
	return "<" + s + ">"
}

func updateRegexes() {
	currentCfg.RLock()
	name := currentCfg.botinfo.UserName
	protoMention := currentCfg.botinfo.protoMention
	alias := currentCfg.alias
	currentCfg.RUnlock()
	preRegex, postRegex, bareRegex, errpre, errpost, errbare := updateRegexesWrapped(name, protoMention, alias)
	if errpre != nil {
		Log(robot.Error, "Compiling pre regex: %s", errpre)
	}
	if preRegex != nil {
		Log(robot.Debug, "Setting pre regex to: %s", preRegex)
	}
	if errpost != nil {
		Log(robot.Error, "Compiling post regex: %s", errpost)
	}
	if postRegex != nil {
		Log(robot.Debug, "Setting post regex to: %s", postRegex)
	}
	if errbare != nil {
		Log(robot.Error, "Compiling bare regex: %s", errbare)
	}
	if bareRegex != nil {
		Log(robot.Debug, "Setting bare regex to: %s", bareRegex)
	}
	regexes.Lock()
	regexes.preRegex = preRegex
	regexes.postRegex = postRegex
	regexes.bareRegex = bareRegex
	regexes.Unlock()
}

func updateRegexesWrapped(name, mention string, alias rune) (preRe, postRe, bareRe *regexp.Regexp, errpre, errpost, errbare error) {
	if alias == 0 && len(name) == 0 {
		Log(robot.Error, "Robot has no name or alias, and will only respond to direct messages")
		return
	}
	names := []string{}
	barenames := []string{}
	if alias != 0 {
		if strings.ContainsRune(escapeAliases, alias) {
			names = append(names, `\`+string(alias))
			barenames = append(barenames, `\`+string(alias))
		} else {
			names = append(names, string(alias))
			barenames = append(barenames, string(alias))
		}
	}
	if len(name) > 0 {
		quoted := regexp.QuoteMeta(name)
		if len(mention) > 0 {
			names = append(names, `(?i:`+quoted+`)[:, ]`)
			barenames = append(barenames, `(?i:`+quoted+`\??)`)
		} else {
			names = append(names, `@?`+quoted+`[:, ]`)
			barenames = append(barenames, `@?`+quoted+`\??`)
		}
	}
	if len(mention) > 0 {
		quoted := regexp.QuoteMeta(mention)
		names = append(names, `@`+quoted+`[:, ]`, `<@!?`+quoted+`>[:, ]?`)
		barenames = append(barenames, `@`+quoted+`\??`, `<@!?`+quoted+`>`)
	}
	preString := `^(?s)(?i:` + strings.Join(names, "|") + `\s*)(.*)$`
	preRe, errpre = regexp.Compile(preString)
	// NOTE: the preString regex matches a bare alias, but not a bare name
	if len(name) > 0 {
		postString := `^([^,@]+),\s+(?i:@?` + regexp.QuoteMeta(name) + `)([.?!])?$`
		postRe, errpost = regexp.Compile(postString)
		bareString := `^@?(?i:` + strings.Join(barenames, "|") + `)$`
		bareRe, errbare = regexp.Compile(bareString)
	}
	return
}

// parseCommand checks whether text is addressed to the robot, returning the
// command text with the addressing stripped.
func parseCommand(text string) (command string, isCommand bool) {
	regexes.RLock()
	preRegex := regexes.preRegex
	postRegex := regexes.postRegex
	bareRegex := regexes.bareRegex
	regexes.RUnlock()
	if preRegex != nil {
		if m := preRegex.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	if postRegex != nil {
		if m := postRegex.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1] + m[2]), true
		}
	}
	if bareRegex != nil && bareRegex.MatchString(text) {
		return "", true
	}
	return text, false
}
