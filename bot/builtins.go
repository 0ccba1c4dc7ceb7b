package bot

import (
	"fmt"
	"os"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"github.com/michalplat/panibiblia/robot"
)

func init() {
	robot.RegisterPlugin("builtin-help", robot.PluginHandler{DefaultConfig: helpConfig, Handler: help})
	robot.RegisterPlugin("builtin-admin", robot.PluginHandler{DefaultConfig: adminConfig, Handler: admin})
	robot.RegisterPlugin("builtin-logging", robot.PluginHandler{DefaultConfig: logConfig, Handler: logging})
}

var botRegex = regexp.MustCompile(`^([^(]*)\(bot\)(,?) *`)
var aliasRegex = regexp.MustCompile(`^\(alias\) *`)

func (r Robot) formatHelpLine(input string) (ret string) {
	botName := r.cfg.botinfo.UserName
	botAlias := ""
	if r.cfg.alias != 0 {
		botAlias = string(r.cfg.alias)
	}
	ret = input
	switch {
	case len(botName) == 0 && len(botAlias) == 0:
	case botRegex.MatchString(input):
		if len(botName) > 0 {
			ret = botRegex.ReplaceAllString(input, "${1}"+botName+"${2} ")
		} else {
			ret = botRegex.ReplaceAllString(input, botAlias)
		}
	case aliasRegex.MatchString(input):
		if len(botAlias) > 0 {
			ret = aliasRegex.ReplaceAllString(input, botAlias)
		} else {
			ret = aliasRegex.ReplaceAllString(input, botName+", ")
		}
	}
	if conn := getConnector(); conn != nil {
		return conn.FormatHelp(ret)
	}
	return ret
}

/* builtin plugins, like help */

func help(m robot.Robot, command string, args ...string) (retval robot.TaskRetVal) {
	r := m.(Robot)
	switch command {
	case "init":
		return
	case "catchall":
		alias := r.GetBotAttribute("alias").String()
		if len(r.Channel) > 0 {
			r.Say("No command matched in channel '%s'; try '%shelp'", r.Channel, alias)
		} else {
			r.Say("Command not found; try '%shelp'", alias)
		}
	case "info":
		name := r.cfg.botinfo.UserName
		if len(name) == 0 {
			name = "(unknown)"
		}
		alias := "(not set)"
		if r.cfg.alias != 0 {
			alias = string(r.cfg.alias)
		}
		hostName, _ := os.Hostname()
		msg := make([]string, 0, 6)
		msg = append(msg, "Here's some information about me and my running environment:")
		msg = append(msg, fmt.Sprintf("The hostname for the server I'm running on is: %s", hostName))
		msg = append(msg, fmt.Sprintf("My name is '%s', alias '%s', and my %s internal ID is '%s'", name, alias, r.Protocol, r.GetBotAttribute("id")))
		msg = append(msg, fmt.Sprintf("My software version is: %s, commit: %s (%s)", botVersion.Version, botVersion.Commit, runtime.Version()))
		if len(r.cfg.adminUsers) > 0 {
			msg = append(msg, fmt.Sprintf("The administrators for this robot are: %s", strings.Join(r.cfg.adminUsers, ", ")))
		}
		if len(r.cfg.adminContact) > 0 {
			msg = append(msg, fmt.Sprintf("The administrative contact for this robot is: %s", r.cfg.adminContact))
		}
		r.Say(strings.Join(msg, "\n"))
	case "help":
		var term string
		if len(args) == 1 && len(args[0]) > 0 {
			term = strings.ToLower(args[0])
			Log(robot.Trace, "Help requested for term '%s'", term)
		}
		pluginlist.RLock()
		plugins := pluginlist.p
		pluginlist.RUnlock()
		helpLines := make([]string, 0, 14)
		for _, plugin := range plugins {
			if !messageAppliesToPlugin(r.cfg, r.User, r.Channel, plugin) {
				continue
			}
			for _, phelp := range plugin.Help {
				if len(term) > 0 && !hasKeyword(phelp.Keywords, term) {
					continue
				}
				for _, helptext := range phelp.Helptext {
					helpLines = append(helpLines, r.formatHelpLine(helptext))
				}
			}
		}
		switch {
		case len(helpLines) == 0 && len(term) > 0:
			r.Say("Sorry, I didn't find any commands matching your keyword")
		case len(helpLines) == 0:
			r.Say("Sorry, there are no commands available here")
		default:
			r.Fixed().Say(strings.Join(helpLines, "\n"))
		}
	}
	return
}

func hasKeyword(keywords []string, term string) bool {
	for _, k := range keywords {
		if strings.ToLower(k) == term {
			return true
		}
	}
	return false
}

func admin(m robot.Robot, command string, args ...string) (retval robot.TaskRetVal) {
	r := m.(Robot)
	switch command {
	case "init":
		return
	case "quit":
		r.Log(robot.Audit, "Shutdown requested by user '%s'", r.User)
		r.Reply("Ok, I'm shutting down")
		go stop()
	}
	return
}

func logging(m robot.Robot, command string, args ...string) (retval robot.TaskRetVal) {
	r := m.(Robot)
	switch command {
	case "init":
		return
	case "level":
		setLogLevel(logStrToLevel(args[0]))
		r.Say("I've adjusted the log level to %s", args[0])
		r.Log(robot.Info, "User %s changed logging level to %s", r.User, args[0])
	case "showlevel":
		r.Say("My current logging level is: %s", logLevelToStr(getLogLevel()))
	case "show":
		page := 0
		if len(args) == 1 && len(args[0]) > 0 {
			page, _ = strconv.Atoi(args[0])
		}
		lines, wrapped := logPage(page)
		if len(lines) == 0 {
			r.Say("The log buffer is empty")
			return
		}
		if wrapped {
			r.Say("(warning: value too large for pages, wrapped past beginning of log)")
		}
		r.Fixed().Say(strings.Join(lines, "\n"))
	}
	return
}
