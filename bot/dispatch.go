package bot

import (
	"fmt"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"github.com/michalplat/panibiblia/robot"
)

var pluginsRunning struct {
	shuttingDown bool
	sync.WaitGroup
	sync.Mutex
}

// messageAppliesToPlugin checks the user and channel against the plugin's
// configuration to determine if the message should be evaluated. Used by
// both handleMessage and the help builtin.
func messageAppliesToPlugin(cfg *configuration, user, channel string, plugin *Plugin) bool {
	directMsg := false
	if len(channel) == 0 {
		directMsg = true
	}
	if !directMsg && plugin.DirectOnly {
		return false
	}
	if plugin.RequireAdmin {
		isAdmin := false
		for _, adminUser := range cfg.adminUsers {
			if user == adminUser {
				isAdmin = true
				break
			}
		}
		if !isAdmin {
			return false
		}
	}
	if len(plugin.Users) > 0 {
		userOk := false
		for _, allowedUser := range plugin.Users {
			match, err := filepath.Match(allowedUser, user)
			if match && err == nil {
				userOk = true
			}
		}
		if !userOk {
			return false
		}
	}
	if directMsg {
		return plugin.AllowDirect || plugin.DirectOnly
	}
	if plugin.AllChannels {
		return true
	}
	for _, pchannel := range plugin.Channels {
		if pchannel == channel {
			return true
		}
	}
	return false
}

// checkPluginMatchers checks command matchers for messages directed at the
// robot, and starts every plugin command that matches.
func checkPluginMatchers(cfg *configuration, msg *robot.Message, messagetext string) (commandMatched bool) {
	pluginlist.RLock()
	plugins := pluginlist.p
	pluginlist.RUnlock()
	for _, plugin := range plugins {
		Log(robot.Trace, "Checking message \"%s\" against plugin %s, active in %d channels (allchannels: %t)", messagetext, plugin.name, len(plugin.Channels), plugin.AllChannels)
		if !messageAppliesToPlugin(cfg, msg.User, msg.Channel, plugin) {
			Log(robot.Trace, "Plugin %s ignoring message in channel %s, doesn't meet criteria", plugin.name, msg.Channel)
			continue
		}
		for _, matcher := range plugin.CommandMatchers {
			Log(robot.Trace, "Checking \"%s\" against \"%s\"", messagetext, matcher.Regex)
			matches := matcher.re.FindAllStringSubmatch(messagetext, -1)
			if matches == nil {
				continue
			}
			commandMatched = true
			cmdArgs := matches[0][1:]
			r := newRobot(cfg, msg, plugin.name, plugin.config)
			if !startPlugin(r, plugin, matcher.Command, cmdArgs...) {
				return true
			}
		}
	}
	return commandMatched
}

// startPlugin runs the plugin in a new goroutine, unless the robot is
// shutting down.
func startPlugin(r Robot, plugin *Plugin, command string, args ...string) bool {
	pluginsRunning.Lock()
	if pluginsRunning.shuttingDown {
		pluginsRunning.Unlock()
		r.Say("Sorry, I'm shutting down and can't start any new tasks")
		return false
	}
	pluginsRunning.Add(1)
	pluginsRunning.Unlock()
	go callPlugin(r, plugin, command, args...)
	return true
}

// handleMessage checks a message directed at the robot against plugin
// commands, and dispatches it to all matching plugins. If nothing matched,
// any CatchAll plugins are called.
func handleMessage(cfg *configuration, msg *robot.Message, messagetext string) {
	if messagetext == "" {
		r := newRobot(cfg, msg, "bot", nil)
		r.Say("Yes?")
		return
	}
	if checkPluginMatchers(cfg, msg, messagetext) {
		return
	}
	pluginlist.RLock()
	plugins := pluginlist.p
	pluginlist.RUnlock()
	Log(robot.Debug, "Unmatched command sent to robot, calling catchalls: %s", messagetext)
	for _, plugin := range plugins {
		if plugin.CatchAll && messageAppliesToPlugin(cfg, msg.User, msg.Channel, plugin) {
			r := newRobot(cfg, msg, plugin.name, plugin.config)
			startPlugin(r, plugin, "catchall", messagetext)
		}
	}
}

func callPlugin(r Robot, plugin *Plugin, command string, args ...string) {
	defer pluginsRunning.Done()
	r.messageHeard()
	r.Log(robot.Debug, "Dispatching command '%s' with args %q from user '%s' in channel '%s'", command, args, r.User, r.Channel)
	start := time.Now()
	ret := callHandler(r, func() robot.TaskRetVal {
		return plugin.handler.Handler(r, command, args...)
	})
	lvl := robot.Debug
	if ret != robot.Normal && ret != robot.Success {
		lvl = robot.Warn
	}
	r.Log(lvl, "Command '%s' finished in %s with status %s", command, time.Since(start).Round(time.Millisecond), ret)
}

// callHandler runs a plugin or job callback, turning a panic into a
// MechanismFail.
func callHandler(r Robot, f func() robot.TaskRetVal) (ret robot.TaskRetVal) {
	defer func() {
		if rcv := recover(); rcv != nil {
			r.Log(robot.Error, "PANIC: %s\n%s", fmt.Sprint(rcv), debug.Stack())
			ret = robot.MechanismFail
		}
	}()
	return f()
}
