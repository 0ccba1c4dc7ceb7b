package bot

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/michalplat/panibiblia/robot"
)

// PluginHelp specifies keywords and help text for the 'bot help system
type PluginHelp struct {
	Keywords []string `yaml:"Keywords"` // match words for 'help XXX'
	Helptext []string `yaml:"Helptext"` // help string to give for the keywords, conventionally starting with (bot) for commands
}

// InputMatcher specifies the command to match and what to pass to the plugin
type InputMatcher struct {
	Regex   string         `yaml:"Regex"`   // The regular expression string to match - bot adds ^\s* & \s*$
	Command string         `yaml:"Command"` // The name of the command to pass to the plugin with it's arguments
	re      *regexp.Regexp // The compiled regular expression
}

// pluginLoader mirrors conf/plugins/<name>.yaml merged over the plugin's
// DefaultConfig.
type pluginLoader struct {
	Disabled        bool           `yaml:"Disabled"`
	AllowDirect     *bool          `yaml:"AllowDirect"`     // defaults to DefaultAllowDirect
	DirectOnly      bool           `yaml:"DirectOnly"`      // only answer in a DM
	Channels        []string       `yaml:"Channels"`        // channels where the plugin is active, empty for DefaultChannels
	AllChannels     bool           `yaml:"AllChannels"`     // active in every channel the robot is in
	RequireAdmin    bool           `yaml:"RequireAdmin"`    // only admins can run the commands
	Users           []string       `yaml:"Users"`           // glob patterns of users allowed to run the commands
	CatchAll        bool           `yaml:"CatchAll"`        // called when the robot is addressed but nothing matched
	Help            []PluginHelp   `yaml:"Help"`            // All the keyword sets / help texts for this plugin
	CommandMatchers []InputMatcher `yaml:"CommandMatchers"` // Input matchers for messages that need to be directed to the 'bot
	Config          yaml.Node      `yaml:"Config"`          // decoded into the registered Config struct
}

// Plugin is a configured, loaded plugin.
type Plugin struct {
	name            string
	handler         robot.PluginHandler
	config          interface{} // pointer to a decoded copy of the registered Config, or nil
	AllowDirect     bool
	DirectOnly      bool
	Channels        []string
	AllChannels     bool
	RequireAdmin    bool
	Users           []string
	CatchAll        bool
	Help            []PluginHelp
	CommandMatchers []InputMatcher
}

// Job is a configured Go job, run from ScheduledJobs.
type Job struct {
	name    string
	handler robot.JobHandler
	config  interface{}
	Channel string
}

type jobLoader struct {
	Disabled bool      `yaml:"Disabled"`
	Channel  string    `yaml:"Channel"` // where the job posts
	Config   yaml.Node `yaml:"Config"`
}

var pluginlist = struct {
	p    []*Plugin
	jobs map[string]*Job
	sync.RWMutex
}{}

var (
	regsOnce sync.Once
	regs     *robot.Registrations
)

// getRegistrations collects the plugin and job registrations once per process.
func getRegistrations() *robot.Registrations {
	regsOnce.Do(func() {
		regs = robot.GetRegistrations()
	})
	return regs
}

// decodeConfig decodes node into a new value of the type registered as
// template, returning a pointer to it.
func decodeConfig(name string, template interface{}, node *yaml.Node) (interface{}, error) {
	if template == nil || node.Kind == 0 {
		return nil, nil
	}
	t := reflect.TypeOf(template)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	v := reflect.New(t)
	if err := node.Decode(v.Interface()); err != nil {
		return nil, fmt.Errorf("decoding Config for '%s': %w", name, err)
	}
	return v.Interface(), nil
}

// loadPlugins reads the configuration of every registered plugin and job.
// Plugins that fail to load are logged and skipped.
func loadPlugins(cfg *configuration, configPath string) {
	registrations := getRegistrations()
	names := make([]string, 0, len(registrations.Plugins))
	for name := range registrations.Plugins {
		names = append(names, name)
	}
	sort.Strings(names)

	plugins := make([]*Plugin, 0, len(names))
	for _, name := range names {
		handler := registrations.Plugins[name]
		var pl pluginLoader
		if err := getConfigFile(configPath, "plugins/"+name+".yaml", false, handler.DefaultConfig, &pl); err != nil {
			Log(robot.Error, "Loading configuration for plugin '%s', disabling: %v", name, err)
			continue
		}
		if pl.Disabled {
			Log(robot.Info, "Plugin '%s' is disabled by configuration", name)
			continue
		}
		p := &Plugin{
			name:            name,
			handler:         handler,
			AllowDirect:     cfg.defaultAllowDirect,
			DirectOnly:      pl.DirectOnly,
			Channels:        pl.Channels,
			AllChannels:     pl.AllChannels,
			RequireAdmin:    pl.RequireAdmin,
			Users:           pl.Users,
			CatchAll:        pl.CatchAll,
			Help:            pl.Help,
			CommandMatchers: pl.CommandMatchers,
		}
		if pl.AllowDirect != nil {
			p.AllowDirect = *pl.AllowDirect
		}
		if len(p.Channels) == 0 && !p.AllChannels {
			p.Channels = cfg.defaultChannels
		}
		ok := true
		for i := range p.CommandMatchers {
			m := &p.CommandMatchers[i]
			re, err := regexp.Compile(`^\s*` + m.Regex + `\s*$`)
			if err != nil {
				Log(robot.Error, "Skipping plugin '%s', couldn't compile command regex '%s': %v", name, m.Regex, err)
				ok = false
				break
			}
			m.re = re
		}
		if !ok {
			continue
		}
		config, err := decodeConfig(name, handler.Config, &pl.Config)
		if err != nil {
			Log(robot.Error, "Skipping plugin '%s': %v", name, err)
			continue
		}
		p.config = config
		Log(robot.Debug, "Loaded plugin '%s' with %d command matchers", name, len(p.CommandMatchers))
		plugins = append(plugins, p)
	}

	jobs := make(map[string]*Job, len(registrations.Jobs))
	for name, handler := range registrations.Jobs {
		var jl jobLoader
		if err := getConfigFile(configPath, "jobs/"+name+".yaml", false, "", &jl); err != nil {
			Log(robot.Error, "Loading configuration for job '%s', disabling: %v", name, err)
			continue
		}
		if jl.Disabled {
			continue
		}
		config, err := decodeConfig(name, handler.Config, &jl.Config)
		if err != nil {
			Log(robot.Error, "Skipping job '%s': %v", name, err)
			continue
		}
		channel := jl.Channel
		if len(channel) == 0 {
			channel = cfg.defaultJobChannel
		}
		jobs[name] = &Job{name: name, handler: handler, config: config, Channel: channel}
	}

	pluginlist.Lock()
	pluginlist.p = plugins
	pluginlist.jobs = jobs
	pluginlist.Unlock()
}

// initializePlugins sends the "init" command to every plugin, synchronously,
// so plugins are ready before the first message is dispatched.
func initializePlugins() {
	pluginlist.RLock()
	plugins := pluginlist.p
	pluginlist.RUnlock()
	currentCfg.RLock()
	cfg := currentCfg.configuration
	currentCfg.RUnlock()
	for _, plugin := range plugins {
		r := newRobot(cfg, &robot.Message{
			User:     cfg.botinfo.UserName,
			Protocol: robot.ProtocolFromString(cfg.protocol),
			Format:   cfg.defaultMessageFormat,
		}, plugin.name, plugin.config)
		Log(robot.Debug, "Initializing plugin: %s", plugin.name)
		callHandler(r, func() robot.TaskRetVal {
			return plugin.handler.Handler(r, "init")
		})
	}
}
