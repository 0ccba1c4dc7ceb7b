package bot

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/michalplat/panibiblia/robot"
)

// defaultRobotConfig is the base robot.yaml; conf/robot.yaml is merged over it.
const defaultRobotConfig = `
Protocol: terminal
LogLevel: info
Alias: "/"
DefaultAllowDirect: true
DefaultMessageFormat: Raw
`

// UserInfo is the robot's own identity.
type UserInfo struct {
	UserName     string `yaml:"UserName"` // the name the robot answers to
	FullName     string `yaml:"FullName"`
	UserID       string `yaml:"-"` // set by the connector
	protoMention string // set by the connector when the mention differs from UserName
}

// ScheduledJob is one entry of ScheduledJobs in robot.yaml.
type ScheduledJob struct {
	Name      string   `yaml:"Name"`
	Schedule  string   `yaml:"Schedule"` // cron spec, seconds first, e.g. "0 0 7 * * *"
	Arguments []string `yaml:"Arguments"`
}

// ConfigLoader mirrors the structure of conf/robot.yaml.
type ConfigLoader struct {
	AdminContact         string         `yaml:"AdminContact"`         // Contact info for whomever administers the robot
	Protocol             string         `yaml:"Protocol"`             // Name of the connector protocol to use, e.g., "discord"
	ProtocolConfig       yaml.Node      `yaml:"ProtocolConfig"`       // Protocol-specific configuration, decoded by the connector
	BotInfo              *UserInfo      `yaml:"BotInfo"`              // Information about the robot
	AdminUsers           []string       `yaml:"AdminUsers"`           // List of users with access to administrative commands
	Alias                string         `yaml:"Alias"`                // One-character alias for commands directed at the bot, e.g., '/ksiegi'
	IgnoreUsers          []string       `yaml:"IgnoreUsers"`          // Users the bot never talks to - like other bots
	JoinChannels         []string       `yaml:"JoinChannels"`         // Channels the bot should join on login (not supported by all protocols)
	DefaultChannels      []string       `yaml:"DefaultChannels"`      // Channels where plugins are active by default
	DefaultAllowDirect   bool           `yaml:"DefaultAllowDirect"`   // Whether plugins are available in a DM by default
	DefaultMessageFormat string         `yaml:"DefaultMessageFormat"` // How the robot formats outgoing messages; default: Raw
	DefaultJobChannel    string         `yaml:"DefaultJobChannel"`    // Where scheduled jobs post when the job doesn't say
	TimeZone             string         `yaml:"TimeZone"`             // For evaluating the hour in a job schedule
	ScheduledJobs        []ScheduledJob `yaml:"ScheduledJobs"`
	LogLevel             string         `yaml:"LogLevel"` // Initial log level: trace, debug, info, warn, error
}

// configuration is the validated, processed form of ConfigLoader.
type configuration struct {
	adminContact         string
	protocol             string
	protocolConfig       yaml.Node
	botinfo              UserInfo
	adminUsers           []string
	alias                rune
	ignoreUsers          []string
	joinChannels         []string
	defaultChannels      []string
	defaultAllowDirect   bool
	defaultMessageFormat robot.MessageFormat
	defaultJobChannel    string
	timeZone             *time.Location
	scheduledJobs        []ScheduledJob
	logLevel             robot.LogLevel
}

var currentCfg = struct {
	*configuration
	configPath string
	sync.RWMutex
}{}

func setFormat(format string) robot.MessageFormat {
	switch strings.ToLower(format) {
	case "fixed":
		return robot.Fixed
	case "variable":
		return robot.Variable
	default:
		return robot.Raw
	}
}

// loadConfig reads conf/robot.yaml from configPath. A non-empty protocol
// overrides the configured one.
func loadConfig(configPath, protocol string) (*configuration, error) {
	var nc ConfigLoader
	if err := getConfigFile(configPath, "robot.yaml", false, defaultRobotConfig, &nc); err != nil {
		return nil, fmt.Errorf("loading robot.yaml: %w", err)
	}
	c := &configuration{
		adminContact:         nc.AdminContact,
		protocol:             strings.ToLower(nc.Protocol),
		protocolConfig:       nc.ProtocolConfig,
		adminUsers:           nc.AdminUsers,
		ignoreUsers:          nc.IgnoreUsers,
		joinChannels:         nc.JoinChannels,
		defaultChannels:      nc.DefaultChannels,
		defaultAllowDirect:   nc.DefaultAllowDirect,
		defaultMessageFormat: setFormat(nc.DefaultMessageFormat),
		defaultJobChannel:    nc.DefaultJobChannel,
		scheduledJobs:        nc.ScheduledJobs,
		logLevel:             logStrToLevel(nc.LogLevel),
	}
	if len(protocol) > 0 {
		c.protocol = strings.ToLower(protocol)
	}
	if nc.BotInfo != nil {
		c.botinfo = *nc.BotInfo
	}
	if len(nc.Alias) > 0 {
		alias, size := utf8.DecodeRuneInString(nc.Alias)
		if size != len(nc.Alias) || !strings.ContainsRune(aliases+escapeAliases, alias) {
			return nil, fmt.Errorf("invalid alias '%s', must be one of: %s%s", nc.Alias, aliases, escapeAliases)
		}
		c.alias = alias
	}
	if len(nc.TimeZone) > 0 {
		tz, err := time.LoadLocation(nc.TimeZone)
		if err != nil {
			return nil, fmt.Errorf("loading TimeZone '%s': %w", nc.TimeZone, err)
		}
		c.timeZone = tz
	}
	return c, nil
}
