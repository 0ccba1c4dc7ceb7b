package bot

const helpConfig = `
AllChannels: true
CatchAll: true
Help:
- Keywords: [ "help" ]
  Helptext: [ "(alias)help <keyword> - get help for the provided <keyword>" ]
- Keywords: [ "info" ]
  Helptext: [ "(alias)info - some information about the robot" ]
CommandMatchers:
- Command: help
  Regex: '(?i:help ?([\d\w]+)?)'
- Command: info
  Regex: '(?i:info)'
`

const adminConfig = `
AllChannels: true
RequireAdmin: true
Help:
- Keywords: [ "quit" ]
  Helptext: [ "(alias)quit - request a graceful shutdown" ]
CommandMatchers:
- Command: quit
  Regex: '(?:quit|exit)'
`

const logConfig = `
AllChannels: true
RequireAdmin: true
Help:
- Keywords: [ "log", "logs", "level" ]
  Helptext: [ "(alias)set log level to <trace|debug|info|warning|error> - adjust the logging verbosity" ]
- Keywords: [ "show", "log", "logs" ]
  Helptext: [ "(alias)show log (page X) - display the last or Xth previous page of log output" ]
- Keywords: [ "show", "log", "logs", "level" ]
  Helptext: [ "(alias)show log level - show the current logging level" ]
CommandMatchers:
- Command: "level"
  Regex: '(?i:set log ?level(?: to)? (trace|debug|info|warning|error))'
- Command: "show"
  Regex: '(?i:show logs?(?: page (\d+))?)'
- Command: "showlevel"
  Regex: '(?i:show (?:log ?)?level)'
`
