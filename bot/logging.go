package bot

import (
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/michalplat/panibiblia/robot"
)

// Should be ample for the internal circular log
const buffLines = 500

var botLogger = struct {
	l         *log.Logger
	level     robot.LogLevel
	logToFile bool
	buffer    []string
	buffLine  int
	pageLines int
	sync.Mutex
}{
	level:     robot.Info,
	buffer:    make([]string, buffLines),
	pageLines: 20,
}

// terminalWriter is set by the terminal connector so log lines don't trample
// the readline prompt.
var terminalWriter io.Writer

func logStrToLevel(l string) robot.LogLevel {
	switch strings.ToLower(l) {
	case "trace":
		return robot.Trace
	case "debug":
		return robot.Debug
	case "info":
		return robot.Info
	case "audit":
		return robot.Audit
	case "warn", "warning":
		return robot.Warn
	default:
		return robot.Error
	}
}

func logLevelToStr(l robot.LogLevel) string {
	if l == robot.Warn {
		return "Warning"
	}
	return l.String()
}

// Log logs messages whenever the connector log level is
// less than the given level
func Log(l robot.LogLevel, m string, v ...interface{}) bool {
	botLogger.Lock()
	currlevel := botLogger.level
	logger := botLogger.l
	botLogger.Unlock()

	if l < currlevel && l != robot.Audit {
		return false
	}
	msg := logLevelToStr(l) + ": " + m
	if len(v) > 0 {
		msg = fmt.Sprintf(msg, v...)
	}
	if logger == nil {
		logger = log.Default()
	}
	if l == robot.Fatal {
		logger.Fatal(msg)
	}
	logger.Print(msg)
	tsMsg := fmt.Sprintf("%s %s", time.Now().Format("Jan 2 15:04:05"), msg)
	botLogger.Lock()
	botLogger.buffer[botLogger.buffLine] = tsMsg
	botLogger.buffLine = (botLogger.buffLine + 1) % buffLines
	botLogger.Unlock()
	return true
}

func setLogger(l *log.Logger, toFile bool) {
	botLogger.Lock()
	botLogger.l = l
	botLogger.logToFile = toFile
	botLogger.Unlock()
}

// setLogLevel updates the connector log level
func setLogLevel(l robot.LogLevel) {
	botLogger.Lock()
	botLogger.level = l
	botLogger.Unlock()
}

func getLogLevel() robot.LogLevel {
	botLogger.Lock()
	l := botLogger.level
	botLogger.Unlock()
	return l
}

// logPage returns up to pageLines of buffered log lines. If p = 0, it returns
// the most recent page, for p>0 it goes back; wrapped is true when p
// reaches past the start of the buffer and was taken modulo its length.
func logPage(p int) (lines []string, wrapped bool) {
	botLogger.Lock()
	defer botLogger.Unlock()
	pageLines := botLogger.pageLines
	pages := buffLines / pageLines
	page := p % pages
	if page != p {
		wrapped = true
	}
	end := botLogger.buffLine - page*pageLines
	for i := end - pageLines; i < end; i++ {
		idx := ((i % buffLines) + buffLines) % buffLines
		if line := botLogger.buffer[idx]; len(line) > 0 {
			lines = append(lines, line)
		}
	}
	return lines, wrapped
}
