package bot

/*
start_t.go - non-interactive StartTest() function for automated "black box"
testing.
*/

import (
	"log"
	"os"
	"testing"

	"github.com/michalplat/panibiblia/robot"
)

// StartTest starts a robot for testing with the configuration in cfgdir,
// logging to logfile, and returns the exit / robot stopped channel along
// with the connector. The configured protocol should be "test".
func StartTest(cfgdir, logfile string, t *testing.T) (<-chan struct{}, robot.Connector) {
	t.Logf("Initializing test bot with config dir: \"%s\"", cfgdir)

	lf, err := os.Create(logfile)
	if err != nil {
		t.Fatalf("Error creating log file: (%T %v)", err, err)
	}
	botLogger := log.New(lf, "", log.LstdFlags)

	cfg := initBot(cfgdir, "", botLogger, true)
	conn, err := newConnector(cfg.protocol, botLogger)
	if err != nil {
		t.Fatalf("Starting connector: %v", err)
	}
	return run(cfg), conn
}
