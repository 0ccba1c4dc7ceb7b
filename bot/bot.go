// Package bot is the robot engine. It loads configuration, starts the
// connector, matches messages addressed to the robot against plugin commands
// and runs plugins and scheduled jobs.
package bot

/* bot.go defines core data structures and public methods for startup.
   handler.go has the methods for callbacks from the connector. */

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/michalplat/panibiblia/robot"
)

// VersionInfo is set by main.
type VersionInfo struct {
	Version, Commit string
}

var botVersion VersionInfo

var connectors = struct {
	m map[string]func(robot.Handler, *log.Logger) robot.Connector
	sync.Mutex
}{m: make(map[string]func(robot.Handler, *log.Logger) robot.Connector)}

// RegisterConnector should be called in an init function to register a type
// of connector.
func RegisterConnector(name string, connstarter func(robot.Handler, *log.Logger) robot.Connector) {
	connectors.Lock()
	defer connectors.Unlock()
	if _, exists := connectors.m[name]; exists {
		log.Fatal("Attempted registration of duplicate connector: ", name)
	}
	connectors.m[name] = connstarter
}

// state holds the runtime pieces that live for one run of the robot.
var state = struct {
	conn   robot.Connector
	stop   chan struct{}      // closed to stop the connector
	done   chan struct{}      // closed when the connector loop returns
	ctx    context.Context    // parent of every invocation context
	cancel context.CancelFunc // cancels ctx when the robot starts stopping
	sync.RWMutex
}{}

func getConnector() robot.Connector {
	state.RLock()
	defer state.RUnlock()
	return state.conn
}

func baseContext() context.Context {
	state.RLock()
	defer state.RUnlock()
	if state.ctx == nil {
		return context.Background()
	}
	return state.ctx
}

// initBot loads configuration and plugins; it exits on a configuration error.
func initBot(configPath, protocol string, logger *log.Logger, toFile bool) *configuration {
	setLogger(logger, toFile)

	cfg, err := loadConfig(configPath, protocol)
	if err != nil {
		Log(robot.Fatal, "Error loading initial configuration: %v", err)
	}
	setLogLevel(cfg.logLevel)

	currentCfg.Lock()
	currentCfg.configuration = cfg
	currentCfg.configPath = configPath
	currentCfg.Unlock()
	updateRegexes()

	loadPlugins(cfg, configPath)

	ctx, cancel := context.WithCancel(context.Background())
	state.Lock()
	state.stop = make(chan struct{})
	state.done = make(chan struct{})
	state.ctx = ctx
	state.cancel = cancel
	state.Unlock()

	pluginsRunning.Lock()
	pluginsRunning.shuttingDown = false
	pluginsRunning.Unlock()
	return cfg
}

// newConnector starts the configured connector.
func newConnector(protocol string, logger *log.Logger) (robot.Connector, error) {
	connectors.Lock()
	initializeConnector, ok := connectors.m[protocol]
	connectors.Unlock()
	if !ok {
		return nil, fmt.Errorf("no connector registered with name: %s", protocol)
	}
	conn := initializeConnector(handle, logger)
	state.Lock()
	state.conn = conn
	state.Unlock()
	return conn, nil
}

// run starts all the loops and returns a channel that closes when the robot
// shuts down. It returns after the connector loop has started and plugins
// are initialized.
func run(cfg *configuration) <-chan struct{} {
	state.RLock()
	conn := state.conn
	stopCh := state.stop
	done := state.done
	state.RUnlock()

	for _, channel := range cfg.joinChannels {
		if ret := conn.JoinChannel(channel); ret != robot.Ok {
			Log(robot.Warn, "Joining channel '%s': %s", channel, ret)
		}
	}

	go func(conn robot.Connector, stop <-chan struct{}, done chan<- struct{}) {
		conn.Run(stop)
		close(done)
	}(conn, stopCh, done)

	initializePlugins()
	scheduleJobs(cfg)
	return done
}

// stop is called whenever the robot needs to shut down gracefully. New
// commands are refused; the invocation context is canceled and the connector
// stopped once running commands finish. Plugins must not call stop
// synchronously, since it waits for them.
func stop() {
	pluginsRunning.Lock()
	if pluginsRunning.shuttingDown {
		pluginsRunning.Unlock()
		return
	}
	pluginsRunning.shuttingDown = true
	pluginsRunning.Unlock()

	Log(robot.Info, "Robot stopping, waiting for running commands")
	stopJobs()
	state.RLock()
	cancel := state.cancel
	stopCh := state.stop
	state.RUnlock()
	pluginsRunning.Wait()
	cancel()
	close(stopCh)
}

// handleSignals stops the robot on SIGINT/SIGTERM.
func handleSignals(done <-chan struct{}) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	select {
	case sig := <-sigs:
		Log(robot.Info, "Exiting on signal: %s", sig)
		stop()
	case <-done:
	}
}
