package bot

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/michalplat/panibiblia/robot"
)

// CLI holds the command-line flags.
var CLI struct {
	ConfigDir string           `name:"config-dir" short:"c" default:"." type:"path" help:"Directory holding conf/robot.yaml and conf/plugins/"`
	Log       string           `name:"log" short:"l" env:"BIBLIA_LOGFILE" help:"Path to robot's log file"`
	Plainlog  bool             `name:"plainlog" short:"P" help:"Omit timestamps from the log"`
	Protocol  string           `name:"protocol" help:"Override the configured connector protocol (discord, slack, terminal)"`
	Version   kong.VersionFlag `name:"version" short:"v" help:"Print version information"`
}

// loadEnvironment loads .env from the config dir or the working directory,
// refusing files other users can read.
func loadEnvironment(configDir string) (string, error) {
	var envFile string
	for _, ef := range []string{filepath.Join(configDir, ".env"), ".env"} {
		if es, err := os.Stat(ef); err == nil {
			em := es.Mode()
			if (uint32(em) & 0066) != 0 {
				return "", fmt.Errorf("invalid file mode '%o' on environment file '%s'", em, ef)
			}
			envFile = ef
			break
		}
	}
	if envFile == "" {
		return "", nil
	}
	return envFile, godotenv.Overload(envFile)
}

// Start gets the robot going, and returns when it stops.
func Start(v VersionInfo) {
	botVersion = v
	kong.Parse(&CLI,
		kong.Name("panibiblia"),
		kong.Description("Pani Biblia - a chat robot quoting the Bible from API.Bible"),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("%s (%s)", v.Version, v.Commit)},
	)

	envFile, envErr := loadEnvironment(CLI.ConfigDir)
	if envErr != nil {
		log.Fatalf("Loading environment: %v", envErr)
	}

	logFlags := log.LstdFlags
	if CLI.Plainlog {
		logFlags = 0
	}
	var logOut io.Writer = os.Stderr
	toFile := false
	if len(CLI.Log) != 0 {
		lf, err := os.Create(CLI.Log)
		if err != nil {
			log.Fatalf("Error creating log file: (%T %v)", err, err)
		}
		logOut = lf
		toFile = true
	}
	log.SetOutput(logOut)
	logger := log.New(logOut, "", logFlags)
	logger.Println("Initialized logging ...")
	if len(envFile) > 0 {
		logger.Printf("Loaded private environment from '%s'", envFile)
	}
	logger.Printf("Starting up with config dir: %s", CLI.ConfigDir)

	cfg := initBot(CLI.ConfigDir, CLI.Protocol, logger, toFile)
	if _, err := newConnector(cfg.protocol, logger); err != nil {
		Log(robot.Fatal, "Starting connector: %v", err)
	}

	done := run(cfg)
	go handleSignals(done)
	<-done
	Log(robot.Info, "Robot stopped")
}
