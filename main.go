// Pani Biblia is a chat robot that quotes and searches the Bible through
// API.Bible.
package main

import (
	"github.com/michalplat/panibiblia/bot"
)

// Version of panibiblia
var Version = "v1.0.0-snapshot"

// Commit supplied during linking
var Commit = "(not set)"

func main() {
	bot.Start(bot.VersionInfo{Version: Version, Commit: Commit})
}
