package main

// modules.go - blank imports for all the modules that should be compiled in.

import (
	// *** Connectors; robot.yaml Protocol picks one
	_ "github.com/michalplat/panibiblia/connectors/discord"
	_ "github.com/michalplat/panibiblia/connectors/slack"
	_ "github.com/michalplat/panibiblia/connectors/terminal"

	// *** Plugins and jobs
	_ "github.com/michalplat/panibiblia/goplugins/biblia"
)
