package robot

import (
	"log"
	"regexp"
	"sync"
)

// Registrations holds all the registered plugins and jobs.
type Registrations struct {
	Plugins map[string]PluginHandler
	Jobs    map[string]JobHandler
}

var (
	registrations = &Registrations{
		Plugins: make(map[string]PluginHandler),
		Jobs:    make(map[string]JobHandler),
	}
	registrationsCalled = false
	registrationsMutex  sync.Mutex
)

var identifierRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// Names that are reserved for the engine's own plugins.
var reservedNames = map[string]bool{
	"bot":     true,
	"builtin": true,
}

// RegisterPlugin allows plugins to register themselves.
func RegisterPlugin(name string, handler PluginHandler) {
	registrationsMutex.Lock()
	defer registrationsMutex.Unlock()

	if registrationsCalled {
		log.Fatalf("Attempted to register plugin '%s' after registrations have been processed", name)
	}

	validateNameOrFatal(name)

	if _, exists := registrations.Plugins[name]; exists {
		log.Fatalf("Plugin '%s' is already registered", name)
	}
	if _, exists := registrations.Jobs[name]; exists {
		log.Fatalf("Plugin name '%s' collides with an existing job", name)
	}

	registrations.Plugins[name] = handler
}

// RegisterJob allows jobs to register themselves.
func RegisterJob(name string, handler JobHandler) {
	registrationsMutex.Lock()
	defer registrationsMutex.Unlock()

	if registrationsCalled {
		log.Fatalf("Attempted to register job '%s' after registrations have been processed", name)
	}

	validateNameOrFatal(name)

	if _, exists := registrations.Jobs[name]; exists {
		log.Fatalf("Job '%s' is already registered", name)
	}
	if _, exists := registrations.Plugins[name]; exists {
		log.Fatalf("Job name '%s' collides with an existing plugin", name)
	}

	registrations.Jobs[name] = handler
}

// GetRegistrations returns all collected registrations.
// It can only be called once; subsequent calls will return nil.
func GetRegistrations() *Registrations {
	registrationsMutex.Lock()
	defer registrationsMutex.Unlock()

	if registrationsCalled {
		return nil
	}
	registrationsCalled = true
	return registrations
}

func validateNameOrFatal(name string) {
	if !identifierRe.MatchString(name) {
		log.Fatalf("Name '%s' doesn't match the required pattern '%s'", name, identifierRe.String())
	}
	if reservedNames[name] {
		log.Fatalf("Name '%s' is reserved and cannot be registered", name)
	}
}
