package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// Launcher opens Spotify URIs in a local application
type Launcher struct {
	command string   // configured command, empty for detection
	args    []string // additional arguments for the command
	logger  *slog.Logger

	lookPath func(file string) (string, error)
	start    func(name string, args ...string) error
}

// clientConfig describes how a desktop client accepts a URI
type clientConfig struct {
	path    string
	uriFlag string // prefix joined to the URI, e.g. "--uri="
}

// candidateClients defines the preferred clients for each platform
var candidateClients = map[string][]clientConfig{
	"linux":   {{path: "spotify", uriFlag: "--uri="}},
	"windows": {{path: "Spotify.exe", uriFlag: "--uri="}},
}

// NewLauncher creates a Launcher. An empty command enables auto-detection.
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  command,
		args:     args,
		logger:   logger,
		lookPath: exec.LookPath,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start() // Start async, don't wait
		},
	}
}

// Launch opens uri in the configured client, a detected client, or the
// system default handler
func (l *Launcher) Launch(uri string) error {
	if uri == "" {
		return fmt.Errorf("nothing to launch")
	}

	// Tier 1: User configured a specific command
	if l.command != "" {
		args := append(append([]string{}, l.args...), uri)
		l.logger.Info("launching configured client", "command", l.command, "args", args)
		return l.start(l.command, args...)
	}

	// Tier 2: A desktop client found in PATH
	for _, c := range candidateClients[runtime.GOOS] {
		if _, err := l.lookPath(c.path); err != nil {
			l.logger.Debug("client not available", "path", c.path, "error", err)
			continue
		}
		if err := l.start(c.path, c.uriFlag+uri); err == nil {
			l.logger.Info("launched detected client", "path", c.path)
			return nil
		}
	}

	// Tier 3: Fall back to system default (open/xdg-open/start)
	name, args := defaultOpener(runtime.GOOS)
	l.logger.Info("launching with system default", "os", runtime.GOOS, "uri", uri)
	return l.start(name, append(args, uri)...)
}

// OpenURL opens a web page with the system default handler
func (l *Launcher) OpenURL(u string) error {
	name, args := defaultOpener(runtime.GOOS)
	l.logger.Info("opening browser", "os", runtime.GOOS)
	return l.start(name, append(args, u)...)
}

func defaultOpener(goos string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", nil
	case "windows":
		return "cmd", []string{"/c", "start", ""}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", nil
	}
}
