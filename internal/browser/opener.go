// Package browser opens links in the system browser and copies them to the
// clipboard.
package browser

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml/v2"

	"github.com/pders01/hnterm/internal/debuglog"
)

//go:embed openers.toml
var openersTOML []byte

// ErrNoOpener is returned when no opener command exists on this system.
var ErrNoOpener = errors.New("no application found to open URLs")

// OpenerDefinition describes how a command opens a URL.
type OpenerDefinition struct {
	Description string   `toml:"description"`
	Platforms   []string `toml:"platforms"`
	Args        []string `toml:"args,omitempty"`
}

// OpenersConfig is the shape of openers.toml.
type OpenersConfig struct {
	Order   []string                    `toml:"order"`
	Openers map[string]OpenerDefinition `toml:"openers"`
}

// Opener launches the first available opener for the platform.
type Opener struct {
	command string
	args    []string

	lookPath func(string) (string, error)
	start    func(*exec.Cmd) error
}

// NewOpener loads the built-in opener table, merged with the user's
// openers.toml in configDir when present.
func NewOpener(configDir string) (*Opener, error) {
	cfg, err := parseOpeners(openersTOML)
	if err != nil {
		return nil, err
	}
	if configDir != "" {
		if data, err := os.ReadFile(filepath.Join(configDir, "openers.toml")); err == nil {
			user, err := parseOpeners(data)
			if err != nil {
				debuglog.Warnf("ignoring user openers.toml: %v", err)
			} else {
				cfg = merge(cfg, user)
			}
		}
	}

	o := &Opener{lookPath: exec.LookPath, start: startDetached}
	o.command, o.args = o.pick(cfg, runtime.GOOS)
	debuglog.Debugf("browser opener: %q", o.command)
	return o, nil
}

func parseOpeners(data []byte) (OpenersConfig, error) {
	var cfg OpenersConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return OpenersConfig{}, fmt.Errorf("parsing openers.toml: %w", err)
	}
	return cfg, nil
}

// merge lets user entries override built-in ones. A user order goes first.
func merge(base, user OpenersConfig) OpenersConfig {
	out := OpenersConfig{Openers: make(map[string]OpenerDefinition, len(base.Openers))}
	for name, def := range base.Openers {
		out.Openers[name] = def
	}
	for name, def := range user.Openers {
		out.Openers[name] = def
	}
	out.Order = append(append(out.Order, user.Order...), base.Order...)
	return out
}

func (o *Opener) pick(cfg OpenersConfig, goos string) (string, []string) {
	for _, name := range cfg.Order {
		def, ok := cfg.Openers[name]
		if !ok || !supports(def, goos) {
			continue
		}
		if _, err := o.lookPath(name); err != nil {
			continue
		}
		return name, def.Args
	}
	return "", nil
}

func supports(def OpenerDefinition, goos string) bool {
	for _, p := range def.Platforms {
		if p == goos {
			return true
		}
	}
	return false
}

// Open validates link and hands it to the opener without waiting for it.
func (o *Opener) Open(link string) error {
	normalized, err := ValidateLink(link)
	if err != nil {
		return err
	}
	if o.command == "" {
		return ErrNoOpener
	}

	args := append(append([]string(nil), o.args...), normalized)
	cmd := exec.Command(o.command, args...)
	if err := o.start(cmd); err != nil {
		return fmt.Errorf("failed to start %s: %w", o.command, err)
	}
	return nil
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
