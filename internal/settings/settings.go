// Package settings persists the user settings as key=value lines.
package settings

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultFile is the file name of the settings store.
const DefaultFile = "set.txt"

// Known keys.
const (
	KeyTrayPrompt = "spt"
	KeyVoice      = "voice_enabled"
	KeyOpacity    = "opacity"
)

// Keys lists the known keys in file order.
var Keys = []string{KeyTrayPrompt, KeyVoice, KeyOpacity}

// Defaults are used for missing keys and for unreadable files.
var Defaults = map[string]int{
	KeyTrayPrompt: 0,
	KeyVoice:      1,
	KeyOpacity:    10,
}

var descriptions = map[string]string{
	KeyTrayPrompt: "tray prompt when hidden (0=off, 1=on)",
	KeyVoice:      "voice announcements (0=off, 1=on)",
	KeyOpacity:    "window opacity (1-10)",
}

var (
	// ErrUnknownKey is returned by Set for keys outside Keys.
	ErrUnknownKey = errors.New("unknown setting")

	// ErrInvalid is returned when a value is outside its range.
	ErrInvalid = errors.New("invalid setting")
)

// Manager holds the settings and writes every change through to its file.
type Manager struct {
	path   string
	logger *slog.Logger
	values map[string]int
}

// Open loads the settings file at path. A missing file is created with
// the defaults; a malformed or out-of-range file yields the defaults.
// Write failures are logged, never returned.
func Open(path string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{path: path, logger: logger, values: maps.Clone(Defaults)}

	values, err := m.read()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		m.save()
	case err != nil:
		m.logger.Warn("load settings, using defaults", "path", path, "error", err)
	default:
		m.values = values
	}
	return m
}

func (m *Manager) read() (map[string]int, error) {
	f, err := os.Open(m.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	values := maps.Clone(Defaults)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, raw, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if _, known := Defaults[key]; !known {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		values[key] = n
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := Validate(values); err != nil {
		return nil, err
	}
	return values, nil
}

// Path returns the settings file path.
func (m *Manager) Path() string { return m.path }

// Get returns the value for key, or def when the key is unknown.
func (m *Manager) Get(key string, def int) int {
	if v, ok := m.values[key]; ok {
		return v
	}
	return def
}

// Set validates and stores one value, then rewrites the file.
func (m *Manager) Set(key string, value int) error {
	if _, ok := m.values[key]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	next := maps.Clone(m.values)
	next[key] = value
	if err := Validate(next); err != nil {
		return err
	}
	m.values = next
	m.save()
	return nil
}

// Update replaces every known value at once, as the settings dialog does
// on save. Keys missing from values keep their default.
func (m *Manager) Update(values map[string]int) error {
	next := maps.Clone(Defaults)
	for k, v := range values {
		if _, ok := next[k]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownKey, k)
		}
		next[k] = v
	}
	if err := Validate(next); err != nil {
		return err
	}
	m.values = next
	m.save()
	return nil
}

// All returns a copy of the current values.
func (m *Manager) All() map[string]int { return maps.Clone(m.values) }

// VoiceEnabled reports whether announcements are on.
func (m *Manager) VoiceEnabled() bool { return m.Get(KeyVoice, Defaults[KeyVoice]) == 1 }

// TrayPrompt reports whether hiding the window shows a tray notice.
func (m *Manager) TrayPrompt() bool { return m.Get(KeyTrayPrompt, Defaults[KeyTrayPrompt]) == 1 }

// Opacity returns the window opacity step, 1 to 10.
func (m *Manager) Opacity() int { return m.Get(KeyOpacity, Defaults[KeyOpacity]) }

func (m *Manager) save() {
	var b strings.Builder
	b.WriteString("# Redstone Calculator settings\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "# %s: %s\n", k, descriptions[k])
	}
	b.WriteString("\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "%s=%d\n", k, m.values[k])
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		m.logger.Warn("save settings", "path", m.path, "error", err)
		return
	}
	if err := os.WriteFile(m.path, []byte(b.String()), 0o644); err != nil {
		m.logger.Warn("save settings", "path", m.path, "error", err)
	}
}
