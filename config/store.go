package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/mobile-next/remotepad/utils"
	"gopkg.in/ini.v1"
)

// ConfigEnvVar overrides the settings file location.
const ConfigEnvVar = "REMOTEPAD_CONFIG"

var sections = []string{"gesture", "stroke", "cursor", "surface"}

// envOverrides map environment variables onto settings keys.
var envOverrides = map[string]string{
	"REMOTEPAD_SENSITIVITY": "gesture.sensitivity",
	"REMOTEPAD_BACKEND":     "surface.backend",
	"REMOTEPAD_ADB_SERIAL":  "surface.adb_serial",
	"REMOTEPAD_WDA_ADDRESS": "surface.wda_address",
}

// DefaultPath returns the settings file location.
func DefaultPath() string {
	if p := os.Getenv(ConfigEnvVar); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "remotepad", "settings.ini")
}

// Store keeps the current settings and notifies subscribers when they
// change. Subscribers are called outside the lock, in subscription order.
type Store struct {
	mu       sync.RWMutex
	path     string
	settings Settings

	subMu  sync.Mutex
	subs   map[int]func(Settings)
	nextID int
}

// NewStore returns a store holding defaults, backed by path.
func NewStore(path string) *Store {
	return &Store{
		path:     path,
		settings: Defaults(),
		subs:     make(map[int]func(Settings)),
	}
}

// Load reads path if it exists, applies environment overrides and sanitizes
// the result. A missing file is not an error.
func Load(path string) (*Store, error) {
	s := NewStore(path)
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Get returns the current snapshot.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update applies fn to a copy of the settings, sanitizes it and publishes it.
func (s *Store) Update(fn func(*Settings)) Settings {
	s.mu.Lock()
	next := s.settings
	fn(&next)
	next = next.Sanitize()
	s.settings = next
	s.mu.Unlock()

	s.notify(next)
	return next
}

// Set assigns one value by its "section.key" name, e.g. "gesture.sensitivity".
func (s *Store) Set(name, value string) (Settings, error) {
	section, key, ok := strings.Cut(name, ".")
	if !ok || !isSection(section) {
		return Settings{}, fmt.Errorf("unknown setting: %s", name)
	}

	s.mu.Lock()
	file, err := toINI(s.settings)
	if err != nil {
		s.mu.Unlock()
		return Settings{}, err
	}

	if !file.Section(section).HasKey(key) {
		s.mu.Unlock()
		return Settings{}, fmt.Errorf("unknown setting: %s", name)
	}
	file.Section(section).Key(key).SetValue(value)

	next, err := fromINI(file, s.settings)
	if err != nil {
		s.mu.Unlock()
		return Settings{}, fmt.Errorf("invalid value for %s: %w", name, err)
	}
	next = next.Sanitize()
	s.settings = next
	s.mu.Unlock()

	s.notify(next)
	return next, nil
}

// Values lists every setting as "section.key" → value, sorted by name.
func (s *Store) Values() ([][2]string, error) {
	file, err := toINI(s.Get())
	if err != nil {
		return nil, err
	}

	var out [][2]string
	for _, section := range sections {
		for _, key := range file.Section(section).Keys() {
			out = append(out, [2]string{section + "." + key.Name(), key.String()})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out, nil
}

// Reload re-reads the backing file and environment, then notifies subscribers.
func (s *Store) Reload() error {
	next := Defaults()

	if s.path != "" {
		file, err := ini.Load(s.path)
		switch {
		case err == nil:
			next, err = fromINI(file, next)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", s.path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			utils.Verbose("No settings file at %s, using defaults", s.path)
		default:
			return fmt.Errorf("reading %s: %w", s.path, err)
		}
	}

	next, err := applyEnv(next)
	if err != nil {
		return err
	}
	next = next.Sanitize()

	s.mu.Lock()
	s.settings = next
	s.mu.Unlock()

	s.notify(next)
	return nil
}

// Save writes the current settings to the backing file.
func (s *Store) Save() error {
	if s.path == "" {
		return fmt.Errorf("settings store has no file")
	}

	file, err := toINI(s.Get())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	if err := file.SaveTo(s.path); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}

// Subscribe registers fn for change notifications and returns a function
// that removes it.
func (s *Store) Subscribe(fn func(Settings)) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(settings Settings) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(Settings), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(settings)
	}
}

func toINI(settings Settings) (*ini.File, error) {
	file := ini.Empty()
	targets := []interface{}{&settings.Gesture, &settings.Stroke, &settings.Cursor, &settings.Surface}
	for i, section := range sections {
		if err := file.Section(section).ReflectFrom(targets[i]); err != nil {
			return nil, fmt.Errorf("encoding [%s]: %w", section, err)
		}
	}
	return file, nil
}

// fromINI overlays the sections present in file onto base.
func fromINI(file *ini.File, base Settings) (Settings, error) {
	targets := []interface{}{&base.Gesture, &base.Stroke, &base.Cursor, &base.Surface}
	for i, section := range sections {
		if !file.HasSection(section) {
			continue
		}
		if err := file.Section(section).StrictMapTo(targets[i]); err != nil {
			return Settings{}, fmt.Errorf("[%s]: %w", section, err)
		}
	}
	return base, nil
}

func applyEnv(settings Settings) (Settings, error) {
	names := make([]string, 0, len(envOverrides))
	for env := range envOverrides {
		names = append(names, env)
	}
	sort.Strings(names)

	file, err := toINI(settings)
	if err != nil {
		return Settings{}, err
	}

	changed := false
	for _, env := range names {
		v := os.Getenv(env)
		if v == "" {
			continue
		}
		section, key, _ := strings.Cut(envOverrides[env], ".")
		if key == "sensitivity" {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				utils.Warn("Ignoring %s=%q: not a number", env, v)
				continue
			}
		}
		file.Section(section).Key(key).SetValue(v)
		changed = true
	}

	if !changed {
		return settings, nil
	}
	return fromINI(file, settings)
}

func isSection(name string) bool {
	for _, s := range sections {
		if s == name {
			return true
		}
	}
	return false
}
