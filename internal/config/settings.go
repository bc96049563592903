package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Settings holds the user-tunable parameters, read from a TOML file.
type Settings struct {
	EphemerisPath   string `toml:"ephemeris_path"`
	EphemerisMode   string `toml:"ephemeris_mode"`
	Language        string `toml:"language"`
	ListenAddr      string `toml:"listen_addr"`
	Port            string `toml:"port"`
	RefreshInterval int    `toml:"refresh_interval_min"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() Settings {
	return Settings{
		EphemerisPath:   DefaultEphePath,
		EphemerisMode:   DefaultEpheMode,
		Language:        DefaultLanguage,
		ListenAddr:      LocalhostBindAddr,
		Port:            DefaultPort,
		RefreshInterval: DefaultRefreshMin,
	}
}

// DefaultSettingsPath is <UserConfigDir>/<AppCommand>/config.toml.
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrConfigDir, err)
	}
	return filepath.Join(dir, AppCommand, SettingsFileName), nil
}

// LoadSettings reads path over the defaults, then applies environment
// overrides. An empty path selects DefaultSettingsPath, which may be absent;
// an explicit path must exist. The result is not validated: callers apply
// their flag overrides first and then call Validate.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	explicit := path != ""
	if !explicit {
		p, err := DefaultSettingsPath()
		if err != nil {
			return s, err
		}
		path = p
	}

	meta, err := toml.DecodeFile(path, &s)
	switch {
	case err == nil:
		slog.Debug(MsgSettings,
			LogKeyComponent, CompSettings,
			LogKeyFile, path,
			LogKeyKey, fmt.Sprint(meta.Keys()),
		)
	case !explicit && errors.Is(err, fs.ErrNotExist):
		slog.Debug(MsgSettingsMiss,
			LogKeyComponent, CompSettings,
			LogKeyFile, path,
		)
	default:
		return s, fmt.Errorf("%s %s: %w", ErrSettingsRead, path, err)
	}

	s.applyEnv()
	return s, nil
}

func (s *Settings) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvEphePath)); v != "" {
		s.EphemerisPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLang)); v != "" {
		s.Language = v
	}
}

// Validate checks every field.
func (s Settings) Validate() error {
	if s.EphemerisMode != EphemerisModeSwiss && s.EphemerisMode != EphemerisModeMoshier {
		return fmt.Errorf("%s: %q", ErrEpheMode, s.EphemerisMode)
	}
	if !slices.Contains(SupportedLanguages, s.Language) {
		return fmt.Errorf("%s: %q", ErrLanguage, s.Language)
	}
	if s.RefreshInterval < 0 {
		return errors.New(ErrRefresh)
	}
	return ValidatePort(s.Port)
}

// Moshier reports whether the analytic ephemeris is selected.
func (s Settings) Moshier() bool {
	return s.EphemerisMode == EphemerisModeMoshier
}

// Addr joins ListenAddr and Port.
func (s Settings) Addr() string {
	return s.ListenAddr + AddrSeparator + s.Port
}

// ValidatePort checks that port is a number within MinPort..MaxPort.
func ValidatePort(port string) error {
	if strings.TrimSpace(port) == "" {
		return errors.New(ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return errors.New(ErrPortNumber)
	}
	if n < MinPort || n > MaxPort {
		return errors.New(ErrPortRange)
	}
	return nil
}
