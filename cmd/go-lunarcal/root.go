package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-lunarcal/internal/config"
	"github.com/tartampluch/go-lunarcal/internal/engine"
	"github.com/tartampluch/go-lunarcal/internal/i18n"
)

// app carries state shared by the commands of one invocation.
type app struct {
	stderr io.Writer

	configPath string
	ephePath   string
	epheMode   string
	lang       string
	debug      bool

	settings  config.Settings
	catalog   *i18n.Catalog
	logCloser io.Closer
	logReady  bool
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   config.AppCommand,
		Short: "Chinese lunisolar calendar converter",
		Long: `go-lunarcal converts civil date-times at UTC+8 into the Chinese lunisolar
calendar: lunar year, month and day, the four stem-branch pillars and the
solar terms bounding the solar month, computed from the Swiss Ephemeris.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, config.FlagConfig, "", config.FlagDescCfg)
	flags.StringVar(&a.ephePath, config.FlagEphePath, "", config.FlagDescPath)
	flags.StringVar(&a.epheMode, config.FlagEpheMode, "", config.FlagDescMode)
	flags.StringVar(&a.lang, config.FlagLang, "", config.FlagDescLang)
	flags.BoolVar(&a.debug, config.FlagDebug, false, config.FlagDescDebug)

	root.AddCommand(newConvertCmd(a), newServeCmd(a), newVersionCmd())
	return root
}

// setup runs before every command: logging, settings, then locales.
// Settings are validated once, after every override is applied.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.ensureLogging()
	logStartupInfo()

	s, err := config.LoadSettings(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed(config.FlagEphePath) {
		s.EphemerisPath = a.ephePath
	}
	if flags.Changed(config.FlagEpheMode) {
		s.EphemerisMode = a.epheMode
	}
	if flags.Changed(config.FlagLang) {
		s.Language = a.lang
	}
	if flags.Changed(config.FlagPort) {
		if s.Port, err = flags.GetString(config.FlagPort); err != nil {
			return err
		}
	}
	if flags.Changed(config.FlagRefresh) {
		if s.RefreshInterval, err = flags.GetInt(config.FlagRefresh); err != nil {
			return err
		}
	}
	if err := s.Validate(); err != nil {
		return err
	}
	a.settings = s
	slog.Debug(config.MsgSettingsUsed,
		config.LogKeyComponent, config.CompSettings,
		config.LogKeyPath, s.EphemerisPath,
		config.LogKeyMode, s.EphemerisMode,
		config.LogKeyLang, s.Language,
	)

	a.catalog, err = i18n.Load()
	return err
}

func (a *app) generator() *engine.Generator {
	return &engine.Generator{
		Clock: engine.RealClock{},
		Opener: engine.SwissOpener{
			Path:    a.settings.EphemerisPath,
			Moshier: a.settings.Moshier(),
		},
	}
}

func (a *app) ensureLogging() {
	if a.logReady {
		return
	}
	a.logCloser = setupLogging(a.stderr, a.debug)
	a.logReady = true
}

func (a *app) close() {
	if a.logCloser != nil {
		_ = a.logCloser.Close() // Best effort close
	}
}
