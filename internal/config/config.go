package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go LunarCal"
	AppID             = "com.github.tartampluch.go-lunarcal"
	AppCommand        = "go-lunarcal"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	SettingsFileName  = "config.toml"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagConfig    = "config"
	FlagDebug     = "debug"
	FlagEphePath  = "ephe-path"
	FlagEpheMode  = "ephe-mode"
	FlagLang      = "lang"
	FlagFormat    = "format"
	FlagPort      = "port"
	FlagRefresh   = "refresh"
	FlagDescCfg   = "Path to the TOML settings file"
	FlagDescDebug = "Enable debug logging to stdout"
	FlagDescPath  = "Directory holding the Swiss Ephemeris data files"
	FlagDescMode  = "Ephemeris backend: swiss or moshier"
	FlagDescLang  = "Label language: zh or en"
	FlagDescFmt   = "Output format: text, json, yaml or ics"
	FlagDescPort  = "HTTP port to listen on"
	FlagDescRefr  = "Minutes between refreshes of the today feed (0 builds it once)"

	MsgVersionOutput = "%s version %s (commit %s, built %s, %s/%s)\n"
)

// -----------------------------------------------------------------------------
// Settings
// -----------------------------------------------------------------------------

const (
	EphemerisModeSwiss   = "swiss"
	EphemerisModeMoshier = "moshier"

	EnvEphePath = "EPHE_PATH"
	EnvLang     = "LUNARCAL_LANG"

	DefaultEphePath   = "."
	DefaultEpheMode   = EphemerisModeSwiss
	DefaultLanguage   = "zh"
	DefaultPort       = "18081"
	DefaultRefreshMin = 60
)

// SupportedLanguages lists the label languages (ISO 639-1).
var SupportedLanguages = []string{"zh", "en"}

// -----------------------------------------------------------------------------
// Output Formats
// -----------------------------------------------------------------------------

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatICS  = "ics"
)

// -----------------------------------------------------------------------------
// Date Input
// -----------------------------------------------------------------------------

const (
	// InputDate and InputDateTime describe the positional argument of convert;
	// the year may carry a sign and more than four digits.
	InputDate     = "YYYY-MM-DD"
	InputDateTime = "YYYY-MM-DDTHH:MM:SS"

	// ChinaStandardTimeName labels the fixed UTC+8 zone.
	ChinaStandardTimeName = "CST"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyTitle          = "report_title"
	TKeyLblInput       = "lbl_input"
	TKeyLblLeapYear    = "lbl_leap_year"
	TKeyLblLunarYear   = "lbl_lunar_year"
	TKeyLblLunarDate   = "lbl_lunar_date"
	TKeyLblYearGanZhi  = "lbl_year_ganzhi"
	TKeyLblMonthGanZhi = "lbl_month_ganzhi"
	TKeyLblDayGanZhi   = "lbl_day_ganzhi"
	TKeyLblHourGanZhi  = "lbl_hour_ganzhi"
	TKeyLblSectional   = "lbl_sectional_term"
	TKeyLblMidTerm     = "lbl_mid_term"
	TKeyLblDuration    = "lbl_duration"
	TKeyYes            = "yes"
	TKeyNo             = "no"
	TKeyCalName        = "cal_name"
	TKeyEvtLunarDate   = "event_lunar_date" // Requires Year, Month, Day
	TKeyEvtLunarDesc   = "event_lunar_desc" // Requires Year, Month, Day, Hour
	TKeyEvtSolarTerm   = "event_solar_term" // Requires Name
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go LunarCal//Engine//EN"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDescription = "DESCRIPTION"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"
	PropCategories  = "CATEGORIES"

	CategoryLunarDate = "LUNAR-DATE"
	CategorySolarTerm = "SOLAR-TERM"

	// UIDNamespace seeds the name-based UUIDs of calendar events.
	UIDNamespace       = "https://github.com/tartampluch/go-lunarcal"
	FormatUIDDate      = "date|%04d-%02d-%02d"
	FormatUIDTerm      = "term|%s|%04d-%02d-%02d"
	DefaultICalRefresh = 24 * time.Hour
)

// -----------------------------------------------------------------------------
// Limits
// -----------------------------------------------------------------------------

const (
	MinPort = 1
	MaxPort = 65535
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "10"
	AllowedMethods     = "GET, HEAD"
	RouteLunar         = "/api/v1/lunar"
	RouteToday         = "/today.ics"
	RouteHealth        = "/healthz"
	AddrSeparator      = ":"

	QueryYear   = "year"
	QueryMonth  = "month"
	QueryDay    = "day"
	QueryHour   = "hour"
	QueryMinute = "minute"
	QuerySecond = "second"
	QueryFormat = "format"
	QueryLang   = "lang"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrPortNumber     = "server port must be a number"
	ErrPortRange      = "server port must be between 1 and 65535"
	ErrEpheMode       = "configuration error: unsupported ephemeris mode"
	ErrLanguage       = "configuration error: unsupported language"
	ErrRefresh        = "configuration error: refresh interval must not be negative"
	ErrSettingsRead   = "failed to read settings file"
	ErrOpenEphemeris  = "failed to open ephemeris"
	ErrCloseEphem     = "failed to release ephemeris"
	ErrConversion     = "lunar conversion failed"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrICalYear       = "iCalendar cannot represent the year"
	ErrReportFormat   = "unsupported output format"
	ErrReportEncode   = "failed to encode report"
	ErrDateParse      = "unable to parse date"
	ErrQueryParam     = "invalid query parameter"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrConfigDir      = "could not determine user config dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrRefreshFailed  = "today feed refresh failed"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
	HTTPMsgUnavailable  = "Ephemeris unavailable"
	HTTPMsgHealthy      = "ok"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgConvertStart  = "Conversion started"
	MsgConvertDone   = "Conversion finished"
	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Calendar cache updated"
	MsgRequest       = "Conversion requested"
	MsgWorkerStart   = "Background worker started"
	MsgWorkerStop    = "Worker stopping due to context cancellation"
	MsgSettingsMiss  = "Settings file not found, using defaults"
	MsgSettings      = "Settings loaded"
	MsgSettingsUsed  = "Effective settings"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgLangFallback  = "Unsupported language, using default"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyAddr      = "addr"
	LogKeyMode      = "mode"
	LogKeyPath      = "path"
	LogKeyInterval  = "interval"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyFormat    = "format"
	LogKeyDate      = "date"
	LogKeyLunar     = "lunar_date"
	LogKeyLeap      = "leap_year"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompEngine   = "engine"
	CompServer   = "server"
	CompWorker   = "worker"
	CompMain     = "main"
	CompI18n     = "i18n"
	CompSettings = "settings"
)
