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

// UserAgent identifies the HTTP client used to download remote vCards.
var UserAgent = "Go-LifeClock/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go LifeClock"
	AppID             = "com.github.tartampluch.go-lifeclock"
	KeyringService    = "com.github.tartampluch.go-lifeclock"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
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

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// Life Clock Model
// -----------------------------------------------------------------------------

const (
	// AverageLifespanYears is the fixed lifespan assumption of the projection.
	AverageLifespanYears = 70

	// DaysPerYear converts projected years into days (Julian year).
	DaysPerYear = 365.25

	// Per-second rates: 72 beats per minute and roughly 16 breaths per minute.
	HeartbeatsPerSecond = 1.2
	BreathsPerSecond    = 0.267

	// SleepFraction is the share of elapsed days assumed to be spent asleep.
	SleepFraction = 0.33

	// TickInterval is the period of the incremental updater.
	TickInterval = 1 * time.Second

	SecondsPerMinute = 60
	MinutesPerHour   = 60
	HoursPerDay      = 24
	MonthsPerYear    = 12
)

// -----------------------------------------------------------------------------
// CLI Flags, Environment & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion   = "version"
	FlagDebug     = "debug"
	FlagBirthDate = "birthdate"
	FlagVCard     = "vcard"
	FlagVCardUser = "vcard-user"
	FlagVCardName = "vcard-name"
	FlagPort      = "port"
	FlagLanguage  = "lang"
	FlagReminder  = "reminder"
	FlagServe     = "serve"
	FlagWatch     = "watch"

	FlagDescVersion   = "Show application version and exit"
	FlagDescDebug     = "Enable debug logging to stdout"
	FlagDescBirthDate = "Birth date (YYYY-MM-DD)"
	FlagDescVCard     = "Read the birth date from a vCard file path or http(s) URL"
	FlagDescVCardUser = "Basic auth user for a remote vCard (password read from the OS keyring)"
	FlagDescVCardName = "Formatted name (FN) of the card to use when the vCard holds several"
	FlagDescPort      = "Serve the clock API and anniversary calendar on this local port"
	FlagDescLanguage  = "Language of the status line and calendar summaries"
	FlagDescReminder  = "ISO8601 alarm trigger added to calendar events (e.g. -P1D)"
	FlagDescServe     = "Start the local HTTP server"
	FlagDescWatch     = "Print the live clock once per second"

	EnvBirthDate = "LIFECLOCK_BIRTHDATE"
	EnvVCard     = "LIFECLOCK_VCARD"
	EnvVCardUser = "LIFECLOCK_VCARD_USER"
	EnvPort      = "LIFECLOCK_PORT"
	EnvLanguage  = "LIFECLOCK_LANG"
	EnvReminder  = "LIFECLOCK_REMINDER"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Birth Date Sources
// -----------------------------------------------------------------------------

const (
	SourceModeDate  = "date"
	SourceModeLocal = "local"
	SourceModeWeb   = "web"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyEvtSummaryAge   = "event_summary_age"   // Requires Age
	TKeyEvtSummaryBirth = "event_summary_birth" // Age 0
	TKeyStatusEmpty     = "status_empty"
	TKeyStatusInvalid   = "status_invalid"
	TKeyStatusAge       = "status_age"       // Requires Years, Months, Days, Hours, Minutes, Seconds
	TKeyStatusCountdown = "status_countdown" // Requires Days, Hours, Minutes, Seconds
	TKeyStatusLife      = "status_life"      // Requires Percent, Days
	TKeyStatusTotals    = "status_totals"    // Requires Heartbeats, Breaths, Sleep
	TKeyStatusBirthday  = "status_birthday"
)

// SupportedLanguages defines the list of available languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultPort     = "18081"
	DefaultLanguage = "en"
	UIDSalt         = "go-lifeclock-v1-" // Salt for deterministic UID generation
	FeedYearsBefore = 1
	FeedYearsAfter  = 1
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go LifeClock//Engine//EN"
	ICalCalName   = "Anniversaries"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "golifeclock"

	// iCal/vCard Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"

	DefaultICalRefresh = 24 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	// Date layouts accepted for a birth date (ISO input and vCard BDAY)
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s"
	FormatUID       = "%s-%d@%s"

	// FallbackSummary is used when no localizer is wired.
	FallbackSummaryAge   = "Birthday (%d)"
	FallbackSummaryBirth = "Birth"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB
	MaxRequestBodySize  = 4 * 1024
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	AddrSeparator       = ":"

	RouteCalendar  = "/calendar.ics"
	RouteClock     = "/api/v1/clock"
	RouteBirthDate = "/api/v1/birthdate"
	RouteMetrics   = "/metrics"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderAllow           = "Allow"
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty = "configuration error: local path is empty"
	ErrWebURLEmpty    = "configuration error: web URL is empty"
	ErrFetcherMissing = "internal error: network fetcher is not initialized"
	ErrModeUnsupport  = "configuration error: unsupported source mode"
	ErrSourceMissing  = "configuration error: no birth date source (use -birthdate or -vcard)"
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrFetchRequest   = "failed to build vCard request"
	ErrFetchNetwork   = "vCard download failed"
	ErrFetchStatus    = "vCard server answered with an unexpected status"
	ErrFetchTooLarge  = "vCard response exceeds the size limit"
	ErrVCardParse     = "failed to parse vCard stream"
	ErrVCardNoBday    = "no vCard with a complete birth date"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrDateParse      = "unable to parse date"
	ErrDateInvalid    = "not a calendar date"
	ErrDateFuture     = "birth date is later than the evaluation instant"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrDecodeBody     = "failed to decode request body"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrFlags          = "failed to parse flags"
	ErrBirthResolve   = "failed to resolve birth date"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar not available until a valid birth date is set."
	HTTPMsgBadRequest   = "Bad Request"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down"
	MsgAppStarting    = "Starting application"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Calendar cache updated"
	MsgCacheCleared   = "Calendar cache cleared"
	MsgFeedSkipped    = "Calendar feed regeneration failed"
	MsgFetchStart     = "Downloading vCard"
	MsgFetchRejected  = "vCard server rejected the request"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgBirthResolved  = "Birth date resolved"
	MsgBirthSet       = "Birth date set"
	MsgBirthCleared   = "Birth date cleared"
	MsgBirthInvalid   = "Birth date is in the future"
	MsgScheduleStart  = "Tick schedule started"
	MsgScheduleCancel = "Tick schedule cancelled"
	MsgLateTick       = "Dropping tick from cancelled schedule"
	MsgRollover       = "Countdown reached the anniversary, recomputed for the next one"
	MsgSessionClosed  = "Session closed"
	MsgResync         = "Ticks were lost, state recomputed from the birth date"
	MsgBdayToday      = "Birthday today"
	MsgFeedGenerated  = "Calendar generation successful"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyUser      = "user"
	LogKeySession   = "session_id"
	LogKeyBirth     = "birth_date"
	LogKeyTarget    = "next_anniversary"
	LogKeyEvents    = "events"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyName      = "name"
	LogKeyInterval  = "interval"
	LogKeyDuration  = "duration_ms"
	LogKeyFrom      = "from"
	LogKeyTo        = "to"

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
	CompEngine  = "engine"
	CompSession = "session"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompSource  = "source"
	CompMain    = "main"
	CompI18n    = "i18n"
)
