// Package key defines the canonical set of configuration identifiers.
package key

// DefinedFieldsCount is the number of configuration fields registered by the config package.
const DefinedFieldsCount = 24

// Metadata API - these keys locate and authenticate the OMDb-compatible endpoint.
const (
	APIURL            = "api.url"
	APIKey            = "api.key"
	APIKeyHeader      = "api.key_header"
	APIKeyParam       = "api.key_param"
	APITimeoutSeconds = "api.timeout_seconds"
	APIRateLimit      = "api.rate_limit"
)

// Search Interaction - these keys tune how keystrokes turn into requests.
const (
	SearchDebounceMs           = "search.debounce_ms"
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Notices
const (
	NotifyDurationMs = "notify.duration_ms"
)

// Storage - these keys select and configure the favorites backend.
const (
	StorageBackend       = "storage.backend"
	StorageRedisAddr     = "storage.redis_addr"
	StorageRedisPassword = "storage.redis_password"
	StorageRedisDB       = "storage.redis_db"
	StorageRedisPrefix   = "storage.redis_prefix"
)

// Details cache
const (
	CacheDetails      = "cache.details"
	CacheDetailsHours = "cache.details_hours"
)

// Favorites
const (
	FavoritesDetailsConcurrency = "favorites.details_concurrency"
)

// Terminal User Interface (TUI) - these keys define the interactive environment's layout.
const (
	TUIItemSpacing        = "tui.item_spacing"
	TUISearchPromptString = "tui.search_prompt"
	TUIShowPosters        = "tui.show_posters"
)

// Logging
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI
const (
	CliColored = "cli.colored"
)
