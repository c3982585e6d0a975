package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/cinedex/cinedex/constant"
	"github.com/cinedex/cinedex/key"
	"github.com/cinedex/cinedex/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is a single configuration entry with its factory default.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty renders the field for `cinedex config info`.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable bound to the field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.App + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON includes both the current and the default value.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
		Env         string `json:"env"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.TypeName(),
		Env:         f.Env(),
	})
}

// TypeName names the Go type of the default value.
func (f *Field) TypeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Default holds every registered configuration field keyed by name.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.APIURL, "https://movie-database-alternative.p.rapidapi.com", "Base URL of the OMDb-compatible metadata API")
	register(key.APIKey, "", "API key for the metadata API.\nLeave empty to use the key stored with \"cinedex auth set-key\"")
	register(key.APIKeyHeader, "x-rapidapi-key", "Header carrying the API key.\nSet to an empty string to send the key as a query parameter instead")
	register(key.APIKeyParam, "apikey", "Query parameter carrying the API key when api.key_header is empty")
	register(key.APITimeoutSeconds, 15, "Request timeout in seconds. Expired requests are reported as transport errors")
	register(key.APIRateLimit, 5, "Maximum requests per second sent to the metadata API")
	register(key.SearchDebounceMs, 500, "Quiet period in milliseconds before typed text becomes a search")
	register(key.SearchShowQuerySuggestions, true, "Show query suggestions when searching")
	register(key.NotifyDurationMs, 3000, "How long notices stay visible, in milliseconds")
	register(key.StorageBackend, "file", "Where favorites are stored.\nAvailable options are: file, bolt, redis")
	register(key.StorageRedisAddr, "127.0.0.1:6379", "Redis address used by the redis storage backend")
	register(key.StorageRedisPassword, "", "Redis password used by the redis storage backend")
	register(key.StorageRedisDB, 0, "Redis database used by the redis storage backend")
	register(key.StorageRedisPrefix, constant.App+":", "Prefix prepended to every redis key")
	register(key.CacheDetails, true, "Cache title details on disk")
	register(key.CacheDetailsHours, 48, "Lifetime of cached title details, in hours")
	register(key.FavoritesDetailsConcurrency, 4, "Parallel detail lookups when listing favorites")
	register(key.TUIItemSpacing, 1, "Spacing between items in the TUI")
	register(key.TUISearchPromptString, "> ", "Search prompt string to use")
	register(key.TUIShowPosters, false, "Show poster URLs under list items")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"purple":   style.Fg(style.Purple),
	"blue":     style.Fg(style.Blue),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(style.Green)(b)
			}
			return style.Fg(style.Red)(b)
		case string:
			return style.Fg(style.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
