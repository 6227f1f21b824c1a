package pkgconfig

// Config is a read-only view of configuration values. Missing keys return the
// zero value of the requested type.
type Config interface {
	GetInt(key string) int64
	GetBool(key string) bool
	GetFloat(key string) float64
	GetString(key string) string
	GetBinary(key string) []byte
	GetArray(key string) []string
	GetMap(key string) map[string]string
	Close() error
}

// Defaults are applied before the config file is read.
//
//nolint:gochecknoglobals // read-only table
var Defaults = map[string]any{
	"tz":                             "UTC",
	"server.address.http":            ":8080",
	"modules.identity.enabled":       true,
	"identity.data_namespace":        "http://onto-ns.com/data",
	"identity.batch_limit":           1000,
	"identity.event.buffer":          256,
	"identity.event.workers":         2,
	"identity.event.max_retries":     3,
	"identity.event.base_backoff_ms": 50,
	"identity.event.seen_capacity":   4096,
	"paths.platform":                 "native",
	"paths.search":                   "",
	"routine.max":                    100,
	"id.snowflake_node":              -1,
	"log.level":                      "info",
}
