package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds the engine's recognized options (§6 Configuration).
type Config struct {
	KeycacheCapacity  int
	IllegalGraphNames map[string]bool
	IllegalNodeNames  map[string]bool
}

// Default returns the built-in defaults from §6.
func Default() Config {
	return Config{
		KeycacheCapacity:  1024,
		IllegalGraphNames: toSet([]string{"global"}),
		IllegalNodeNames:  toSet([]string{"nodes", "node_val", "edges", "edge_val"}),
	}
}

func toSet(names []string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

// Load reads configuration from an optional file at path (if non-empty)
// and from CHRONODB_-prefixed environment variables, falling back to
// Default() for anything neither source sets.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("chronodb")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	def := Default()
	v.SetDefault("keycache_capacity", def.KeycacheCapacity)
	v.SetDefault("illegal_graph_names", setToSlice(def.IllegalGraphNames))
	v.SetDefault("illegal_node_names", setToSlice(def.IllegalNodeNames))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}
	// The environment is consulted only for keys the file leaves unset,
	// so a file value wins over an environment value.
	for _, key := range []string{"keycache_capacity", "illegal_graph_names", "illegal_node_names"} {
		if !v.InConfig(key) {
			if err := v.BindEnv(key); err != nil {
				return Config{}, err
			}
		}
	}

	return Config{
		KeycacheCapacity:  v.GetInt("keycache_capacity"),
		IllegalGraphNames: toSet(v.GetStringSlice("illegal_graph_names")),
		IllegalNodeNames:  toSet(v.GetStringSlice("illegal_node_names")),
	}, nil
}

func setToSlice(s map[string]bool) []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	return out
}
