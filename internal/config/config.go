package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the server settings. Flags win over environment variables,
// which win over the defaults.
type Config struct {
	Addr         string
	Origins      []string
	DefaultDepth int
	MaxDepth     int
	MaxPlies     int
}

func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("kingcapture", flag.ContinueOnError)

	depthDefault, err := getenvInt("KCHESS_DEPTH", 3)
	if err != nil {
		return Config{}, err
	}
	maxDepthDefault, err := getenvInt("KCHESS_MAX_DEPTH", 5)
	if err != nil {
		return Config{}, err
	}
	maxPliesDefault, err := getenvInt("KCHESS_MAX_PLIES", 100)
	if err != nil {
		return Config{}, err
	}

	addr := fs.String("addr", getenv("KCHESS_ADDR", ":3000"), "listen address")
	origins := fs.String("origins", getenv("KCHESS_ORIGINS", "http://localhost:5173"), "comma-separated allowed origins")
	depth := fs.Int("depth", depthDefault, "default computer search depth in plies")
	maxDepth := fs.Int("max-depth", maxDepthDefault, "largest search depth a client may request")
	maxPlies := fs.Int("max-plies", maxPliesDefault, "plies before a game ends on the move limit (0 = no limit)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:         *addr,
		Origins:      splitCSV(*origins),
		DefaultDepth: *depth,
		MaxDepth:     *maxDepth,
		MaxPlies:     *maxPlies,
	}
	if cfg.DefaultDepth < 1 {
		return Config{}, fmt.Errorf("depth must be at least 1, got %d", cfg.DefaultDepth)
	}
	if cfg.MaxDepth < cfg.DefaultDepth {
		return Config{}, fmt.Errorf("max-depth %d is below depth %d", cfg.MaxDepth, cfg.DefaultDepth)
	}
	if cfg.MaxPlies < 0 {
		return Config{}, fmt.Errorf("max-plies must not be negative, got %d", cfg.MaxPlies)
	}
	return cfg, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
