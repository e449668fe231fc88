package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	EnvPrefix      = "ASSETINFO_"
	FileName       = "asset-info.json"
	DefaultRPCFile = "constants/rpc.json"
)

// Values bound to command line flags.
var (
	RootDir    string
	ConfigFile string
	Workers    int
	LogLevel   string
	LogJSON    bool

	SkipRPC        bool
	SkipImage      bool
	Overwrite      bool
	JSONOutputFile string
)

// Config is resolved once per process and passed explicitly to every
// component that touches the repository.
type Config struct {
	Root       string `koanf:"root" validate:"required"`
	Workers    int    `koanf:"workers" validate:"min=1,max=256"`
	SkipRPC    bool   `koanf:"skip_rpc"`
	SkipImage  bool   `koanf:"skip_image"`
	Overwrite  bool   `koanf:"overwrite"`
	RPCFile    string `koanf:"rpc_file" validate:"required"`
	RPCTimeout int    `koanf:"rpc_timeout" validate:"min=1,max=120"`
	LogLevel   string `koanf:"log_level" validate:"oneof=debug info warn error"`
	LogJSON    bool   `koanf:"log_json"`
}

func GetDefaults() map[string]any {
	return map[string]any{
		"root":        ".",
		"workers":     min(runtime.NumCPU(), 256),
		"skip_rpc":    false,
		"skip_image":  false,
		"overwrite":   false,
		"rpc_file":    DefaultRPCFile,
		"rpc_timeout": 4,
		"log_level":   "info",
		"log_json":    false,
	}
}

// Load merges, lowest priority first: defaults, the config file, ASSETINFO_*
// environment variables and overrides (explicitly set flags). Without an
// explicit configPath the file is <root>/asset-info.json and may be absent.
func Load(configPath string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	root := resolveRoot(overrides)
	explicit := configPath != ""
	if !explicit {
		configPath = filepath.Join(root, FileName)
	}
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), json.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", configPath, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", configPath, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	for key, value := range overrides {
		k.Set(key, value)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	abs, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %s: %w", cfg.Root, err)
	}
	cfg.Root = abs
	return &cfg, nil
}

func resolveRoot(overrides map[string]any) string {
	if v, ok := overrides["root"].(string); ok && v != "" {
		return v
	}
	if v := os.Getenv(EnvPrefix + "ROOT"); v != "" {
		return v
	}
	return "."
}

// envTransform converts environment variable names to config keys,
// e.g. ASSETINFO_RPC_TIMEOUT -> rpc_timeout. Node overrides
// (ASSETINFO_NODE_*) are read by the networks package and ignored here.
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if strings.HasPrefix(key, "node_") {
		return ""
	}
	return key
}

// RPCPath is the endpoint list, relative paths being taken from Root.
func (c *Config) RPCPath() string {
	if filepath.IsAbs(c.RPCFile) {
		return c.RPCFile
	}
	return filepath.Join(c.Root, c.RPCFile)
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RPCTimeout) * time.Second
}
