package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmad-code/agent-teams/pkg/errors"
	"github.com/bmad-code/agent-teams/pkg/logging"
	"github.com/bmad-code/agent-teams/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read into the
// configuration. AGENT_TEAMS_INSTALL_DRY_RUN sets install.dry_run.
const EnvPrefix = "AGENT_TEAMS_"

// Legacy environment variables, still honoured.
const (
	EnvLegacyForce   = "BMAD_FORCE"
	EnvLegacyAutoYes = "BMAD_AUTO_YES"
)

var legacyEnv = map[string]string{
	EnvLegacyForce:   "install.force",
	EnvLegacyAutoYes: "install.yes",
}

// LoadOptions selects the layers Load reads.
type LoadOptions struct {
	// Target is the install directory. Its .agent-teams.toml is loaded when
	// present. Empty skips the project layer.
	Target string

	// UserConfig overrides the user config path. Empty means the XDG
	// location.
	UserConfig string

	// Overrides are flat dotted keys applied last, e.g. "install.force".
	Overrides map[string]interface{}
}

// Load builds the effective configuration.
func Load(opts LoadOptions) (*Config, error) {
	log := logging.GetLogger("config")
	k := koanf.New(".")
	var sources []string

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config, then project config
	userPath := opts.UserConfig
	if userPath == "" {
		userPath = paths.UserConfigPath()
	}
	files := []string{userPath}
	if opts.Target != "" {
		files = append(files, filepath.Join(opts.Target, paths.ProjectConfigFile))
	}
	for _, path := range files {
		loaded, err := loadFile(k, path)
		if err != nil {
			return nil, err
		}
		if loaded {
			sources = append(sources, path)
			log.Debug().Str("path", path).Msg("Loaded config file")
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}
	if err := k.Load(env.Provider("BMAD_", ".", func(s string) string {
		return legacyEnv[s]
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load legacy environment")
	}

	// 4. Flags
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	cfg, err := decode(k)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources
	return cfg, nil
}

// Default returns the embedded defaults alone.
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		// defaults.toml is compiled in.
		panic(err)
	}
	cfg, err := decode(k)
	if err != nil {
		panic(err)
	}
	return cfg
}

func loadFile(k *koanf.Koanf, path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config %s", path)
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return false, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
	}
	return true, nil
}

// envKey maps AGENT_TEAMS_SECTION_SOME_KEY to section.some_key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok || section == "" || rest == "" {
		return ""
	}
	return section + "." + rest
}

func decode(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
