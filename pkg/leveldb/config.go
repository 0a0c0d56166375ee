package leveldb

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Config bundles everything needed to open and use a database. It is
// usually loaded from YAML:
//
//	engine: pebble
//	open:
//	  create_if_missing: true
//	  compression: true
//	  cache_size: 8388608
//	read:
//	  verify_checksums: true
//	write:
//	  sync: true
//
// Keys left out keep their defaults. Unknown keys are rejected.
type Config struct {
	Engine  EngineType   `yaml:"engine"`
	Library string       `yaml:"library"`
	Open    OpenOptions  `yaml:"open"`
	Read    ReadOptions  `yaml:"read"`
	Write   WriteOptions `yaml:"write"`
}

// DefaultConfig returns a Config holding every default.
func DefaultConfig() Config {
	return Config{Engine: DefaultEngine}
}

// LoadConfig decodes a YAML config from r. An empty document yields
// DefaultConfig.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	engine, err := ParseEngineType(string(cfg.Engine))
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Engine = engine
	return cfg, nil
}

// LoadConfigFile reads a YAML config from path.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	return LoadConfig(f)
}

// DatabaseOptions returns the Open options selecting the configured engine.
func (c Config) DatabaseOptions() []Option {
	return []Option{WithEngine(c.Engine), WithLibrary(c.Library)}
}

type openOptionsYAML struct {
	CreateIfMissing      *bool  `yaml:"create_if_missing"`
	ErrorIfExists        *bool  `yaml:"error_if_exists"`
	ParanoidChecks       *bool  `yaml:"paranoid_checks"`
	WriteBufferSize      *int   `yaml:"write_buffer_size"`
	MaxOpenFiles         *int   `yaml:"max_open_files"`
	BlockSize            *int   `yaml:"block_size"`
	BlockRestartInterval *int   `yaml:"block_restart_interval"`
	Compression          *bool  `yaml:"compression"`
	CacheSize            *int64 `yaml:"cache_size"`
}

// UnmarshalYAML decodes open options, keeping the default of every key
// that is absent.
func (o *OpenOptions) UnmarshalYAML(value *yaml.Node) error {
	if err := checkKeys(value, "create_if_missing", "error_if_exists", "paranoid_checks",
		"write_buffer_size", "max_open_files", "block_size", "block_restart_interval",
		"compression", "cache_size"); err != nil {
		return err
	}

	var raw openOptionsYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}

	var opts []OpenOption
	if raw.CreateIfMissing != nil {
		opts = append(opts, WithCreateIfMissing(*raw.CreateIfMissing))
	}
	if raw.ErrorIfExists != nil {
		opts = append(opts, WithErrorIfExists(*raw.ErrorIfExists))
	}
	if raw.ParanoidChecks != nil {
		opts = append(opts, WithParanoidChecks(*raw.ParanoidChecks))
	}
	if raw.WriteBufferSize != nil {
		opts = append(opts, WithWriteBufferSize(*raw.WriteBufferSize))
	}
	if raw.MaxOpenFiles != nil {
		opts = append(opts, WithMaxOpenFiles(*raw.MaxOpenFiles))
	}
	if raw.BlockSize != nil {
		opts = append(opts, WithBlockSize(*raw.BlockSize))
	}
	if raw.BlockRestartInterval != nil {
		opts = append(opts, WithBlockRestartInterval(*raw.BlockRestartInterval))
	}
	if raw.Compression != nil {
		opts = append(opts, WithCompression(*raw.Compression))
	}
	if raw.CacheSize != nil {
		opts = append(opts, WithCacheSize(*raw.CacheSize))
	}
	*o = NewOpenOptions(opts...)
	return nil
}

type readOptionsYAML struct {
	VerifyChecksums *bool `yaml:"verify_checksums"`
	FillCache       *bool `yaml:"fill_cache"`
}

func (o *ReadOptions) UnmarshalYAML(value *yaml.Node) error {
	if err := checkKeys(value, "verify_checksums", "fill_cache"); err != nil {
		return err
	}

	var raw readOptionsYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}

	var opts []ReadOption
	if raw.VerifyChecksums != nil {
		opts = append(opts, WithVerifyChecksums(*raw.VerifyChecksums))
	}
	if raw.FillCache != nil {
		opts = append(opts, WithFillCache(*raw.FillCache))
	}
	*o = NewReadOptions(opts...)
	return nil
}

type writeOptionsYAML struct {
	Sync *bool `yaml:"sync"`
}

func (o *WriteOptions) UnmarshalYAML(value *yaml.Node) error {
	if err := checkKeys(value, "sync"); err != nil {
		return err
	}

	var raw writeOptionsYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}

	var opts []WriteOption
	if raw.Sync != nil {
		opts = append(opts, WithSync(*raw.Sync))
	}
	*o = NewWriteOptions(opts...)
	return nil
}

// checkKeys rejects mapping keys outside allowed. yaml.Node.Decode has no
// equivalent of Decoder.KnownFields.
func checkKeys(value *yaml.Node, allowed ...string) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", value.Line)
	}
	for i := 0; i < len(value.Content); i += 2 {
		key := value.Content[i]
		if !slices.Contains(allowed, key.Value) {
			return fmt.Errorf("line %d: unknown option %q", key.Line, key.Value)
		}
	}
	return nil
}
