// Package config loads tokenizer configuration from defaults, an
// optional config file, environment variables and command-line flags,
// in ascending precedence.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	LogLevel  string          `mapstructure:"log_level"`
	Tokenizer TokenizerConfig `mapstructure:"tokenizer"`
	Runtime   RuntimeConfig   `mapstructure:"runtime"`
}

type TokenizerConfig struct {
	// Type selects the engine: TypeBert or TypeBPE.
	Type string `mapstructure:"type"`

	// VocabPath is the WordPiece vocab.txt (bert only).
	VocabPath string `mapstructure:"vocab_path"`
	// BPEVocabPath and BPEMergesPath are the GPT-2 vocab.json and
	// merges.txt (bpe only).
	BPEVocabPath  string `mapstructure:"bpe_vocab_path"`
	BPEMergesPath string `mapstructure:"bpe_merges_path"`

	DoLowerCase         bool `mapstructure:"do_lower_case"`
	TokenizeCJK         bool `mapstructure:"tokenize_cjk"`
	ModelMaxLength      int  `mapstructure:"model_max_length"`
	EnableBidirectional bool `mapstructure:"enable_bidirectional"`
	MaxWordBytes        int  `mapstructure:"max_word_bytes"`
}

type RuntimeConfig struct {
	MaxParallelism int `mapstructure:"max_parallelism"`
	ChunkSize      int `mapstructure:"chunk_size"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Tokenizer: TokenizerConfig{
			Type:                TypeBert,
			VocabPath:           "models/vocab.txt",
			BPEVocabPath:        "models/vocab.json",
			BPEMergesPath:       "models/merges.txt",
			DoLowerCase:         true,
			TokenizeCJK:         true,
			ModelMaxLength:      128,
			EnableBidirectional: false,
			MaxWordBytes:        0,
		},
		Runtime: RuntimeConfig{
			MaxParallelism: runtime.NumCPU(),
			ChunkSize:      128 * 1024,
		},
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
	fs.String("tokenizer-type", defaults.Tokenizer.Type, "Tokenizer engine (bert|bpe)")
	fs.String("tokenizer-vocab-path", defaults.Tokenizer.VocabPath, "Path to WordPiece vocab.txt")
	fs.String("vocab", defaults.Tokenizer.VocabPath, "Path to WordPiece vocab.txt (alias for --tokenizer-vocab-path)")
	fs.String("tokenizer-bpe-vocab-path", defaults.Tokenizer.BPEVocabPath, "Path to BPE vocab.json")
	fs.String("tokenizer-bpe-merges-path", defaults.Tokenizer.BPEMergesPath, "Path to BPE merges.txt")
	fs.Bool("tokenizer-do-lower-case", defaults.Tokenizer.DoLowerCase, "Lowercase and strip accents before tokenizing")
	fs.Bool("tokenizer-tokenize-cjk", defaults.Tokenizer.TokenizeCJK, "Isolate CJK ideographs into single-character tokens")
	fs.Int("tokenizer-model-max-length", defaults.Tokenizer.ModelMaxLength, "Default sequence length cap (-1 for unbounded)")
	fs.Bool("tokenizer-enable-bidirectional", defaults.Tokenizer.EnableBidirectional, "Arbitrate between forward and backward WordPiece")
	fs.Int("tokenizer-max-word-bytes", defaults.Tokenizer.MaxWordBytes, "Per-word byte cap before [UNK] (0 for the default)")
	fs.Int("runtime-max-parallelism", defaults.Runtime.MaxParallelism, "Worker cap for batch and chunked encoding")
	fs.Int("runtime-chunk-size", defaults.Runtime.ChunkSize, "Target chunk size in bytes for large inputs")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	registerAliases(v)

	v.SetEnvPrefix("FLASHTOK")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("flashtok")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

// Validate normalizes the engine type and rejects settings no engine can
// be built from.
func (c *Config) Validate() error {
	typ, err := NormalizeType(c.Tokenizer.Type)
	if err != nil {
		return err
	}
	c.Tokenizer.Type = typ

	switch typ {
	case TypeBert:
		if c.Tokenizer.VocabPath == "" {
			return fmt.Errorf("tokenizer.vocab_path is required for type %s", TypeBert)
		}
	case TypeBPE:
		if c.Tokenizer.BPEVocabPath == "" || c.Tokenizer.BPEMergesPath == "" {
			return fmt.Errorf("tokenizer.bpe_vocab_path and tokenizer.bpe_merges_path are required for type %s", TypeBPE)
		}
	}

	if c.Tokenizer.ModelMaxLength < -1 {
		return fmt.Errorf("tokenizer.model_max_length must be >= -1, got %d", c.Tokenizer.ModelMaxLength)
	}
	if c.Runtime.MaxParallelism < 0 {
		return fmt.Errorf("runtime.max_parallelism must be >= 0, got %d", c.Runtime.MaxParallelism)
	}
	if c.Runtime.ChunkSize < 0 {
		return fmt.Errorf("runtime.chunk_size must be >= 0, got %d", c.Runtime.ChunkSize)
	}
	return nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("tokenizer.type", c.Tokenizer.Type)
	v.SetDefault("tokenizer.vocab_path", c.Tokenizer.VocabPath)
	v.SetDefault("tokenizer.bpe_vocab_path", c.Tokenizer.BPEVocabPath)
	v.SetDefault("tokenizer.bpe_merges_path", c.Tokenizer.BPEMergesPath)
	v.SetDefault("tokenizer.do_lower_case", c.Tokenizer.DoLowerCase)
	v.SetDefault("tokenizer.tokenize_cjk", c.Tokenizer.TokenizeCJK)
	v.SetDefault("tokenizer.model_max_length", c.Tokenizer.ModelMaxLength)
	v.SetDefault("tokenizer.enable_bidirectional", c.Tokenizer.EnableBidirectional)
	v.SetDefault("tokenizer.max_word_bytes", c.Tokenizer.MaxWordBytes)
	v.SetDefault("runtime.max_parallelism", c.Runtime.MaxParallelism)
	v.SetDefault("runtime.chunk_size", c.Runtime.ChunkSize)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("log_level", "log-level")
	v.RegisterAlias("tokenizer.type", "tokenizer-type")
	v.RegisterAlias("tokenizer.vocab_path", "tokenizer-vocab-path")
	v.RegisterAlias("tokenizer.vocab_path", "vocab")
	v.RegisterAlias("tokenizer.bpe_vocab_path", "tokenizer-bpe-vocab-path")
	v.RegisterAlias("tokenizer.bpe_merges_path", "tokenizer-bpe-merges-path")
	v.RegisterAlias("tokenizer.do_lower_case", "tokenizer-do-lower-case")
	v.RegisterAlias("tokenizer.tokenize_cjk", "tokenizer-tokenize-cjk")
	v.RegisterAlias("tokenizer.model_max_length", "tokenizer-model-max-length")
	v.RegisterAlias("tokenizer.enable_bidirectional", "tokenizer-enable-bidirectional")
	v.RegisterAlias("tokenizer.max_word_bytes", "tokenizer-max-word-bytes")
	v.RegisterAlias("runtime.max_parallelism", "runtime-max-parallelism")
	v.RegisterAlias("runtime.chunk_size", "runtime-chunk-size")
}
