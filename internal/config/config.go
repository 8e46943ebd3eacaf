package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Root    string            `yaml:"root"`
	Python  string            `yaml:"python"`
	Images  map[string]string `yaml:"images"`
	MLLM    MLLM              `yaml:"mllm"`
	Report  Report            `yaml:"report"`
	Pricing Pricing           `yaml:"pricing"`
}

type MLLM struct {
	Categories []string `yaml:"categories"`
	Start      int      `yaml:"start"`
	Step       int      `yaml:"step"`
	FailFast   bool     `yaml:"fail_fast"`
	Model      string   `yaml:"model"`
}

type Report struct {
	Format string `yaml:"format"`
}

type Pricing struct {
	File string `yaml:"file"`
}

func defaults() *Config {
	return &Config{
		Root:   ".",
		Python: "python",
		MLLM: MLLM{
			Categories: []string{"complex"},
			Start:      0,
			Step:       1,
			Model:      "gpt-4-vision-preview",
		},
		Report: Report{Format: "table"},
	}
}

// Load reads the config file at path and applies environment overrides. The
// file must exist; use LoadOrDefault for the optional default location.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return parse(path, data)
}

// LoadOrDefault behaves like Load but a missing file is not an error: the
// built-in defaults (plus environment overrides) apply instead.
func LoadOrDefault(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return parse(path, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return parse(path, data)
}

func parse(path string, data []byte) (*Config, error) {
	cfg := defaults()
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnv lets the environment override file and default values. Keys are
// read through viper so GPT4V_START=5 and friends work without any config
// file present.
func applyEnv(cfg *Config) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("t2i_root", cfg.Root)
	v.SetDefault("t2i_python", cfg.Python)
	v.SetDefault("gpt4v_categories", strings.Join(cfg.MLLM.Categories, ","))
	v.SetDefault("gpt4v_start", cfg.MLLM.Start)
	v.SetDefault("gpt4v_step", cfg.MLLM.Step)
	v.SetDefault("gpt4v_fail_fast", cfg.MLLM.FailFast)
	v.SetDefault("gpt4v_model", cfg.MLLM.Model)

	cfg.Root = v.GetString("t2i_root")
	cfg.Python = v.GetString("t2i_python")
	cfg.MLLM.Categories = SplitCategories(v.GetString("gpt4v_categories"))
	cfg.MLLM.Start = v.GetInt("gpt4v_start")
	cfg.MLLM.Step = v.GetInt("gpt4v_step")
	cfg.MLLM.FailFast = v.GetBool("gpt4v_fail_fast")
	cfg.MLLM.Model = v.GetString("gpt4v_model")
}

// SplitCategories parses a comma-separated category list, trimming
// whitespace and dropping empty entries.
func SplitCategories(s string) []string {
	var out []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func validate(cfg *Config) error {
	if cfg.Root == "" {
		return fmt.Errorf("root must not be empty")
	}
	if cfg.Python == "" {
		return fmt.Errorf("python interpreter must not be empty")
	}
	if cfg.MLLM.Start < 0 {
		return fmt.Errorf("mllm start must be non-negative, got %d", cfg.MLLM.Start)
	}
	if cfg.MLLM.Step < 1 {
		return fmt.Errorf("mllm step must be positive, got %d", cfg.MLLM.Step)
	}
	switch cfg.Report.Format {
	case "table", "markdown", "json", "none":
	default:
		return fmt.Errorf("unknown report format %q", cfg.Report.Format)
	}
	return nil
}
