package extraction

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/orange24122/extraction/llm"
)

// Config holds all configuration for the extraction engine.
type Config struct {
	// Oracle configures the model provider driving all annotation
	// stages.
	Oracle llm.Config `json:"oracle" yaml:"oracle"`

	// Temperature for annotation calls. Kept low for deterministic-
	// leaning output.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// SchemaPath optionally overrides the built-in taxonomy and
	// scenario schemas with a YAML file.
	SchemaPath string `json:"schema_path" yaml:"schema_path"`

	// OutDir receives the two JSON result files and the diagnostics
	// directory for malformed model output.
	OutDir string `json:"out_dir" yaml:"out_dir"`

	// DBPath enables SQLite persistence of runs when non-empty.
	DBPath string `json:"db_path" yaml:"db_path"`

	// SkipUnchanged skips policies whose text hash matches the stored
	// run. Only effective with DBPath set.
	SkipUnchanged bool `json:"skip_unchanged" yaml:"skip_unchanged"`

	// Concurrency bounds parallel paragraph annotation per document.
	Concurrency int `json:"concurrency" yaml:"concurrency"`
}

// DefaultConfig returns a Config targeting DeepSeek, matching the
// provider the annotation prompts were tuned against.
func DefaultConfig() Config {
	return Config{
		Oracle: llm.Config{
			Provider: "deepseek",
			Model:    "deepseek-chat",
		},
		Temperature: 0.1,
		OutDir:      "results",
		Concurrency: 4,
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
