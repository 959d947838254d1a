package analysis

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the tunable parameters of the analysis engine: the hazard
// distance thresholds, the load-lookback window per pipeline depth, and the
// retired-instruction window capacity. Defaults match §4.3's stated table;
// this exists so a driver can load an alternate table from disk without
// recompiling. The analyzer reads only HazardNoForward, HazardForward and
// LoadLookback: PipelineDepths and WindowCapacity are validated, saved and
// loaded, but the analyzer always tracks depths 5, 7 and 13 and always keeps
// a window of 10 entries.
type Config struct {
	PipelineDepths   [3]int   `json:"pipeline_depths"`
	HazardNoForward  [3]int   `json:"hazard_no_forward"`
	HazardForward    [3]int   `json:"hazard_forward"`
	LoadLookback     [3]int   `json:"load_lookback"`
	WindowCapacity   int      `json:"window_capacity"`
}

// DefaultConfig returns the configuration matching spec §4.2/§4.3 exactly.
func DefaultConfig() Config {
	return Config{
		PipelineDepths:  pipelineDepths,
		HazardNoForward: hazardTable[0],
		HazardForward:   hazardTable[1],
		LoadLookback:    loadLookback,
		WindowCapacity:  windowCapacity,
	}
}

// LoadConfig reads a Config from a JSON file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("analysis: read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("analysis: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("analysis: invalid config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path as indented JSON.
func SaveConfig(cfg Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("analysis: marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("analysis: write config: %w", err)
	}
	return nil
}

// Validate checks that every depth, threshold, load lookback, and the window
// capacity are positive. It does not compare the forwarding and
// no-forwarding thresholds with each other (the default table has a larger
// forwarding threshold at depths 7 and 13).
func (c Config) Validate() error {
	for i := 0; i < 3; i++ {
		if c.PipelineDepths[i] <= 0 {
			return fmt.Errorf("pipeline depth %d must be positive", i)
		}
		if c.HazardNoForward[i] <= 0 || c.HazardForward[i] <= 0 {
			return fmt.Errorf("hazard thresholds at index %d must be positive", i)
		}
		if c.LoadLookback[i] <= 0 {
			return fmt.Errorf("load lookback at index %d must be positive", i)
		}
	}
	if c.WindowCapacity <= 0 {
		return fmt.Errorf("window capacity must be positive")
	}
	return nil
}

// Clone returns a deep copy of c (arrays copy by value already, but this
// keeps the method available for callers that hold c behind a pointer).
func (c Config) Clone() Config {
	return Config{
		PipelineDepths:  c.PipelineDepths,
		HazardNoForward: c.HazardNoForward,
		HazardForward:   c.HazardForward,
		LoadLookback:    c.LoadLookback,
		WindowCapacity:  c.WindowCapacity,
	}
}
