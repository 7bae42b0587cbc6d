package lanegrid

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-viper/mapstructure/v2"

	"github.com/BananaMilk313/Zerui-Li-Camera/lanevision"
)

// LoadConfig returns the default pipeline configuration overlaid with the
// JSON file at path. Keys match the lanevision.Config field names,
// case-insensitively; absent keys keep their defaults, so a deployment only
// states what differs from production constants.
func LoadConfig(path string) (*lanevision.Config, error) {
	cfg := lanevision.DefaultConfig()
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// JSON numbers arrive as float64; weak typing lets them land in the int
	// fields (image dimensions, kernel extents).
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("building config decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding config overlay: %w", err)
	}
	return &cfg, nil
}
