package config

import (
	"encoding/json"
	"os"
)

// loadJSON reads a .json scenario file. The API accepts the same shape inline.
func loadJSON(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Scenario
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
