// Package creds loads the machine connection credentials used to dial the
// vehicle over the Viam robot client.
package creds

import (
	"encoding/json"
	"fmt"
	"os"
)

// MachineCredentials holds the connection details for the vehicle's machine.
type MachineCredentials struct {
	Address  string `json:"address"`
	EntityID string `json:"entity_id"`
	APIKey   string `json:"api_key"`
}

// Load decodes a MachineCredentials from the JSON file at path. Missing
// fields are surfaced here rather than as an opaque dial failure later.
func Load(path string) (*MachineCredentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var c MachineCredentials
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode credentials %s: %w", path, err)
	}
	if c.Address == "" || c.EntityID == "" || c.APIKey == "" {
		return nil, fmt.Errorf("credentials %s: address, entity_id, and api_key are all required", path)
	}
	return &c, nil
}
