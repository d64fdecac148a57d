package chain

import (
	"fmt"
	"os"

	"github.com/xhhuango/json"
)

// LoadSnapshot reads a chain snapshot from a local JSON file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	if snap.Symbol == "" {
		return nil, fmt.Errorf("snapshot %s has no underlying symbol", path)
	}
	return &snap, nil
}

// LoadHistory reads daily OHLC history from a local JSON file.
func LoadHistory(path string) (*History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading history %s: %w", path, err)
	}

	var h History
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("parsing history %s: %w", path, err)
	}
	return &h, nil
}

// Closes extracts the close series from a history in date order.
func (h *History) Closes() []float64 {
	closes := make([]float64, len(h.Day))
	for i, d := range h.Day {
		closes[i] = d.Close
	}
	return closes
}
