package jobs

import (
	"encoding/json"
	"fmt"
	"os"
)

// RawRecord is a platform-tagged, loosely-typed job record as produced by a
// collector. The core never mutates it; all interpretation happens in the
// normalizer.
type RawRecord struct {
	Platform Platform
	Fields   map[string]any
}

// LoadRawRecords reads a collector output file (a JSON array of objects) and
// tags every record with the given platform.
func LoadRawRecords(path string, platform Platform) ([]RawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening collector file %q: %w", path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return nil, nil
	}

	var items []map[string]any
	if err := json.NewDecoder(file).Decode(&items); err != nil {
		return nil, fmt.Errorf("decoding collector file %q: %w", path, err)
	}

	records := make([]RawRecord, 0, len(items))
	for _, fields := range items {
		records = append(records, RawRecord{Platform: platform, Fields: fields})
	}

	return records, nil
}
