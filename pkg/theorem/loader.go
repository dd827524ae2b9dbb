package theorem

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadDatabaseFromFile reads a JSON theorem database from path. Missing or
// malformed files surface as wrapped errors; theorem order in the file is
// preserved.
func LoadDatabaseFromFile(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theorem database: %w", err)
	}

	var db Database
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("parsing theorem database %s: %w", path, err)
	}

	return &db, nil
}
