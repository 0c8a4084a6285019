package repository

import (
	"database/sql"
	"encoding/json"
)

// Image references are stored as a JSON array in a single column. The
// references are opaque to this service: local paths and provider URLs are
// persisted and echoed back verbatim.

func imagesToJSON(urls []string) (any, error) {
	if len(urls) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(urls)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func imagesFromJSON(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	var urls []string
	if err := json.Unmarshal([]byte(raw.String), &urls); err != nil {
		return nil
	}
	return urls
}
