package postgres

import "encoding/json"

func marshalBlob(data map[string]any) []byte {
	if len(data) == 0 {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	return b
}

// clampLimit bounds page sizes. A negative limit disables paging, which
// maps to LIMIT ALL in the query.
func clampLimit(limit int) any {
	if limit < 0 {
		return nil
	}
	if limit == 0 || limit > 100 {
		return 100
	}
	return limit
}
