// Package request holds small helpers for reading typed values out of
// an *http.Request.
package request

import (
	"fmt"
	"net/http"
	"strconv"
)

// PathID parses the named path wildcard (e.g. {id}) as an int64.
func PathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", name)
	}
	return id, nil
}

// QueryInt returns the named query parameter as an int, or def when it
// is absent.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", name)
	}
	return v, nil
}
