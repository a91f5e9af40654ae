package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// maxBodyBytes caps request bodies at 10MB. Page content is the largest
// payload and stays far below this in practice.
const maxBodyBytes = 10 << 20

// ParseJSON decodes the request body into dest. Unknown fields are
// tolerated because page element content schemas vary by element type and
// are validated downstream.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
