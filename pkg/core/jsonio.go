package core

import (
	"encoding/json"
	"io"
)

// MarshalSummary pretty-prints a run summary as JSON for humans or pipelines.
func MarshalSummary(w io.Writer, sum Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sum)
}
