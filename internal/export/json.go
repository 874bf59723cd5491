package export

import (
	"io"

	"github.com/goccy/go-json"
)

// WriteJSON writes the snapshot as indented JSON.
func WriteJSON(w io.Writer, snap Snapshot) error {
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}
