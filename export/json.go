package export

import (
	"encoding/json"
	"io"

	"github.com/danielhkuo/meai-survey/models"
)

// WriteJSON writes subs as an indented JSON array, [] when empty.
func WriteJSON(w io.Writer, subs []models.Submission) error {
	if subs == nil {
		subs = []models.Submission{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(subs)
}
