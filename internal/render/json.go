package render

import (
	"encoding/json"

	"github.com/kordes/rolodex/internal/contact"
)

type jsonRenderer struct{}

func (r *jsonRenderer) Render(records []contact.Record) ([]byte, error) {
	if records == nil {
		records = []contact.Record{}
	}
	return json.MarshalIndent(records, "", "  ")
}
