package render

import (
	"gopkg.in/yaml.v3"

	"github.com/kordes/rolodex/internal/contact"
)

type yamlRenderer struct{}

func (r *yamlRenderer) Render(records []contact.Record) ([]byte, error) {
	if records == nil {
		records = []contact.Record{}
	}
	return yaml.Marshal(records)
}
