package transcript

import (
	"encoding/json"

	"github.com/habiliai/assistantchat/entity"
	"github.com/habiliai/assistantchat/errors"
)

// ExportJSON serializes a transcript to a JSON blob for the caller to save
// or download. The blob is never read back by this module.
func ExportJSON(t entity.Transcript) ([]byte, error) {
	if t == nil {
		t = entity.Transcript{}
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal transcript")
	}

	return data, nil
}
