package jsonl

import (
	"encoding/json"
	"io"

	"github.com/fwojciec/emoscope"
)

// Encoder writes ResultRecords as JSON Lines.
type Encoder struct {
	enc *json.Encoder
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Encoder{enc: enc}
}

// Encode writes one line per record.
func (e *Encoder) Encode(records []emoscope.ResultRecord) error {
	for _, r := range records {
		if err := e.enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
