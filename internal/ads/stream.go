package ads

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"
)

// streamElement is one array element of a SearchStream response. An element
// carrying "error" ends the stream with a failure.
type streamElement struct {
	Batch
	Error *statusBody `json:"error"`
}

// decodeStream lazily decodes the JSON array body of a SearchStream response
func decodeStream(r io.Reader, header http.Header) iter.Seq2[*Batch, error] {
	return func(yield func(*Batch, error) bool) {
		dec := json.NewDecoder(r)

		tok, err := dec.Token()
		if err != nil {
			yield(nil, fmt.Errorf("failed to read search stream: %w", err))
			return
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '[' {
			yield(nil, fmt.Errorf("unexpected search stream start %v", tok))
			return
		}

		for dec.More() {
			var el streamElement
			if err := dec.Decode(&el); err != nil {
				yield(nil, fmt.Errorf("failed to decode search stream batch: %w", err))
				return
			}
			if el.Error != nil {
				yield(nil, newFailure(el.Error, 0, header))
				return
			}

			batch := el.Batch
			if !yield(&batch, nil) {
				return
			}
		}

		if _, err := dec.Token(); err != nil {
			yield(nil, fmt.Errorf("failed to read search stream end: %w", err))
		}
	}
}
