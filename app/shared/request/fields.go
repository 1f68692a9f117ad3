// Package request reads mutation payloads sent either as JSON or as an
// HTML form.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/Black-And-White-Club/competitions/app/shared/apperr"
)

// MaxBodyBytes caps the size of an accepted request body.
const MaxBodyBytes = 1 << 20

// ErrMalformedBody is returned when the body cannot be decoded.
var ErrMalformedBody = apperr.New(apperr.ErrValidation, "malformed request body")

// Fields returns the top-level body fields as strings. JSON numbers keep
// their literal text so "12" and 12 read the same. A missing body yields an
// empty map.
func Fields(w http.ResponseWriter, r *http.Request) (map[string]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		return jsonFields(r.Body)
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	out := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		out[key] = r.PostForm.Get(key)
	}
	return out, nil
}

func jsonFields(body io.Reader) (map[string]string, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	out := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			out[key] = ""
		case string:
			out[key] = v
		case json.Number:
			out[key] = v.String()
		case bool:
			out[key] = strconv.FormatBool(v)
		default:
			encoded, _ := json.Marshal(v)
			out[key] = strings.TrimSpace(string(encoded))
		}
	}
	return out, nil
}
