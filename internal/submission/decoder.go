// Package submission implements the wire-to-typed-answer pipeline: body
// decoding, field resolution and answer coercion.
package submission

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"sort"
	"strings"

	apperrors "github.com/naiveform/naiveform-backend/errors"
)

// Pair is one submitted (name, value) entry. Decoding preserves order and
// duplicates; collapsing repeated names is the resolver's job.
type Pair struct {
	Name  string
	Value string
}

// maxPartSize bounds how much of a single multipart field is read.
const maxPartSize = 1 << 20

// DecodePairs turns a raw request body and its declared content type into an
// ordered sequence of pairs. Multipart bodies have their file parts silently
// dropped; everything else is treated as application/x-www-form-urlencoded,
// including an absent content type.
func DecodePairs(contentType string, body []byte) ([]Pair, error) {
	if strings.Contains(contentType, "multipart") {
		return decodeMultipart(contentType, body)
	}
	return decodeURLEncoded(body)
}

func decodeURLEncoded(body []byte) ([]Pair, error) {
	if len(body) == 0 {
		return nil, apperrors.EmptyBody()
	}

	var pairs []Pair
	for _, segment := range strings.Split(string(body), "&") {
		if segment == "" {
			continue
		}
		// Segments without '=' carry no value and are skipped, matching the
		// behavior HTML forms rely on.
		eq := strings.Index(segment, "=")
		if eq < 0 {
			continue
		}
		name, err := url.QueryUnescape(segment[:eq])
		if err != nil {
			return nil, apperrors.MalformedBody(err)
		}
		value, err := url.QueryUnescape(segment[eq+1:])
		if err != nil {
			return nil, apperrors.MalformedBody(err)
		}
		pairs = append(pairs, Pair{Name: name, Value: value})
	}
	return pairs, nil
}

func decodeMultipart(contentType string, body []byte) ([]Pair, error) {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, apperrors.MalformedBody(err)
	}
	boundary := params["boundary"]
	if boundary == "" {
		return nil, apperrors.MalformedBody(fmt.Errorf("multipart body without boundary"))
	}

	reader := multipart.NewReader(bytes.NewReader(body), boundary)
	var pairs []Pair
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.MalformedBody(err)
		}
		// File parts are not answers.
		if part.FileName() != "" {
			_ = part.Close()
			continue
		}
		value, err := io.ReadAll(io.LimitReader(part, maxPartSize))
		_ = part.Close()
		if err != nil {
			return nil, apperrors.MalformedBody(err)
		}
		pairs = append(pairs, Pair{Name: part.FormName(), Value: string(value)})
	}
	return pairs, nil
}

// DecodeValues parses the programmatic JSON body {"values": {name: string |
// [string, ...]}}. Shape mismatches are collected per field and reported
// together, so an integrator sees every mistake in one round trip.
func DecodeValues(body []byte) (map[string]any, error) {
	var envelope struct {
		Values map[string]json.RawMessage `json:"values"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, apperrors.MalformedBody(err)
	}
	if envelope.Values == nil {
		return nil, apperrors.SchemaValidation([]string{`values: required object of field values`})
	}

	values := make(map[string]any, len(envelope.Values))
	var bad []string
	for name, raw := range envelope.Values {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			values[name] = s
			continue
		}
		var list []string
		if err := json.Unmarshal(raw, &list); err == nil {
			values[name] = list
			continue
		}
		bad = append(bad, fmt.Sprintf("values.%s: expected string or array of strings", name))
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return nil, apperrors.SchemaValidation(bad)
	}
	return values, nil
}
