package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/energy-admin-console/internal/domain"
)

// envelope is the backend's response wrapper. Data stays raw until the
// caller knows which shape to expect.
type envelope struct {
	Success    *bool              `json:"success"`
	Data       json.RawMessage    `json:"data"`
	Pagination *domain.Pagination `json:"pagination"`
	Message    string             `json:"message"`
}

func parseEnvelope(method, path string, status int, raw []byte) (*envelope, error) {
	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if status >= http.StatusMultipleChoices {
		if decodeErr == nil && env.Success != nil && !*env.Success {
			return nil, &RejectedError{Status: status, Message: env.Message}
		}
		return nil, fmt.Errorf("%w: %s %s: status %d", ErrTransport, method, path, status)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrMalformed, method, path, decodeErr)
	}
	if env.Success == nil {
		return nil, fmt.Errorf("%w: %s %s: missing success flag", ErrMalformed, method, path)
	}
	if !*env.Success {
		return nil, &RejectedError{Status: status, Message: env.Message}
	}
	return &env, nil
}

type convertible[T any] interface {
	domain() (T, bool)
}

// decodePage reads list data one record at a time. A record that fails to
// decode, or lacks its identity, is logged and skipped; only a data field
// that is not an array fails the whole page.
func decodePage[T any, W convertible[T]](path string, env *envelope) (*Page[T], error) {
	out := &Page[T]{Items: []T{}, Pagination: env.Pagination}
	if isNull(env.Data) {
		return out, nil
	}
	var records []json.RawMessage
	if err := json.Unmarshal(env.Data, &records); err != nil {
		return nil, fmt.Errorf("%w: GET %s: data is not a list: %v", ErrMalformed, path, err)
	}
	for i, rec := range records {
		var w W
		if err := json.Unmarshal(rec, &w); err != nil {
			out.Skipped++
			log.Warn().Err(err).Str("path", path).Int("index", i).Msg("skipping unreadable record")
			continue
		}
		item, ok := w.domain()
		if !ok {
			out.Skipped++
			log.Warn().Str("path", path).Int("index", i).Msg("skipping record without id")
			continue
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func decodeObject(path string, env *envelope, out any) error {
	if isNull(env.Data) {
		return fmt.Errorf("%w: %s: empty data", ErrMalformed, path)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
