package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/tomysaman/csvloader/internal/loader"
	"github.com/tomysaman/csvloader/internal/logging"
)

// parseResponse is the JSON envelope for successful parse requests.
type parseResponse struct {
	ID      string          `json:"id"`
	Format  string          `json:"format"`
	Rows    int             `json:"rows"`
	Columns int             `json:"columns"`
	Header  []string        `json:"header,omitempty"`
	Data    json.RawMessage `json:"data"`
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleListProfiles lists the configured parse profiles.
func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	names := s.profiles.Names()
	writeJSON(w, map[string]any{
		"count":    len(names),
		"profiles": names,
	})
}

// handleParse parses CSV from a multipart file upload, an inline text
// field, or a raw text/csv body, and responds in the requested shape.
//
// Parameters (query or form): profile, format, delimiter, limit, cleanup,
// root, encoding.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Parse.MaxBodySize)

	opts, err := s.buildOptions(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err)
		return
	}

	text, err := s.readSource(r, opts.Encoding)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err)
		return
	}
	opts.Text = text

	res, err := loader.Load(opts)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err)
		return
	}

	id := uuid.New().String()
	logging.WithFields(r.Context(), "parse_id", id).Info("parse completed",
		"format", res.Format,
		"rows", res.Rows,
		"columns", res.Columns,
	)

	// CSV output is served as plain CSV, not wrapped in JSON.
	if res.Format == loader.FormatCSV {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("X-Parse-Id", id)
		io.WriteString(w, res.CSV)
		return
	}

	data, err := marshalData(res)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, parseResponse{
		ID:      id,
		Format:  string(res.Format),
		Rows:    res.Rows,
		Columns: res.Columns,
		Header:  res.Header,
		Data:    data,
	})
}

// readSource extracts the CSV text from the request: multipart file field,
// inline text field, or raw body for text/csv and text/plain uploads.
// Uploaded files are decoded with the resolved encoding; inline text and
// raw bodies are taken as UTF-8.
func (s *Server) readSource(r *http.Request, encoding string) (string, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(s.cfg.Parse.MaxBodySize); err != nil {
			return "", fmt.Errorf("request body too large or malformed: %w", err)
		}
		file, _, err := r.FormFile("file")
		if err == nil {
			defer file.Close()
			data, err := io.ReadAll(file)
			if err != nil {
				return "", fmt.Errorf("read upload: %w", err)
			}
			return loader.Decode(data, encoding)
		}
		// Fall through: multipart forms may carry inline text instead.
	}

	if strings.HasPrefix(contentType, "text/csv") || strings.HasPrefix(contentType, "text/plain") {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return "", fmt.Errorf("read body: %w", err)
		}
		return string(data), nil
	}

	if text := r.FormValue("text"); text != "" {
		return text, nil
	}

	return "", errors.New("no file provided and no inline text")
}

// buildOptions assembles loader options from server defaults, the optional
// named profile, and per-request parameter overrides, in that order.
func (s *Server) buildOptions(r *http.Request) (loader.Options, error) {
	opts := loader.DefaultOptions()
	opts.RowLimit = s.cfg.Parse.DefaultRowLimit
	opts.CleanupColumns = s.cfg.Parse.CleanupColumns
	if d, err := loader.ParseDelimiter(s.cfg.Parse.DefaultDelimiter); err == nil {
		opts.Delimiter = d
	}

	if name := r.FormValue("profile"); name != "" {
		profile, ok := s.profiles.Get(name)
		if !ok {
			return opts, fmt.Errorf("unknown profile %q", name)
		}
		opts = profile.Apply(opts)
	}

	if v := r.FormValue("format"); v != "" {
		f, err := loader.ParseFormat(v)
		if err != nil {
			return opts, err
		}
		opts.Format = f
	}
	if v := r.FormValue("delimiter"); v != "" {
		d, err := loader.ParseDelimiter(v)
		if err != nil {
			return opts, err
		}
		opts.Delimiter = d
	}
	if v := r.FormValue("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("invalid row limit %q", v)
		}
		opts.RowLimit = n
	}
	if v := r.FormValue("cleanup"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("invalid cleanup flag %q", v)
		}
		opts.CleanupColumns = b
	}
	if v := r.FormValue("root"); v != "" {
		opts.RootName = v
	}
	if v := r.FormValue("encoding"); v != "" {
		opts.Encoding = v
	}

	return opts, nil
}

// marshalData renders the shaped payload for the response envelope.
func marshalData(res *loader.Result) (json.RawMessage, error) {
	switch res.Format {
	case loader.FormatJSON:
		if res.JSON == "" {
			return json.RawMessage(`[]`), nil
		}
		return json.RawMessage(res.JSON), nil
	case loader.FormatTable:
		if res.Table == nil {
			return json.RawMessage(`{"columns":[],"rows":[]}`), nil
		}
		return json.Marshal(res.Table)
	default:
		if res.Records == nil {
			return json.RawMessage(`[]`), nil
		}
		return json.Marshal(res.Records)
	}
}
