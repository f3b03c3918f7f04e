package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/buildinfo"
	"github.com/travellermap/hexmap/pkg/errors"
	"github.com/travellermap/hexmap/pkg/pipeline"
)

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Error     errorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= 500 {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorBody{
		Error:     errorDetail{Code: string(code), Message: errors.UserMessage(err)},
		RequestID: RequestID(r.Context()),
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

// handleTile serves GET /api/tile.
//
// Query parameters: x, y (tile index), scale, w, h, style, options (map
// option bits), format, sector and clip (whole-sector render), overlays
// (comma list), hl (highlight pattern), clipoutsector (0 disables).
func (s *Server) handleTile(w http.ResponseWriter, r *http.Request) {
	opts, err := s.tileOptions(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.cfg.Runner.Render(r.Context(), s.cfg.Provider, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", res.ContentType)
	h.Set("Content-Length", strconv.Itoa(len(res.Data)))
	h.Set("Cache-Control", "public, max-age=3600")
	if res.Cached {
		h.Set("X-Cache", "HIT")
	} else {
		h.Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

func (s *Server) tileOptions(q url.Values) (pipeline.Options, error) {
	opts := s.cfg.Defaults
	opts.ClipOutsectorBorders = true

	var err error
	if opts.X, err = floatParam(q, "x", opts.X); err != nil {
		return opts, err
	}
	if opts.Y, err = floatParam(q, "y", opts.Y); err != nil {
		return opts, err
	}
	if opts.Scale, err = floatParam(q, "scale", opts.Scale); err != nil {
		return opts, err
	}
	if opts.Width, err = intParam(q, "w", opts.Width); err != nil {
		return opts, err
	}
	if opts.Height, err = intParam(q, "h", opts.Height); err != nil {
		return opts, err
	}
	if v := q.Get("options"); v != "" {
		if opts.MapOptions, err = pipeline.ParseMapOptions(v); err != nil {
			return opts, err
		}
	}
	if v := q.Get("style"); v != "" {
		opts.Style = v
	}
	if v := q.Get("format"); v != "" {
		opts.Format = v
	}
	if v := q.Get("sector"); v != "" {
		opts.Sector = v
		opts.SectorClip = boolParam(q, "clip", true)
	}
	if v := q.Get("overlays"); v != "" {
		opts.Overlays = pipeline.ParseOverlays(v)
	}
	if v := q.Get("hl"); v != "" {
		opts.Highlight = v
	}
	opts.ClipOutsectorBorders = boolParam(q, "clipoutsector", opts.ClipOutsectorBorders)
	return opts, nil
}

// coordinatesResponse is the body of GET /api/coordinates.
type coordinatesResponse struct {
	SX  int    `json:"sx"`
	SY  int    `json:"sy"`
	Hex string `json:"hex"`
	X   int    `json:"x"`
	Y   int    `json:"y"`
}

// handleCoordinates serves GET /api/coordinates. The location is either
// sx, sy, hx, hy or sector (name or "x,y") and hex ("XXYY").
func (s *Server) handleCoordinates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var loc astrometrics.Location

	if name := q.Get("sector"); name != "" {
		sec, err := pipeline.FindSector(s.cfg.Provider, name)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		loc.Sector = sec.Location
		if loc.Hex, err = astrometrics.ParseHex(q.Get("hex")); err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "hex"))
			return
		}
	} else {
		fields := []*int{&loc.Sector.X, &loc.Sector.Y, &loc.Hex.X, &loc.Hex.Y}
		for i, name := range []string{"sx", "sy", "hx", "hy"} {
			v, err := intParam(q, name, 0)
			if err != nil {
				s.writeError(w, r, err)
				return
			}
			*fields[i] = v
		}
	}

	c := loc.Coordinates()
	writeJSON(w, http.StatusOK, coordinatesResponse{
		SX: loc.Sector.X, SY: loc.Sector.Y, Hex: loc.Hex.String(), X: c.X, Y: c.Y,
	})
}

// =============================================================================
// Query Parsing
// =============================================================================

func floatParam(q url.Values, name string, def float64) (float64, error) {
	v := q.Get(name)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.Invalid(name, "not a number: %q", v)
	}
	return f, nil
}

func intParam(q url.Values, name string, def int) (int, error) {
	v := q.Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Invalid(name, "not an integer: %q", v)
	}
	return n, nil
}

func boolParam(q url.Values, name string, def bool) bool {
	switch strings.ToLower(q.Get(name)) {
	case "":
		return def
	case "0", "false", "no", "off":
		return false
	}
	return true
}
