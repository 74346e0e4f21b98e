package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/databoard/databoard/internal/chart"
	"github.com/databoard/databoard/internal/core"
	"github.com/databoard/databoard/internal/engine"
	"github.com/databoard/databoard/internal/export"
	"github.com/databoard/databoard/internal/logging"
)

const dateParamLayout = "2006-01-02"

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// selectionsRequest is the JSON body shared by the dashboard, chart, and
// export endpoints. Every field is optional; missing fields fall back to
// dataset defaults.
type selectionsRequest struct {
	Filters      map[string][]string `json:"filters"`
	DateColumn   string              `json:"dateColumn"`
	DateStart    string              `json:"dateStart"`
	DateEnd      string              `json:"dateEnd"`
	Metric       string              `json:"metric"`
	TopDimension string              `json:"topDimension"`
	BarDimension string              `json:"barDimension"`
	ScatterX     string              `json:"scatterX"`
	ScatterY     string              `json:"scatterY"`
}

// toSelections converts the wire format into engine selections, parsing
// date bounds as YYYY-MM-DD.
func (req *selectionsRequest) toSelections() (engine.Selections, error) {
	sel := engine.Selections{
		Categorical:  req.Filters,
		DateColumn:   req.DateColumn,
		Metric:       req.Metric,
		TopDimension: req.TopDimension,
		BarDimension: req.BarDimension,
		ScatterX:     req.ScatterX,
		ScatterY:     req.ScatterY,
	}
	if req.DateStart != "" {
		t, err := time.Parse(dateParamLayout, req.DateStart)
		if err != nil {
			return sel, fmt.Errorf("invalid date %q", req.DateStart)
		}
		sel.DateStart = &t
	}
	if req.DateEnd != "" {
		t, err := time.Parse(dateParamLayout, req.DateEnd)
		if err != nil {
			return sel, fmt.Errorf("invalid date %q", req.DateEnd)
		}
		sel.DateEnd = &t
	}
	return sel, nil
}

// decodeSelections reads the optional JSON body. An empty body means
// default selections.
func decodeSelections(r *http.Request) (engine.Selections, error) {
	var req selectionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return engine.Selections{}, fmt.Errorf("invalid request body: %w", err)
	}
	return req.toSelections()
}

// statusForError picks the HTTP status for a core or engine error.
func statusForError(err error) int {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unknown session"):
		return http.StatusNotFound
	case errors.Is(err, core.ErrSessionLimit):
		return http.StatusTooManyRequests
	case strings.Contains(msg, "request body too large"):
		return http.StatusRequestEntityTooLarge
	case strings.Contains(msg, "invalid csv"), strings.Contains(msg, "invalid xlsx"):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

// handleHealth reports liveness and the current session count.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"sessions": s.service.Count(),
	})
}

// handleUpload accepts a multipart CSV/XLSX upload and starts a session.
// Responds with the new session's schema so the client can build its
// widgets from a single round trip.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		s.respondError(w, r, fmt.Errorf("request body too large: %w", err), http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, errors.New("no file provided"), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, fmt.Errorf("reading upload: %w", err), http.StatusBadRequest)
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	sess, err := s.service.CreateSession(header.Filename, data, ext)
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}

	logger.Info("dataset uploaded",
		"session_id", sess.ID,
		"file", header.Filename,
		"bytes", len(data),
	)

	writeJSON(w, http.StatusCreated, s.service.Schema(sess))
}

// handleSchema returns the column classification and filter options for a
// session.
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	sess, err := s.service.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, s.service.Schema(sess))
}

// handleDashboard computes the full dashboard for the posted selections.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess, err := s.service.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}

	sel, err := decodeSelections(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	dash, err := s.service.Render(sess, sel)
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

// handleChart renders one dashboard panel as a PNG for the posted
// selections. Kind is one of top, bar, timeseries, scatter.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	sess, err := s.service.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}

	sel, err := decodeSelections(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	view, sel, err := s.service.FilteredView(sess, sel)
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}

	var png []byte
	switch chi.URLParam(r, "kind") {
	case "top":
		if sel.TopDimension == "" || sel.Metric == "" {
			s.respondError(w, r, errors.New("chart unavailable"), http.StatusUnprocessableEntity)
			return
		}
		groups := engine.TopN(engine.GroupSum(view, sel.TopDimension, sel.Metric), s.cfg.Engine.TopN)
		title := fmt.Sprintf("Top %d %s by %s", s.cfg.Engine.TopN, sel.TopDimension, sel.Metric)
		png, err = chart.TopNBar(title, groups)
	case "bar":
		if sel.BarDimension == "" || sel.Metric == "" {
			s.respondError(w, r, errors.New("chart unavailable"), http.StatusUnprocessableEntity)
			return
		}
		groups := engine.GroupSum(view, sel.BarDimension, sel.Metric)
		title := fmt.Sprintf("%s by %s", sel.Metric, sel.BarDimension)
		png, err = chart.Bar(title, groups)
	case "timeseries":
		if sel.DateColumn == "" || sel.Metric == "" {
			s.respondError(w, r, errors.New("chart unavailable"), http.StatusUnprocessableEntity)
			return
		}
		points := engine.ResampleMonthlySum(view, sel.DateColumn, sel.Metric)
		title := fmt.Sprintf("Monthly %s", sel.Metric)
		png, err = chart.TimeSeries(title, points)
	case "scatter":
		if sel.ScatterX == "" || sel.ScatterY == "" {
			s.respondError(w, r, errors.New("chart unavailable"), http.StatusUnprocessableEntity)
			return
		}
		hover := ""
		if len(sess.Partition.Categorical) > 0 {
			hover = sess.Partition.Categorical[0]
		}
		points := engine.ScatterSample(view, sel.ScatterX, sel.ScatterY, hover,
			s.cfg.Engine.SampleLimit, s.cfg.Engine.SampleSeed)
		title := fmt.Sprintf("%s vs %s", sel.ScatterY, sel.ScatterX)
		png, err = chart.Scatter(title, sel.ScatterX, sel.ScatterY, points)
	default:
		s.respondError(w, r, errors.New("chart unavailable"), http.StatusNotFound)
		return
	}
	if err != nil {
		s.respondError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// handleExport streams the filtered rows as a downloadable CSV or XLSX
// file.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, err := s.service.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}

	sel, err := decodeSelections(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	view, _, err := s.service.FilteredView(sess, sel)
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}

	var (
		payload     []byte
		fileName    string
		contentType string
	)
	switch chi.URLParam(r, "format") {
	case "csv":
		payload, err = export.CSV(view)
		fileName = export.CSVFileName
		contentType = "text/csv; charset=utf-8"
	case "xlsx":
		payload, err = export.XLSX(view)
		fileName = export.XLSXFileName
		contentType = xlsxContentType
	default:
		s.respondError(w, r, fmt.Errorf("unsupported file type %q", chi.URLParam(r, "format")), http.StatusBadRequest)
		return
	}
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	w.Write(payload)
}

// handleDelete drops a session and its dataset.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := s.service.Delete(id); err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
