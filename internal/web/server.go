package web

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/briefcheck/briefcheck/internal/model"
	"github.com/briefcheck/briefcheck/internal/pipeline"
	"github.com/briefcheck/briefcheck/internal/report"
)

// Server exposes the analysis pipeline over HTTP
type Server struct {
	analyzer *pipeline.Analyzer
	jobs     *JobStore
	cfg      model.WebConfig
}

// NewServer creates the web server around a shared analyzer.
func NewServer(analyzer *pipeline.Analyzer, cfg model.WebConfig) *Server {
	return &Server{
		analyzer: analyzer,
		jobs:     NewJobStore(cfg.JobTTL),
		cfg:      cfg,
	}
}

// Routes builds the router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/upload", s.handleUpload)
	r.Get("/verify/{jobID}", s.handleVerify)
	r.Get("/download/{jobID}", s.handleDownload)
	return r
}

// ListenAndServe runs the server until it fails.
func (s *Server) ListenAndServe() error {
	log.Printf("listening on %s", s.cfg.Addr)
	return http.ListenAndServe(s.cfg.Addr, s.Routes())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpload accepts a plain-text brief plus analysis flags and returns
// the extracted citations without verifying anything yet.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadSize)

	if err := r.ParseMultipartForm(s.cfg.MaxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "could not parse upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded.")
		return
	}
	defer func() { _ = file.Close() }()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".txt") {
		writeError(w, http.StatusBadRequest, "Please upload a plain-text (.txt) file.")
		return
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to read file: %v", err))
		return
	}
	text := string(raw)

	flags := model.Flags{
		ProSe:           r.FormValue("pro_se") == "1",
		AllowOtherState: r.FormValue("allow_other_state") == "1",
		AllowFederal:    r.FormValue("allow_federal") == "1",
	}

	citations, quotes, _ := s.analyzer.Extract(text)
	job := s.jobs.Create(text, header.Filename, flags, citations, quotes)

	type citePreview struct {
		Parties  string `json:"parties"`
		Volume   string `json:"volume"`
		Reporter string `json:"reporter"`
		Page     string `json:"page"`
		Court    string `json:"court"`
		Year     string `json:"year"`
	}
	previews := make([]citePreview, 0, len(citations))
	for _, c := range citations {
		previews = append(previews, citePreview{
			Parties: c.Parties, Volume: c.Volume, Reporter: c.Reporter,
			Page: c.Page, Court: c.Court, Year: c.Year,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"job_id":    job.ID,
		"citations": previews,
		"quotes":    len(quotes),
	})
}

// handleVerify streams verification progress as server-sent events and
// finishes with the score payload. Brief text is dropped from the job as
// soon as the report exists.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	job, ok := s.jobs.Get(chi.URLParam(r, "jobID"))
	if !ok {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")

	emit := func(e pipeline.Event) {
		payload, err := json.Marshal(e)
		if err != nil {
			log.Printf("marshal event: %v", err)
			return
		}
		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
	}

	rep, err := s.analyzer.Analyze(r.Context(), job.Text(), job.Source, job.Flags, emit)
	if err != nil {
		emit(pipeline.Event{Type: pipeline.EventError})
		log.Printf("verify %s: %v", job.ID, err)
		return
	}

	job.SetReport(rep)
	job.DropText()
}

// handleDownload serves the CSV results and then forgets the job.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "jobID")
	job, ok := s.jobs.Get(id)
	if !ok {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	rep := job.Report()
	if rep == nil {
		// Verification has not run; export the unverified extraction.
		rep = &model.Report{Citations: job.Citations, Quotes: job.Quotes}
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="citation_results.csv"`)
	if err := report.WriteCSV(w, rep); err != nil {
		log.Printf("download %s: %v", id, err)
		return
	}

	// Privacy: job data is gone once the results leave the server.
	s.jobs.Delete(id)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
