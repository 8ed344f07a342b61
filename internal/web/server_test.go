package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/briefcheck/briefcheck/internal/model"
	"github.com/briefcheck/briefcheck/internal/pipeline"
)

const briefText = "Smith v. Jones, 123 So. 2d 456 (Fla. 1980), is controlling here. " +
	"The trial court erred in granting summary judgment."

// stubProvider serves CourtListener-shaped responses so the full stack,
// HTTP client included, runs against local fixtures.
func stubProvider(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/citation-lookup/", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		cite := r.FormValue("text")
		fmt.Fprintf(w, `[{"citation":%q,"status":200,"clusters":[{"caseName":"Smith v. Jones","absolute_url":"/opinion/1/"}]}]`, cite)
	})
	mux.HandleFunc("/search/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[]}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	provider := stubProvider(t)

	cfg := model.DefaultConfig()
	cfg.Provider.BaseURL = provider.URL
	cfg.Provider.RequestDelay = time.Millisecond
	cfg.Web.JobTTL = time.Minute

	s := NewServer(pipeline.NewAnalyzer(cfg), cfg.Web)
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(ts.Close)
	return s, ts
}

func uploadBrief(t *testing.T, baseURL, filename, text string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := io.WriteString(fw, text); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	resp, err := http.Post(baseURL+"/upload", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// readEvents fetches the SSE stream for a job and parses every data frame,
// returning both the parsed events and the raw JSON payloads.
func readEvents(t *testing.T, baseURL, jobID string) ([]pipeline.Event, []string) {
	t.Helper()
	resp, err := http.Get(baseURL + "/verify/" + jobID)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("verify status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read stream: %v", err)
	}

	var events []pipeline.Event
	var raw []string
	for _, line := range strings.Split(string(body), "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		payload := strings.TrimPrefix(line, "data: ")
		var e pipeline.Event
		if err := json.Unmarshal([]byte(payload), &e); err != nil {
			t.Fatalf("parse event %q: %v", line, err)
		}
		events = append(events, e)
		raw = append(raw, payload)
	}
	return events, raw
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", resp.StatusCode)
	}
}

func TestUpload_ReturnsJobAndPreviews(t *testing.T) {
	_, ts := newTestServer(t)

	resp := uploadBrief(t, ts.URL, "brief.txt", briefText)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upload status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		JobID     string `json:"job_id"`
		Citations []struct {
			Parties  string `json:"parties"`
			Volume   string `json:"volume"`
			Reporter string `json:"reporter"`
			Page     string `json:"page"`
		} `json:"citations"`
	}
	decodeJSON(t, resp, &body)

	if body.JobID == "" {
		t.Fatal("upload returned empty job_id")
	}
	if len(body.JobID) != 12 {
		t.Errorf("job_id length = %d, want 12", len(body.JobID))
	}
	if len(body.Citations) != 1 {
		t.Fatalf("got %d citation previews, want 1", len(body.Citations))
	}
	c := body.Citations[0]
	if c.Volume != "123" || c.Reporter != "So. 2d" || c.Page != "456" {
		t.Errorf("preview = %+v, want 123 So. 2d 456", c)
	}
	if c.Parties != "Smith v. Jones" {
		t.Errorf("preview parties = %q, want Smith v. Jones", c.Parties)
	}
}

func TestUpload_RejectsNonTextFile(t *testing.T) {
	_, ts := newTestServer(t)

	resp := uploadBrief(t, ts.URL, "brief.pdf", "not a text file")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("upload status = %d, want 400", resp.StatusCode)
	}

	var body struct {
		Error string `json:"error"`
	}
	decodeJSON(t, resp, &body)
	if !strings.Contains(body.Error, ".txt") {
		t.Errorf("error = %q, want mention of .txt", body.Error)
	}
}

func TestUpload_RequiresFile(t *testing.T) {
	_, ts := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("pro_se", "1")
	_ = mw.Close()

	resp, err := http.Post(ts.URL+"/upload", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("upload status = %d, want 400", resp.StatusCode)
	}
}

func TestVerify_StreamsEventsAndDropsText(t *testing.T) {
	s, ts := newTestServer(t)

	resp := uploadBrief(t, ts.URL, "brief.txt", briefText)
	var body struct {
		JobID string `json:"job_id"`
	}
	decodeJSON(t, resp, &body)

	events, raw := readEvents(t, ts.URL, body.JobID)
	if len(events) < 2 {
		t.Fatalf("got %d events, want at least result + done", len(events))
	}

	first := events[0]
	if first.Type != pipeline.EventResult {
		t.Errorf("first event type = %q, want %q", first.Type, pipeline.EventResult)
	}
	if !strings.Contains(raw[0], `"index":0`) {
		t.Errorf("first result frame = %s, want index present at zero", raw[0])
	}
	if first.Citation == nil || first.Citation.Status != model.CitationVerified {
		t.Errorf("first event citation = %+v, want verified", first.Citation)
	}

	last := events[len(events)-1]
	if last.Type != pipeline.EventDone {
		t.Errorf("last event type = %q, want %q", last.Type, pipeline.EventDone)
	}
	if last.Score == nil {
		t.Fatal("done event has no score")
	}
	if last.Score.TotalScore < 0 || last.Score.TotalScore > 100 {
		t.Errorf("score = %d, want within [0,100]", last.Score.TotalScore)
	}

	job, ok := s.jobs.Get(body.JobID)
	if !ok {
		t.Fatal("job missing after verification")
	}
	if job.Text() != "" {
		t.Error("brief text still stored after verification")
	}
	if job.Report() == nil {
		t.Error("report not stored after verification")
	}
}

func TestVerify_UnknownJob(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/verify/doesnotexist")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("verify status = %d, want 404", resp.StatusCode)
	}
}

func TestDownload_ServesCSVThenForgetsJob(t *testing.T) {
	_, ts := newTestServer(t)

	resp := uploadBrief(t, ts.URL, "brief.txt", briefText)
	var body struct {
		JobID string `json:"job_id"`
	}
	decodeJSON(t, resp, &body)
	_, _ = readEvents(t, ts.URL, body.JobID)

	dl, err := http.Get(ts.URL + "/download/" + body.JobID)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	defer func() { _ = dl.Body.Close() }()
	if dl.StatusCode != http.StatusOK {
		t.Fatalf("download status = %d, want 200", dl.StatusCode)
	}
	if cd := dl.Header.Get("Content-Disposition"); !strings.Contains(cd, "citation_results.csv") {
		t.Errorf("Content-Disposition = %q, want citation_results.csv", cd)
	}

	csvBody, err := io.ReadAll(dl.Body)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if !strings.Contains(string(csvBody), "Smith v. Jones") {
		t.Error("csv missing verified citation parties")
	}
	if strings.Contains(string(csvBody), "summary judgment") {
		t.Error("csv leaks brief text")
	}

	second, err := http.Get(ts.URL + "/download/" + body.JobID)
	if err != nil {
		t.Fatalf("second download: %v", err)
	}
	defer func() { _ = second.Body.Close() }()
	if second.StatusCode != http.StatusNotFound {
		t.Errorf("second download status = %d, want 404 after job deletion", second.StatusCode)
	}
}

func TestDownload_BeforeVerificationExportsExtraction(t *testing.T) {
	_, ts := newTestServer(t)

	resp := uploadBrief(t, ts.URL, "brief.txt", briefText)
	var body struct {
		JobID string `json:"job_id"`
	}
	decodeJSON(t, resp, &body)

	dl, err := http.Get(ts.URL + "/download/" + body.JobID)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	defer func() { _ = dl.Body.Close() }()
	if dl.StatusCode != http.StatusOK {
		t.Fatalf("download status = %d, want 200", dl.StatusCode)
	}
	csvBody, _ := io.ReadAll(dl.Body)
	if !strings.Contains(string(csvBody), "123") || !strings.Contains(string(csvBody), "So. 2d") {
		t.Error("csv missing extracted citation fields")
	}
}
