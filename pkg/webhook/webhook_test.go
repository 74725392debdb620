package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jamus9/KSA-Version-History/pkg/output"
)

func newTestReport() *output.Report {
	last := time.Date(2026, 1, 30, 2, 50, 0, 0, time.UTC)
	return &output.Report{
		Summary: output.Summary{
			Deployments:   42,
			Markers:       45,
			First:         time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC),
			Last:          last,
			DeploysPerDay: 0.46,
		},
		Deployments: []output.Deployment{
			{Index: 42, Time: last, Source: "history.txt", Line: 900, Label: "Planetary Rings"},
		},
		Trend: &output.Trend{Slope: 0.46, Intercept: -9400, PerWeek: 3.22, Points: 42},
		Metadata: output.Metadata{
			Sources:    []string{"history.txt"},
			Marker:     "DeployBot",
			AnalyzedAt: time.Now(),
			Duration:   time.Second,
		},
	}
}

func TestNewPayload(t *testing.T) {
	p := NewPayload(newTestReport())

	if p.Event != EventReport {
		t.Errorf("Event = %q, want %q", p.Event, EventReport)
	}
	want := "42 deployments, 0.46 deploys/day, latest 30.01.2026 02:50"
	if p.Text != want {
		t.Errorf("Text = %q, want %q", p.Text, want)
	}

	report := newTestReport()
	report.Trend = nil
	if got := NewPayload(report).Text; got != "42 deployments, latest 30.01.2026 02:50" {
		t.Errorf("Text without trend = %q", got)
	}

	if got := NewPayload(&output.Report{}).Text; got != "No deployments found" {
		t.Errorf("Text for empty report = %q", got)
	}
}

func TestClient_Send_Success(t *testing.T) {
	var receivedBody []byte
	var receivedContentType string
	var receivedAuth string
	var receivedAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedContentType = r.Header.Get("Content-Type")
		receivedAuth = r.Header.Get("Authorization")
		receivedAgent = r.Header.Get("User-Agent")
		receivedBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	resp := NewClient().Send(context.Background(), newTestReport(), SendOptions{
		URL: server.URL,
	})

	if !resp.Success() {
		t.Errorf("expected success, got error: %v", resp.Error)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
	if resp.Body != `{"status":"ok"}` {
		t.Errorf("unexpected body: %s", resp.Body)
	}
	if receivedContentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", receivedContentType)
	}
	if receivedAuth != "" {
		t.Errorf("expected no auth header, got %s", receivedAuth)
	}
	if receivedAgent != "deploytrend-webhook" {
		t.Errorf("User-Agent = %q", receivedAgent)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(receivedBody, &payload); err != nil {
		t.Fatalf("failed to parse received payload: %v", err)
	}
	for _, key := range []string{"event", "text", "report"} {
		if _, ok := payload[key]; !ok {
			t.Errorf("payload missing %q field", key)
		}
	}

	var report output.Report
	if err := json.Unmarshal(payload["report"], &report); err != nil {
		t.Fatalf("report field is not a report: %v", err)
	}
	if report.Summary.Deployments != 42 {
		t.Errorf("report Deployments = %d, want 42", report.Summary.Deployments)
	}
}

func TestClient_Send_WithBearerToken(t *testing.T) {
	var receivedAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	resp := NewClient().Send(context.Background(), newTestReport(), SendOptions{
		URL:   server.URL,
		Token: "secret-token-123",
	})

	if !resp.Success() {
		t.Errorf("expected success, got error: %v", resp.Error)
	}
	if receivedAuth != "Bearer secret-token-123" {
		t.Errorf("expected Bearer token, got %s", receivedAuth)
	}
}

func TestClient_Send_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal error"}`))
	}))
	defer server.Close()

	resp := NewClient().Send(context.Background(), newTestReport(), SendOptions{
		URL: server.URL,
	})

	if resp.Success() {
		t.Error("expected failure, got success")
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", resp.StatusCode)
	}
	if resp.Error == nil {
		t.Error("expected error to be set")
	}
}

func TestClient_Send_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	resp := NewClient().Send(context.Background(), newTestReport(), SendOptions{
		URL:     server.URL,
		Timeout: 50 * time.Millisecond,
	})

	if resp.Success() {
		t.Error("expected failure due to timeout")
	}
	if resp.Error == nil {
		t.Error("expected error to be set")
	}
}

func TestClient_Send_InvalidURL(t *testing.T) {
	resp := NewClient().Send(context.Background(), newTestReport(), SendOptions{
		URL: "://invalid-url",
	})

	if resp.Success() {
		t.Error("expected failure for invalid URL")
	}
	if resp.Error == nil {
		t.Error("expected error to be set")
	}
}

func TestResponse_Success(t *testing.T) {
	tests := []struct {
		name        string
		resp        Response
		wantSuccess bool
	}{
		{"200 OK", Response{StatusCode: 200}, true},
		{"204 No Content", Response{StatusCode: 204}, true},
		{"302 Found", Response{StatusCode: 302}, false},
		{"400 Bad Request", Response{StatusCode: 400}, false},
		{"500 Server Error", Response{StatusCode: 500}, false},
		{"With Error", Response{StatusCode: 200, Error: io.EOF}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resp.Success(); got != tt.wantSuccess {
				t.Errorf("Success() = %v, want %v", got, tt.wantSuccess)
			}
		})
	}
}
