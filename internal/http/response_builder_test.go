package http

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTMXResponseBuilderDefaults(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHTMXResponse().Write(rr)

	if rr.Code != 200 {
		t.Errorf("default status = %d, want 200", rr.Code)
	}
	if rr.Header().Get("HX-Trigger") != "" {
		t.Errorf("expected no HX-Trigger header, got %q", rr.Header().Get("HX-Trigger"))
	}
}

func TestHTMXResponseBuilderTriggers(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHTMXResponse().
		TriggerAssetCreated("AAPL").
		TriggerFormReset().
		TriggerSuccessNotification("done").
		Write(rr)

	header := rr.Header().Get("HX-Trigger")
	if header == "" {
		t.Fatal("expected HX-Trigger header")
	}

	var triggers map[string]interface{}
	if err := json.Unmarshal([]byte(header), &triggers); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}

	for _, name := range []string{"asset:created", "form:reset", "show-notification"} {
		if _, ok := triggers[name]; !ok {
			t.Errorf("missing trigger %q in %s", name, header)
		}
	}

	created, ok := triggers["asset:created"].(map[string]interface{})
	if !ok || created["ticker"] != "AAPL" {
		t.Errorf("asset:created payload = %v, want ticker AAPL", triggers["asset:created"])
	}
}

func TestHTMXResponseBuilderBodyAndStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHTMXResponse().
		Status(201).
		BodyHTML(`<div class="success">ok</div>`).
		Write(rr)

	if rr.Code != 201 {
		t.Errorf("status = %d, want 201", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if !strings.Contains(rr.Body.String(), "success") {
		t.Errorf("body = %q", rr.Body.String())
	}
}

func TestErrorResponseEscapesMessage(t *testing.T) {
	rr := httptest.NewRecorder()
	UnprocessableEntityError(`<script>alert("x")</script>`).Write(rr)

	if rr.Code != 422 {
		t.Errorf("status = %d, want 422", rr.Code)
	}
	body := rr.Body.String()
	if strings.Contains(body, "<script>") {
		t.Errorf("message not escaped: %s", body)
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Errorf("expected escaped markup, got %s", body)
	}
}

func TestMethodNotAllowedErrorSetsAllowHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	MethodNotAllowedError("GET, POST").Write(rr)

	if rr.Code != 405 {
		t.Errorf("status = %d, want 405", rr.Code)
	}
	if allow := rr.Header().Get("Allow"); allow != "GET, POST" {
		t.Errorf("Allow = %q, want GET, POST", allow)
	}
}

func TestFormatDollars(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{150000, "$1500.00"},
		{-2345, "-$23.45"},
	}
	for _, tt := range tests {
		if got := formatDollars(tt.cents); got != tt.want {
			t.Errorf("formatDollars(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestFormatSigned(t *testing.T) {
	if got := formatSigned(150); got != "+$1.50" {
		t.Errorf("formatSigned(150) = %q, want +$1.50", got)
	}
	if got := formatSigned(-150); got != "-$1.50" {
		t.Errorf("formatSigned(-150) = %q, want -$1.50", got)
	}
	if got := formatSigned(0); got != "$0.00" {
		t.Errorf("formatSigned(0) = %q, want $0.00", got)
	}
}
