package e2e

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
)

func TestGenerate_Success(t *testing.T) {
	ta := setupApp(t)

	body := `{"prompt": "Promote our new AI-powered fitness app with a modern look"}`
	resp, err := doAuthRequest(t, ta, http.MethodPost, "/api/video/generate", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)

	result := parseJSON(t, resp)

	// LLM is unconfigured in tests, so the deterministic planner runs
	if result["planner"] != "fallback" {
		t.Errorf("expected fallback planner, got %v", result["planner"])
	}

	composition, ok := result["composition"].(map[string]interface{})
	if !ok {
		t.Fatal("expected 'composition' object in response")
	}
	if composition["fps"].(float64) != 30 {
		t.Errorf("expected fps 30, got %v", composition["fps"])
	}
	total := composition["durationInFrames"].(float64)
	if total <= 0 || total > 900 {
		t.Errorf("expected duration in (0, 900], got %v", total)
	}

	scenes, ok := composition["scenes"].([]interface{})
	if !ok || len(scenes) == 0 {
		t.Fatal("expected non-empty 'scenes' array")
	}

	analysis, ok := result["analysis"].(map[string]interface{})
	if !ok {
		t.Fatal("expected 'analysis' object in response")
	}
	if analysis["industry"] != "technology" {
		t.Errorf("expected technology industry for an app prompt, got %v", analysis["industry"])
	}
}

func TestGenerate_TargetCount(t *testing.T) {
	ta := setupApp(t)

	body := `{"prompt": "Launch video for a luxury watch brand", "targetCount": 3}`
	resp, err := doAuthRequest(t, ta, http.MethodPost, "/api/video/generate", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)

	result := parseJSON(t, resp)
	composition := result["composition"].(map[string]interface{})
	scenes := composition["scenes"].([]interface{})
	if len(scenes) > 3 {
		t.Errorf("expected at most 3 scenes, got %d", len(scenes))
	}
}

func TestGenerate_NoAuth(t *testing.T) {
	ta := setupApp(t)

	resp, err := doRequest(ta.app, http.MethodPost, "/api/video/generate", `{"prompt": "test prompt"}`, nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusUnauthorized)
}

func TestGenerate_InvalidBody(t *testing.T) {
	ta := setupApp(t)

	// Prompt too short
	resp, err := doAuthRequest(t, ta, http.MethodPost, "/api/video/generate", `{"prompt": "ab"}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)

	result := parseJSON(t, resp)
	errObj := result["error"].(map[string]interface{})
	if errObj["code"] != "VALIDATION_ERROR" {
		t.Errorf("expected error code VALIDATION_ERROR, got %v", errObj["code"])
	}
}

func TestGenerateJob_StartAndStatus(t *testing.T) {
	ta := setupApp(t)

	body := `{"prompt": "Promo for an indie game studio with a playful vibe"}`
	resp, err := doAuthRequest(t, ta, http.MethodPost, "/api/video/jobs", body)
	if err != nil {
		t.Fatalf("start request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusAccepted)

	startResult := parseJSON(t, resp)
	jobID, _ := startResult["jobId"].(string)
	if jobID == "" {
		t.Fatal("expected 'jobId' in response")
	}
	if startResult["status"] != "queued" {
		t.Errorf("expected status 'queued', got %v", startResult["status"])
	}

	resp, err = doAuthRequest(t, ta, http.MethodGet, "/api/video/jobs/"+jobID+"/status", "")
	if err != nil {
		t.Fatalf("status request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)

	statusResult := parseJSON(t, resp)
	if statusResult["jobId"] != jobID {
		t.Errorf("expected jobId %s, got %v", jobID, statusResult["jobId"])
	}
}

func TestGenerateJob_StatusNotFound(t *testing.T) {
	ta := setupApp(t)

	fakeJobID := uuid.New().String()
	resp, err := doAuthRequest(t, ta, http.MethodGet, "/api/video/jobs/"+fakeJobID+"/status", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusNotFound)

	result := parseJSON(t, resp)
	errObj := result["error"].(map[string]interface{})
	if errObj["code"] != "NOT_FOUND" {
		t.Errorf("expected error code NOT_FOUND, got %v", errObj["code"])
	}
}

func TestGenerateJob_Cancel(t *testing.T) {
	ta := setupApp(t)

	body := `{"prompt": "Teaser for a premium meal delivery service"}`
	resp, err := doAuthRequest(t, ta, http.MethodPost, "/api/video/jobs", body)
	if err != nil {
		t.Fatalf("start request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusAccepted)
	jobID := parseJSON(t, resp)["jobId"].(string)

	resp, err = doAuthRequest(t, ta, http.MethodPost, "/api/video/jobs/"+jobID+"/cancel", "")
	if err != nil {
		t.Fatalf("cancel request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)

	result := parseJSON(t, resp)
	if result["status"] != "canceled" {
		t.Errorf("expected status 'canceled', got %v", result["status"])
	}
}

func TestGenerateJob_ResultNotReady(t *testing.T) {
	ta := setupApp(t)

	body := `{"prompt": "Announcement video for a developer tools platform"}`
	resp, err := doAuthRequest(t, ta, http.MethodPost, "/api/video/jobs", body)
	if err != nil {
		t.Fatalf("start request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusAccepted)
	jobID := parseJSON(t, resp)["jobId"].(string)

	// No worker is running in this test, so the job stays queued
	resp, err = doAuthRequest(t, ta, http.MethodGet, "/api/video/jobs/"+jobID+"/result", "")
	if err != nil {
		t.Fatalf("result request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)
}
