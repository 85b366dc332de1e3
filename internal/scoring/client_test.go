package scoring

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPredictSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Fatalf("unexpected content type: %s", r.Header.Get("Content-Type"))
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Fatalf("expected a request id header")
		}

		var body predictRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body.ModelType != "cycle_prediction" {
			t.Fatalf("unexpected model type: %s", body.ModelType)
		}

		json.NewEncoder(w).Encode(predictResponse{
			Prediction: RemotePrediction{"predicted_start_date": "2024-03-25", "confidence": "high"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	prediction, ok := client.Predict(context.Background(), map[string]any{"average_cycle_length": 28})
	if !ok {
		t.Fatalf("expected a usable remote prediction")
	}
	if prediction["confidence"] != "high" {
		t.Fatalf("unexpected prediction payload: %v", prediction)
	}
}

func TestPredictFallbackFlag(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(predictResponse{Fallback: true})
	}))
	defer server.Close()

	client := NewClient(server.URL, "cycle_prediction")
	if _, ok := client.Predict(context.Background(), nil); ok {
		t.Fatalf("fallback flag must not produce a usable prediction")
	}
}

func TestPredictErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(predictResponse{
			Error:      "model not loaded",
			Prediction: RemotePrediction{"x": 1},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "cycle_prediction")
	if _, ok := client.Predict(context.Background(), nil); ok {
		t.Fatalf("an error body must not produce a usable prediction")
	}
}

func TestPredictNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "cycle_prediction")
	if _, ok := client.Predict(context.Background(), nil); ok {
		t.Fatalf("a 500 must not produce a usable prediction")
	}
}

func TestPredictUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "cycle_prediction")
	if _, ok := client.Predict(context.Background(), nil); ok {
		t.Fatalf("an unreachable service must not produce a usable prediction")
	}
}

func TestPredictNilClient(t *testing.T) {
	var client *Client
	if _, ok := client.Predict(context.Background(), nil); ok {
		t.Fatalf("a nil client must always fall back")
	}
	if NewClient("", "cycle_prediction") != nil {
		t.Fatalf("expected nil client without a base URL")
	}
}
