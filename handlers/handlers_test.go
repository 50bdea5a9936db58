package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"go-healthai/geocode"
	"go-healthai/hospitals"
	"go-healthai/llm"
	"go-healthai/processor"
	"go-healthai/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubModel struct {
	reply string
	err   error
}

func (s stubModel) Name() string { return "stub" }

func (s stubModel) Generate(ctx context.Context, p llm.Prompt) (string, error) {
	return s.reply, s.err
}

func chatRouter(models ...llm.Model) *gin.Engine {
	p := processor.NewPipeline(llm.NewChain(models...), hospitals.Default(), &processor.LocationResolver{})
	r := gin.New()
	r.POST("/api/chat", Chat(p, 5*time.Second))
	return r
}

func postJSON(t *testing.T, r http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestChatEmergencyWithFailingModel(t *testing.T) {
	t.Parallel()

	r := chatRouter(stubModel{err: errors.New("503 from upstream")})
	w := postJSON(t, r, "/api/chat", `{"message":"I have severe chest pain","sessionId":"abc"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp types.ChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.IsEmergency || resp.EmergencyType != types.Cardiac {
		t.Fatalf("expected cardiac emergency, got %+v", resp)
	}
	if len(resp.Hospitals) == 0 || !strings.Contains(resp.Response, "112") {
		t.Fatalf("expected hospitals and the hotline, got %+v", resp)
	}
	if resp.SessionID != "abc" || resp.MessageID == "" {
		t.Fatalf("unexpected ids %q/%q", resp.SessionID, resp.MessageID)
	}
}

func TestChatInformational(t *testing.T) {
	t.Parallel()

	r := chatRouter(stubModel{reply: "Malaria is a disease carried by mosquitoes."})
	w := postJSON(t, r, "/api/chat", `{"message":"What is malaria?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := raw["urgency"]; ok {
		t.Fatalf("urgency must be omitted for an informational question: %s", raw["urgency"])
	}
	if string(raw["hospitals"]) != "[]" {
		t.Fatalf("expected an empty hospital array, got %s", raw["hospitals"])
	}
	if string(raw["isEmergency"]) != "false" {
		t.Fatalf("expected isEmergency false, got %s", raw["isEmergency"])
	}
}

func TestChatBadRequests(t *testing.T) {
	t.Parallel()

	r := chatRouter(stubModel{reply: "ok"})
	for _, body := range []string{
		`{}`,
		`{"message":""}`,
		`{"message":"   "}`,
		`{"message":"hi","language":"french"}`,
		`not json`,
	} {
		if w := postJSON(t, r, "/api/chat", body); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestChatWithoutModels(t *testing.T) {
	t.Parallel()

	w := postJSON(t, chatRouter(), "/api/chat", `{"message":"I have a headache"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "error") {
		t.Fatalf("expected an error body, got %s", w.Body.String())
	}
}

func TestRecommendHospitals(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.GET("/api/hospitals", RecommendHospitals(hospitals.Default()))

	tests := []struct {
		name      string
		path      string
		code      int
		wantCount int
		wantFirst string
	}{
		{name: "browse", path: "/api/hospitals", code: 200, wantCount: 3, wantFirst: "UNTH Enugu"},
		{name: "explicit none", path: "/api/hospitals?emergencyType=none", code: 200, wantCount: 0},
		{name: "cardiac near owerri", path: "/api/hospitals?emergencyType=cardiac&lat=5.48&lon=7.03", code: 200, wantCount: 3, wantFirst: "FMC Owerri"},
		{name: "state", path: "/api/hospitals?state=fct", code: 200, wantCount: 1, wantFirst: "National Hospital Abuja"},
		{name: "text query", path: "/api/hospitals?q=kano", code: 200, wantCount: 1, wantFirst: "AKTH Kano"},
		{name: "lat without lon", path: "/api/hospitals?lat=6.5", code: 400},
		{name: "lat out of range", path: "/api/hospitals?lat=95&lon=3", code: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, tt.path)
			if w.Code != tt.code {
				t.Fatalf("expected %d, got %d: %s", tt.code, w.Code, w.Body.String())
			}
			if tt.code != http.StatusOK {
				return
			}

			var body struct {
				Hospitals []types.Recommendation `json:"hospitals"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(body.Hospitals) != tt.wantCount {
				t.Fatalf("expected %d hospitals, got %d", tt.wantCount, len(body.Hospitals))
			}
			if tt.wantFirst != "" && body.Hospitals[0].Name != tt.wantFirst {
				t.Fatalf("expected %s first, got %s", tt.wantFirst, body.Hospitals[0].Name)
			}
		})
	}
}

func TestNearbyHospitals(t *testing.T) {
	t.Parallel()

	unconfigured := gin.New()
	unconfigured.GET("/nearby", NearbyHospitals(nil))
	if w := get(unconfigured, "/nearby?lat=6.5&lon=3.3"); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without maps, got %d", w.Code)
	}

	var gotRadius uint
	r := gin.New()
	r.GET("/nearby", NearbyHospitals(func(ctx context.Context, lat, lon float64, radius uint) ([]geocode.Place, error) {
		gotRadius = radius
		if lat > 10 {
			return nil, errors.New("OVER_QUERY_LIMIT")
		}
		return []geocode.Place{{Name: "Reddington Hospital", Distance: "1.2 km away"}}, nil
	}))

	w := get(r, "/nearby?lat=6.43&lon=3.42&radius=3000")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Reddington Hospital") {
		t.Fatalf("unexpected response %d: %s", w.Code, w.Body.String())
	}
	if gotRadius != 3000 {
		t.Fatalf("expected radius 3000, got %d", gotRadius)
	}

	if w := get(r, "/nearby"); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without coordinates, got %d", w.Code)
	}
	if w := get(r, "/nearby?lat=6.4&lon=3.4&radius=-5"); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a negative radius, got %d", w.Code)
	}
	if w := get(r, "/nearby?lat=12&lon=8.5"); w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 when the search fails, got %d", w.Code)
	}
}

func TestOfflineEmergency(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.GET("/offline", OfflineEmergency)

	w := get(r, "/offline")
	if w.Code != http.StatusOK || strings.Contains(w.Body.String(), `"response"`) {
		t.Fatalf("expected data only, got %d: %s", w.Code, w.Body.String())
	}

	w = get(r, "/offline?symptoms=chest+pain&language=pidgin")
	var body struct {
		Response    string `json:"response"`
		IsEmergency bool   `json:"isEmergency"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.IsEmergency || !strings.Contains(body.Response, "112") {
		t.Fatalf("unexpected offline reply %+v", body)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	configured := false
	r := gin.New()
	r.GET("/health", Health(func() bool { return configured }, 9))

	w := get(r, "/health")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"degraded"`) {
		t.Fatalf("expected degraded, got %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"hospitals":9`) {
		t.Fatalf("expected the hospital count, got %s", w.Body.String())
	}
}
