package processor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go-healthai/filter"
	"go-healthai/followup"
	"go-healthai/hospitals"
	"go-healthai/llm"
	"go-healthai/types"
)

type stubModel struct {
	name  string
	reply string
	err   error
}

func (s stubModel) Name() string { return s.name }

func (s stubModel) Generate(ctx context.Context, p llm.Prompt) (string, error) {
	return s.reply, s.err
}

func newTestPipeline(models ...llm.Model) *Pipeline {
	p := NewPipeline(llm.NewChain(models...), hospitals.Default(), &LocationResolver{})
	p.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	p.newID = func() string { return "msg-1" }
	return p
}

func failingPipeline() *Pipeline {
	return newTestPipeline(
		stubModel{name: "primary", err: errors.New("quota exceeded")},
		stubModel{name: "backup", err: errors.New("timeout")},
	)
}

func TestHandleChestPainWhenAllModelsFail(t *testing.T) {
	t.Parallel()

	resp, err := failingPipeline().Handle(context.Background(), types.ChatRequest{
		Message:   "I have severe chest pain",
		SessionID: "s-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !resp.IsEmergency || resp.EmergencyType != types.Cardiac {
		t.Fatalf("expected cardiac emergency, got %v/%s", resp.IsEmergency, resp.EmergencyType)
	}
	if resp.Urgency == nil || resp.Urgency.Level != types.UrgencyEmergency {
		t.Fatalf("expected emergency urgency, got %+v", resp.Urgency)
	}
	if len(resp.Hospitals) == 0 {
		t.Fatal("expected hospital recommendations")
	}
	if !strings.Contains(resp.Response, "112") {
		t.Fatalf("expected the hotline in %q", resp.Response)
	}
	if resp.OnlineDoctors {
		t.Fatal("online doctors must not be suggested for an emergency")
	}
	if resp.MessageID != "msg-1" || resp.SessionID != "s-1" {
		t.Fatalf("unexpected ids %q/%q", resp.MessageID, resp.SessionID)
	}
	if resp.FollowUp == nil || resp.FollowUp.Type != types.FollowUpLocation || !resp.NeedsLocation {
		t.Fatalf("expected a location follow-up, got %+v", resp.FollowUp)
	}

	msg := resp.Message()
	if msg.Role != types.RoleAssistant || msg.ID != "msg-1" || !msg.IsEmergency || msg.Content != resp.Response {
		t.Fatalf("unexpected assistant message %+v", msg)
	}
	if !msg.Timestamp.Equal(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Fatalf("unexpected timestamp %v", msg.Timestamp)
	}
}

func TestHandleInformationalQuestion(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(stubModel{name: "primary", reply: "Malaria is an infection spread by mosquito bites"})
	resp, err := p.Handle(context.Background(), types.ChatRequest{Message: "What is malaria?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.IsEmergency || resp.EmergencyType != types.NoEmergency {
		t.Fatalf("expected no emergency, got %s", resp.EmergencyType)
	}
	if resp.Urgency != nil {
		t.Fatalf("expected no urgency, got %+v", resp.Urgency)
	}
	if resp.Hospitals == nil || len(resp.Hospitals) != 0 {
		t.Fatalf("expected an empty hospital list, got %v", resp.Hospitals)
	}
	if !strings.Contains(resp.Response, filter.Disclaimer) {
		t.Fatalf("expected the filtered reply to carry the disclaimer: %q", resp.Response)
	}
}

func TestHandleOfflineFallbackForNonEmergency(t *testing.T) {
	t.Parallel()

	resp, err := failingPipeline().Handle(context.Background(), types.ChatRequest{
		Message:  "I get small headache",
		Language: types.LanguagePidgin,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.IsEmergency {
		t.Fatal("headache is not an emergency")
	}
	if !strings.Contains(resp.Response, "112") {
		t.Fatalf("offline fallback must include the hotline: %q", resp.Response)
	}
	if !resp.OnlineDoctors {
		t.Fatal("expected an online doctor suggestion for a headache")
	}
	if len(resp.Hospitals) != 0 {
		t.Fatalf("expected no hospitals, got %d", len(resp.Hospitals))
	}
}

func TestHandleOffTopicRedirect(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(stubModel{name: "primary", reply: "It will be sunny all week."})
	resp, err := p.Handle(context.Background(), types.ChatRequest{Message: "What's the weather like tomorrow?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Response != filter.ScopeRedirectMessage(types.LanguageEnglish) {
		t.Fatalf("expected the scope redirect, got %q", resp.Response)
	}
	if resp.FollowUp != nil || resp.NeedsLocation {
		t.Fatalf("expected no follow-up after a redirect, got %+v", resp.FollowUp)
	}
}

func TestHandleEmergencyReplyAlwaysCarriesHotline(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(stubModel{name: "primary", reply: "I'm sorry you feel unwell. Please rest and see a doctor soon."})
	resp, err := p.Handle(context.Background(), types.ChatRequest{Message: "I have severe chest pain"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !resp.IsEmergency || resp.EmergencyType != types.Cardiac {
		t.Fatalf("expected cardiac emergency, got %v/%s", resp.IsEmergency, resp.EmergencyType)
	}
	if len(resp.Hospitals) == 0 {
		t.Fatal("expected hospital recommendations")
	}
	if !strings.Contains(resp.Response, "112") {
		t.Fatalf("expected the hotline in %q", resp.Response)
	}
	if n := strings.Count(resp.Response, filter.Hotline); n != 1 {
		t.Fatalf("expected the hotline once, got %d in %q", n, resp.Response)
	}
}

func TestHandleHospitalRequestWithLocation(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(stubModel{name: "primary", reply: "You can visit the hospitals listed below."})
	resp, err := p.Handle(context.Background(), types.ChatRequest{
		Message:      "Which hospital can I visit?",
		UserLocation: &types.UserLocation{Lat: 9.0579, Lon: 7.4951},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Hospitals) == 0 || resp.Hospitals[0].Name != "National Hospital Abuja" {
		t.Fatalf("expected National Hospital Abuja first, got %+v", resp.Hospitals)
	}
	if resp.Hospitals[0].DistanceKm == nil {
		t.Fatal("expected a distance for a located user")
	}
	if resp.NeedsLocation || (resp.FollowUp != nil && resp.FollowUp.RequiresLocation) {
		t.Fatal("must not ask for a location the client already sent")
	}
}

func TestHandleErrors(t *testing.T) {
	t.Parallel()

	if _, err := newTestPipeline(stubModel{name: "a"}).Handle(context.Background(), types.ChatRequest{Message: "   "}); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}

	_, err := newTestPipeline().Handle(context.Background(), types.ChatRequest{Message: "hello"})
	if !errors.Is(err, llm.ErrNoModels) {
		t.Fatalf("expected ErrNoModels, got %v", err)
	}
}

func TestHandleLocationReply(t *testing.T) {
	t.Parallel()

	p := failingPipeline()
	resp, err := p.Handle(context.Background(), types.ChatRequest{
		Message: "Ikeja",
		History: []types.HistoryEntry{
			{Role: "user", Content: "My father has chest pain"},
			{Role: "assistant", Content: "Where are you?"},
		},
		IsFollowUpResponse: true,
		FollowUpContext:    followup.ContextHospitalRecommendation,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.EmergencyType != types.Cardiac {
		t.Fatalf("expected the earlier cardiac context, got %s", resp.EmergencyType)
	}
	if resp.ProcessedLocation == nil || !resp.ProcessedLocation.HasCoordinates() {
		t.Fatalf("expected resolved coordinates, got %+v", resp.ProcessedLocation)
	}
	if len(resp.Hospitals) == 0 || resp.Hospitals[0].Name != "LUTH Lagos" {
		t.Fatalf("expected LUTH Lagos first, got %+v", resp.Hospitals)
	}
	for _, want := range []string{"Ikeja, Lagos", "LUTH Lagos", "112"} {
		if !strings.Contains(resp.Response, want) {
			t.Errorf("expected %q in reply %q", want, resp.Response)
		}
	}
}

func TestHandleLocationReplyUnknownPlace(t *testing.T) {
	t.Parallel()

	resp, err := failingPipeline().Handle(context.Background(), types.ChatRequest{
		Message:            "somewhere far",
		IsFollowUpResponse: true,
		FollowUpContext:    followup.ContextHospitalRecommendation,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.ProcessedLocation == nil || resp.ProcessedLocation.Address != "somewhere far" {
		t.Fatalf("expected an address-only location, got %+v", resp.ProcessedLocation)
	}
	if len(resp.Hospitals) != hospitals.DefaultLimit {
		t.Fatalf("expected %d fallback hospitals, got %d", hospitals.DefaultLimit, len(resp.Hospitals))
	}
	if !strings.Contains(resp.Response, "don't have a hospital listed for somewhere far") {
		t.Fatalf("unexpected reply %q", resp.Response)
	}
}
