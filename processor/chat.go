package processor

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-healthai/detection"
	"go-healthai/filter"
	"go-healthai/followup"
	"go-healthai/hospitals"
	"go-healthai/llm"
	"go-healthai/metrics"
	"go-healthai/offline"
	"go-healthai/types"
)

// ErrEmptyMessage is returned for a blank message.
var ErrEmptyMessage = errors.New("message must not be empty")

// Generator is the language-model side of a turn.
type Generator interface {
	Generate(ctx context.Context, p llm.Prompt) (text string, model string, err error)
	Len() int
}

// Pipeline runs one chat turn: classify, generate, filter, recommend, follow up.
// It holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	models    Generator
	hospitals hospitals.Repository
	locations *LocationResolver

	now   func() time.Time
	newID func() string
}

func NewPipeline(models Generator, repo hospitals.Repository, locations *LocationResolver) *Pipeline {
	return &Pipeline{
		models:    models,
		hospitals: repo,
		locations: locations,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Configured reports whether at least one language model is available.
func (p *Pipeline) Configured() bool {
	return p.models != nil && p.models.Len() > 0
}

// Handle processes one user turn. It only fails for a blank message or when
// no language model is configured; model failures fall back to canned text.
func (p *Pipeline) Handle(ctx context.Context, req types.ChatRequest) (types.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return types.ChatResponse{}, ErrEmptyMessage
	}
	if !p.Configured() {
		return types.ChatResponse{}, llm.ErrNoModels
	}

	lang := detection.DetectLanguage(message, req.Language)
	resp := types.ChatResponse{
		Hospitals: []types.Recommendation{},
		MessageID: p.newID(),
		SessionID: req.SessionID,
		Timestamp: p.now().UTC(),
	}

	if req.IsFollowUpResponse && req.FollowUpContext == followup.ContextHospitalRecommendation {
		return p.handleLocationReply(ctx, req, message, lang, resp), nil
	}

	// 1. Classify
	emergencyType := detection.DetectEmergencyType(message)
	isEmergency := emergencyType != types.NoEmergency
	urgency := detection.DetectUrgencyLevel(message, isEmergency)
	metrics.RecordTriage(string(emergencyType), string(urgency.Level))
	log.Printf("Chat: session=%s type=%s urgency=%s lang=%s", req.SessionID, emergencyType, urgency.Level, lang)

	resp.IsEmergency = isEmergency
	resp.EmergencyType = emergencyType
	if urgency.Applicable() {
		resp.Urgency = &urgency
	}

	lat, lon := userCoordinates(req.UserLocation)
	query := hospitals.Query{EmergencyType: emergencyType, Lat: lat, Lon: lon}
	wantHospitals := isEmergency || detection.IsHospitalRequest(message)
	if !isEmergency {
		query.Browse = wantHospitals
	}

	// 2. Generate
	raw, model, err := p.models.Generate(ctx, llm.Prompt{
		System:   llm.SystemPromptFor(lang),
		History:  req.History,
		Message:  message,
		Language: lang,
	})

	redirected := false
	if err != nil {
		log.Printf("Chat: all models failed for session %s: %v", req.SessionID, err)
		if isEmergency {
			metrics.RecordOfflineFallback("emergency")
			resp.Response = emergencyFallback(lang)
			query.EmergencyType = types.GeneralCase
			wantHospitals = true
		} else {
			metrics.RecordOfflineFallback("offline")
			resp.Response = offline.GenerateOfflineEmergencyResponse(message, lang)
		}
	} else if !filter.ValidateResponseScope(raw, message) {
		// judged on the raw reply, before the disclaimer is appended
		log.Printf("Chat: off-topic reply from %s replaced", model)
		metrics.RecordScopeRedirect()
		resp.Response = filter.ScopeRedirectMessage(lang)
		redirected = true
	} else {
		log.Printf("Chat: reply from %s (%d chars)", model, len(raw))

		// 3. Filter
		result := filter.FilterMedicalResponse(raw)
		metrics.RecordFilterResult(len(result.Warnings), result.IsValid)
		if !result.IsValid {
			log.Printf("Chat: unsafe phrasing in reply from %s: %v", model, result.Warnings)
		} else if len(result.Warnings) > 0 {
			log.Printf("Chat: filter warnings: %v", result.Warnings)
		}
		resp.Response = result.FilteredResponse
	}
	if isEmergency && !strings.Contains(resp.Response, filter.Hotline) {
		resp.Response += "\n\n" + filter.HotlineSentence
	}

	// 4. Recommend
	if wantHospitals {
		resp.Hospitals = hospitals.Recommend(p.hospitals, query)
		metrics.RecordRecommendation(lat != nil)
	}

	// 5. Follow up
	resp.OnlineDoctors = !isEmergency && detection.ShouldSuggestOnlineDoctor(message)
	if redirected {
		return resp, nil
	}
	if q := followup.DetectFollowUpNeeds(resp.Response, message); q != nil {
		// the client already sent coordinates
		if !(q.RequiresLocation && req.UserLocation != nil) {
			resp.FollowUp = q
			resp.NeedsLocation = q.RequiresLocation
			metrics.RecordFollowUp(string(q.Type))
		}
	}

	return resp, nil
}

// handleLocationReply answers the turn after a location follow-up without
// calling a model: resolve the place, then list hospitals around it.
func (p *Pipeline) handleLocationReply(ctx context.Context, req types.ChatRequest, message string, lang types.Language, resp types.ChatResponse) types.ChatResponse {
	loc := p.locations.Resolve(ctx, message)
	emergencyType := previousEmergencyType(req.History)

	resp.EmergencyType = emergencyType
	resp.IsEmergency = emergencyType != types.NoEmergency
	resp.ProcessedLocation = &loc

	if loc.IsEmpty() {
		q := followup.DetectFollowUpNeeds("hospital", "")
		resp.FollowUp = q
		resp.NeedsLocation = true
		resp.Response = followup.Prompt(q, lang)
		return resp
	}

	query := hospitals.Query{EmergencyType: emergencyType, Browse: true}
	switch {
	case loc.HasCoordinates():
		query.Lat, query.Lon = loc.Lat, loc.Lon
	case req.UserLocation != nil:
		query.Lat, query.Lon = userCoordinates(req.UserLocation)
		query.LocationQuery = loc.Address
	default:
		query.LocationQuery = loc.Address
	}

	recs := hospitals.Recommend(p.hospitals, query)
	matched := len(recs) > 0
	if !matched {
		// the free-text filter matched nothing; fall back to the directory ranking
		query.LocationQuery = ""
		recs = hospitals.Recommend(p.hospitals, query)
	}
	metrics.RecordRecommendation(query.Lat != nil)

	resp.Hospitals = recs
	resp.Response = hospitalListReply(locationLabel(loc), recs, matched, lang)
	return resp
}

// previousEmergencyType classifies the most recent user turn in history.
// A plain location request with no emergency behind it browses all hospitals.
func previousEmergencyType(history []types.HistoryEntry) types.EmergencyType {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role != string(types.RoleUser) {
			continue
		}
		if t := detection.DetectEmergencyType(history[i].Content); t != types.NoEmergency {
			return t
		}
		break
	}
	return types.NoEmergency
}

func userCoordinates(loc *types.UserLocation) (*float64, *float64) {
	if loc == nil {
		return nil, nil
	}
	lat, lon := loc.Lat, loc.Lon
	return &lat, &lon
}

func locationLabel(loc types.LocationQuery) string {
	if loc.Address != "" {
		return loc.Address
	}
	return loc.City
}
