package types

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversation entry. The client owns persistence.
type Message struct {
	ID          string            `json:"id"`
	Role        Role              `json:"role"`
	Content     string            `json:"content"`
	Timestamp   time.Time         `json:"timestamp"`
	IsEmergency bool              `json:"isEmergency,omitempty"`
	Hospitals   []Recommendation  `json:"hospitals,omitempty"`
	FollowUp    *FollowUpQuestion `json:"followUp,omitempty"`
}

type FollowUpType string

const (
	FollowUpLocation FollowUpType = "location"
	FollowUpSeverity FollowUpType = "severity"
	FollowUpDuration FollowUpType = "duration"
)

type FollowUpQuestion struct {
	Type             FollowUpType `json:"type"`
	PromptEnglish    string       `json:"question"`
	PromptPidgin     string       `json:"questionPidgin"`
	Context          string       `json:"context"`
	RequiresLocation bool         `json:"requiresLocation,omitempty"`
}

// LocationQuery is a location resolved from free text. Any subset of fields may be set.
type LocationQuery struct {
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
	City    string   `json:"city,omitempty"`
	Address string   `json:"address,omitempty"`
}

// HasCoordinates reports whether both lat and lon are known.
func (q LocationQuery) HasCoordinates() bool {
	return q.Lat != nil && q.Lon != nil
}

func (q LocationQuery) IsEmpty() bool {
	return !q.HasCoordinates() && q.City == "" && q.Address == ""
}

// HistoryEntry is one prior turn as sent by the client.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type UserLocation struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type ChatRequest struct {
	Message            string         `json:"message" binding:"required"`
	SessionID          string         `json:"sessionId"`
	Language           Language       `json:"language" binding:"omitempty,oneof=auto english pidgin"`
	History            []HistoryEntry `json:"history"`
	UserLocation       *UserLocation  `json:"userLocation,omitempty"`
	IsFollowUpResponse bool           `json:"isFollowUpResponse,omitempty"`
	FollowUpContext    string         `json:"followUpContext,omitempty"`
}

type ChatResponse struct {
	Response          string            `json:"response"`
	IsEmergency       bool              `json:"isEmergency"`
	EmergencyType     EmergencyType     `json:"emergencyType"`
	Urgency           *Urgency          `json:"urgency,omitempty"`
	Hospitals         []Recommendation  `json:"hospitals"`
	OnlineDoctors     bool              `json:"onlineDoctors"`
	FollowUp          *FollowUpQuestion `json:"followUp,omitempty"`
	ProcessedLocation *LocationQuery    `json:"processedLocation,omitempty"`
	NeedsLocation     bool              `json:"needsLocation,omitempty"`
	MessageID         string            `json:"messageId"`
	SessionID         string            `json:"sessionId,omitempty"`
	Timestamp         time.Time         `json:"timestamp"`
}

// Message returns the assistant message the client appends to its history.
func (r ChatResponse) Message() Message {
	return Message{
		ID:          r.MessageID,
		Role:        RoleAssistant,
		Content:     r.Response,
		Timestamp:   r.Timestamp,
		IsEmergency: r.IsEmergency,
		Hospitals:   r.Hospitals,
		FollowUp:    r.FollowUp,
	}
}
