package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/freightdesk/loadboard-core/internal/core/domain"
	"github.com/freightdesk/loadboard-core/internal/core/ports/driven"
	"github.com/freightdesk/loadboard-core/internal/core/ports/driving"
)

// Ensure ingestService implements IngestService
var _ driving.IngestService = (*ingestService)(nil)

const (
	// notePartSeparator joins the assembled summary and agent-note parts
	notePartSeparator = " | "

	// transcriptBudget caps how much transcript lands in the summary
	transcriptBudget = 200

	// callIDPrefix + second-granularity time form synthesized ids when the
	// payload carries no call id. Same-second collisions resolve by the
	// upsert's last-write-wins rule.
	callIDPrefix = "call_"
	callIDFormat = "20060102_150405"

	// fallbackSummary is stored when neither assembly branch yields parts
	fallbackSummary = "Call completed - no details extracted"

	// defaultPriority applies when the payload carries no priority level
	defaultPriority = "medium"
)

// ingestService normalizes webhook extraction payloads into conversation
// records. The mapping is deterministic: the same payload with the same
// derived id always produces the same stored record.
type ingestService struct {
	store  driven.ConversationStore
	logger *zap.Logger
	now    func() time.Time
}

// NewIngestService creates a new IngestService
func NewIngestService(store driven.ConversationStore, logger *zap.Logger) driving.IngestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ingestService{store: store, logger: logger, now: time.Now}
}

// Ingest maps the payload into exactly one conversation record and upserts
// it by the derived id. An existing record is replaced in full, never
// merged.
func (s *ingestService) Ingest(ctx context.Context, payload domain.ExtractionPayload) (*driving.IngestResult, error) {
	conv := s.normalize(payload)

	created, err := s.store.Upsert(ctx, conv)
	if err != nil {
		return nil, err
	}

	action := driving.ActionUpdated
	if created {
		action = driving.ActionCreated
	}

	s.logger.Info("ingested extraction payload",
		zap.String("conversation_id", conv.ConversationID),
		zap.String("action", action),
		zap.String("load_status", string(conv.LoadStatus)))

	return &driving.IngestResult{ConversationID: conv.ConversationID, Action: action}, nil
}

func (s *ingestService) normalize(p domain.ExtractionPayload) *domain.Conversation {
	conv := &domain.Conversation{
		ConversationID:      s.deriveID(p),
		ConversationSummary: assembleSummary(p),
		AgentNotes:          assembleAgentNotes(p),
		LoadRequirements:    p.LoadRequirements,
		EquipmentNeeded:     p.EquipmentType,
		CustomerPhone:       p.CustomerPhone,
		CustomerEmail:       p.CustomerEmail,
		MCNumber:            p.MCNumber,
		PickupLocation:      p.Origin,
		DeliveryLocation:    p.Destination,
		PickupDate:          p.PickupDate,
		DeliveryDate:        p.DeliveryDate,
		Miles:               p.Miles,
		FollowUpDate:        p.FollowUpDate,
		LoadStatus:          domain.BookingStatusFromClassification(p.LoadClassification),
	}

	if rate, ok := domain.ParseRateMention(p.RateMentioned); ok {
		conv.RateDiscussed = &rate
	}

	conv.CustomerName = p.CustomerName
	if conv.CustomerName == "" {
		conv.CustomerName = p.CompanyName
	}

	conv.CustomerPriority = p.PriorityLevel
	if conv.CustomerPriority == "" {
		conv.CustomerPriority = defaultPriority
	}

	if p.FollowUpNeeded != nil {
		conv.FollowUpNeeded = *p.FollowUpNeeded
	}

	conv.Timestamp = p.CallTimestamp
	if conv.Timestamp == "" {
		conv.Timestamp = s.now().UTC().Format(time.RFC3339)
	}

	return conv
}

func (s *ingestService) deriveID(p domain.ExtractionPayload) string {
	if p.CallID != "" {
		return p.CallID
	}
	return callIDPrefix + s.now().UTC().Format(callIDFormat)
}

// assembleSummary builds the conversation summary. The transcript branch
// and the structured-fields branch are mutually exclusive, selected solely
// by transcript presence.
func assembleSummary(p domain.ExtractionPayload) string {
	var parts []string

	if p.Transcript != "" {
		// The budget counts characters, not bytes, so a multibyte
		// transcript is never cut mid-rune
		transcript := p.Transcript
		if runes := []rune(transcript); len(runes) > transcriptBudget {
			transcript = string(runes[:transcriptBudget]) + "..."
		}
		parts = append(parts, transcript)
		if p.Classification != "" {
			parts = append(parts, "["+p.Classification+"]")
		}
		if p.Intent != "" {
			parts = append(parts, p.Intent)
		}
	} else {
		if p.Origin != "" && p.Destination != "" {
			parts = append(parts, p.Origin+" → "+p.Destination)
		}
		if p.EquipmentType != "" {
			parts = append(parts, "Equipment: "+p.EquipmentType)
		}
		if p.RateMentioned != "" {
			parts = append(parts, "Rate: "+p.RateMentioned)
		}
		if p.CallDirection != "" {
			parts = append(parts, p.CallDirection+" call")
		}
	}

	if len(parts) == 0 {
		return fallbackSummary
	}
	return strings.Join(parts, notePartSeparator)
}

// assembleAgentNotes concatenates the status, sentiment, follow-up,
// duration, and auxiliary-data tags. The "Load Status:" tag format is load
// bearing: downstream consumers derive the booking outcome from it by
// substring inspection.
func assembleAgentNotes(p domain.ExtractionPayload) string {
	var parts []string

	if p.LoadClassification != "" {
		parts = append(parts, "Load Status: "+domain.TitleCase(p.LoadClassification))
	}
	if p.Sentiment != "" {
		parts = append(parts, "Sentiment: "+p.Sentiment)
	}
	if p.FollowUpReason != "" {
		parts = append(parts, "Follow-up: "+p.FollowUpReason)
	}
	if p.CallDuration != nil {
		parts = append(parts, fmt.Sprintf("Call duration: %ds", *p.CallDuration))
	}
	// fmt renders maps with sorted keys, keeping the dump deterministic
	if len(p.ExtractedData) > 0 {
		parts = append(parts, fmt.Sprintf("Extracted data: %v", p.ExtractedData))
	}
	if len(p.RawData) > 0 {
		parts = append(parts, fmt.Sprintf("Raw data: %v", p.RawData))
	}

	return strings.Join(parts, notePartSeparator)
}
