package domain

import (
	"fmt"
	"strings"
)

// BookingStatus is the explicit booking outcome of a conversation. The
// legacy encoding is a "Load Status: X" tag embedded in agent_notes; this
// field makes the outcome queryable without substring inspection while the
// tag keeps being emitted for consumers that still parse it.
type BookingStatus string

const (
	BookingBooked    BookingStatus = "booked"
	BookingNotBooked BookingStatus = "not_booked"
	BookingUnknown   BookingStatus = ""
)

// loadStatusTag is the legacy marker inside agent_notes. Its exact spelling
// is the de facto status schema for downstream consumers.
const loadStatusTag = "Load Status:"

// Conversation is a normalized record of one customer interaction
type Conversation struct {
	ConversationID      string        `json:"conversation_id"`
	CustomerName        string        `json:"customer_name,omitempty"`
	CustomerPhone       string        `json:"customer_phone,omitempty"`
	CustomerEmail       string        `json:"customer_email,omitempty"`
	MCNumber            string        `json:"mc_number,omitempty"`
	ConversationSummary string        `json:"conversation_summary"`
	LoadRequirements    string        `json:"load_requirements,omitempty"`
	AgentNotes          string        `json:"agent_notes,omitempty"`
	EquipmentNeeded     string        `json:"equipment_needed,omitempty"`
	PickupLocation      string        `json:"pickup_location,omitempty"`
	DeliveryLocation    string        `json:"delivery_location,omitempty"`
	PickupDate          string        `json:"pickup_date,omitempty"`
	DeliveryDate        string        `json:"delivery_date,omitempty"`
	RateDiscussed       *int          `json:"rate_discussed,omitempty"`
	Miles               *int          `json:"miles,omitempty"`
	CustomerPriority    string        `json:"customer_priority,omitempty"`
	FollowUpNeeded      bool          `json:"follow_up_needed"`
	FollowUpDate        string        `json:"follow_up_date,omitempty"`
	LoadStatus          BookingStatus `json:"load_status,omitempty"`
	Timestamp           string        `json:"timestamp,omitempty"`
}

// Validate checks the fields required to store a conversation
func (c *Conversation) Validate() error {
	switch {
	case c.ConversationID == "":
		return fmt.Errorf("%w: conversation_id is required", ErrInvalidInput)
	case c.ConversationSummary == "":
		return fmt.Errorf("%w: conversation_summary is required", ErrInvalidInput)
	}
	return nil
}

// BookingStatusFromNotes derives the booking outcome from the legacy
// "Load Status:" tag inside agent notes. Three states exist: a value
// starting with "Successful" means booked, a leading "Not" or
// "Unsuccessful" token means not booked, and an absent tag means unknown.
func BookingStatusFromNotes(notes string) BookingStatus {
	idx := strings.Index(notes, loadStatusTag)
	if idx == -1 {
		return BookingUnknown
	}
	rest := strings.TrimSpace(notes[idx+len(loadStatusTag):])
	return classifyOutcome(rest)
}

// BookingStatusFromClassification maps a raw extraction classification
// value ("successful", "not successful", ...) to a booking outcome.
func BookingStatusFromClassification(classification string) BookingStatus {
	return classifyOutcome(classification)
}

func classifyOutcome(s string) BookingStatus {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return BookingUnknown
	case strings.HasPrefix(s, "not") || strings.HasPrefix(s, "unsuccessful"):
		return BookingNotBooked
	case strings.HasPrefix(s, "success"):
		return BookingBooked
	}
	return BookingUnknown
}

// ConversationFilter holds the optional predicates a conversation listing
// can carry. Nil fields impose no constraint.
type ConversationFilter struct {
	// Customer matches customer_name as a case-insensitive substring.
	Customer *string

	// Priority matches customer_priority case-insensitively.
	Priority *string

	// FollowUp compares follow_up_needed strictly; an absent record field
	// unmarshals to false.
	FollowUp *bool
}

// Matches reports whether the conversation satisfies every supplied predicate.
func (f ConversationFilter) Matches(c *Conversation) bool {
	if f.Customer != nil && !containsFold(c.CustomerName, *f.Customer) {
		return false
	}
	if f.Priority != nil && !strings.EqualFold(c.CustomerPriority, *f.Priority) {
		return false
	}
	if f.FollowUp != nil && c.FollowUpNeeded != *f.FollowUp {
		return false
	}
	return true
}
