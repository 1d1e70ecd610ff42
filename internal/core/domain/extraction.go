package domain

import (
	"strconv"
	"strings"
	"unicode"
)

// ExtractionPayload is the loosely structured result of an external call
// transcription/analysis process, posted to the webhook endpoint. Every
// field is optional; the normalizer owns the defaulting rules.
type ExtractionPayload struct {
	CallID        string `json:"call_id,omitempty"`
	CallTimestamp string `json:"call_timestamp,omitempty"`
	CallDirection string `json:"call_direction,omitempty"`
	CallDuration  *int   `json:"call_duration,omitempty"`

	Transcript         string `json:"transcript,omitempty"`
	Classification     string `json:"classification,omitempty"`
	Intent             string `json:"intent,omitempty"`
	LoadClassification string `json:"load_classification,omitempty"`
	Sentiment          string `json:"sentiment,omitempty"`
	FollowUpReason     string `json:"follow_up_reason,omitempty"`

	CustomerName  string `json:"customer_name,omitempty"`
	CompanyName   string `json:"company_name,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	MCNumber      string `json:"mc_number,omitempty"`

	Origin           string `json:"origin,omitempty"`
	Destination      string `json:"destination,omitempty"`
	PickupDate       string `json:"pickup_date,omitempty"`
	DeliveryDate     string `json:"delivery_date,omitempty"`
	EquipmentType    string `json:"equipment_type,omitempty"`
	RateMentioned    string `json:"rate_mentioned,omitempty"`
	Miles            *int   `json:"miles,omitempty"`
	LoadRequirements string `json:"load_requirements,omitempty"`

	PriorityLevel  string `json:"priority_level,omitempty"`
	FollowUpNeeded *bool  `json:"follow_up_needed,omitempty"`
	FollowUpDate   string `json:"follow_up_date,omitempty"`

	ExtractedData map[string]any `json:"extracted_data,omitempty"`
	RawData       map[string]any `json:"raw_data,omitempty"`
}

// ParseRateMention extracts an integer dollar amount from a free-text rate
// mention such as "$2,500" or "around 1800 dollars". Commas are stripped
// first, then the first contiguous run of digits is parsed. The second
// return is false when no amount can be recovered; this never errors.
func ParseRateMention(s string) (int, bool) {
	s = strings.ReplaceAll(s, ",", "")
	start, end := -1, -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start == -1 {
				start = i
			}
			end = i + 1
			continue
		}
		if start != -1 {
			break
		}
	}
	if start == -1 {
		return 0, false
	}
	rate, err := strconv.Atoi(s[start:end])
	if err != nil {
		return 0, false
	}
	return rate, true
}

// TitleCase upper-cases the first letter of each space-separated word,
// lower-casing the rest: "not successful" -> "Not Successful".
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
