package domain

import (
	"fmt"
	"strings"
	"time"
)

// StatusAvailable is the status assigned to new loads and the implicit
// default filter on listings. Callers that want every status must pass an
// explicitly empty status filter.
const StatusAvailable = "available"

// Load represents a freight shipment listing
type Load struct {
	LoadID           string   `json:"load_id"`
	Origin           string   `json:"origin"`
	Destination      string   `json:"destination"`
	PickupDatetime   string   `json:"pickup_datetime"`
	DeliveryDatetime string   `json:"delivery_datetime"`
	EquipmentType    string   `json:"equipment_type"`
	LoadboardRate    int      `json:"loadboard_rate"`
	Status           string   `json:"status,omitempty"`
	Weight           *float64 `json:"weight,omitempty"`
	Miles            *float64 `json:"miles,omitempty"`
	NumOfPieces      *int     `json:"num_of_pieces,omitempty"`
	CommodityType    string   `json:"commodity_type,omitempty"`
	Dimensions       string   `json:"dimensions,omitempty"`
	Notes            string   `json:"notes,omitempty"`
}

// Validate checks the fields required to list a load
func (l *Load) Validate() error {
	switch {
	case l.LoadID == "":
		return fmt.Errorf("%w: load_id is required", ErrInvalidInput)
	case l.Origin == "":
		return fmt.Errorf("%w: origin is required", ErrInvalidInput)
	case l.Destination == "":
		return fmt.Errorf("%w: destination is required", ErrInvalidInput)
	case l.PickupDatetime == "":
		return fmt.Errorf("%w: pickup_datetime is required", ErrInvalidInput)
	case l.DeliveryDatetime == "":
		return fmt.Errorf("%w: delivery_datetime is required", ErrInvalidInput)
	case l.LoadboardRate < 0:
		return fmt.Errorf("%w: loadboard_rate must be non-negative", ErrInvalidInput)
	}
	return nil
}

// LoadFilter holds the optional predicates a load listing can carry.
// Nil fields impose no constraint; supplied fields are ANDed together.
type LoadFilter struct {
	// Origin and Destination match as case-insensitive substrings.
	Origin      *string
	Destination *string

	// EquipmentType matches as a case-insensitive exact comparison.
	EquipmentType *string

	// Status matches exactly. Nil means the caller omitted the parameter
	// and the service layer substitutes StatusAvailable; an explicitly
	// empty string imposes no status constraint at all.
	Status *string

	// Numeric bounds are inclusive. A load whose field is absent is
	// compared as 0, so a positive MinWeight excludes weight-less loads
	// while MaxWeight never does. Preserved as observed upstream.
	MinWeight *float64
	MaxWeight *float64
	PriceMin  *float64
	PriceMax  *float64
	MinRate   *int

	// PickupFrom and PickupTo are ISO-8601 instants compared inclusively
	// against the load's pickup_datetime. A parse failure on either side
	// is a validation error, never a silent skip.
	PickupFrom *string
	PickupTo   *string
}

// Validate checks the filter's date bounds parse. Called once per request
// so a malformed bound fails the whole listing even when no record reaches
// the date comparison.
func (f LoadFilter) Validate() error {
	if f.PickupFrom != nil {
		if _, err := ParseInstant(*f.PickupFrom); err != nil {
			return fmt.Errorf("%w: pickup_from: %v", ErrInvalidInput, err)
		}
	}
	if f.PickupTo != nil {
		if _, err := ParseInstant(*f.PickupTo); err != nil {
			return fmt.Errorf("%w: pickup_to: %v", ErrInvalidInput, err)
		}
	}
	return nil
}

// Matches reports whether the load satisfies every supplied predicate.
func (f LoadFilter) Matches(l *Load) (bool, error) {
	if f.Origin != nil && !containsFold(l.Origin, *f.Origin) {
		return false, nil
	}
	if f.Destination != nil && !containsFold(l.Destination, *f.Destination) {
		return false, nil
	}
	if f.EquipmentType != nil && !strings.EqualFold(l.EquipmentType, *f.EquipmentType) {
		return false, nil
	}
	if f.Status != nil && *f.Status != "" && l.Status != *f.Status {
		return false, nil
	}

	if f.MinWeight != nil && floatOrZero(l.Weight) < *f.MinWeight {
		return false, nil
	}
	if f.MaxWeight != nil && floatOrZero(l.Weight) > *f.MaxWeight {
		return false, nil
	}
	if f.PriceMin != nil && float64(l.LoadboardRate) < *f.PriceMin {
		return false, nil
	}
	if f.PriceMax != nil && float64(l.LoadboardRate) > *f.PriceMax {
		return false, nil
	}
	if f.MinRate != nil && l.LoadboardRate < *f.MinRate {
		return false, nil
	}

	if f.PickupFrom != nil || f.PickupTo != nil {
		pickup, err := ParseInstant(l.PickupDatetime)
		if err != nil {
			return false, fmt.Errorf("%w: load %s pickup_datetime: %v", ErrInvalidInput, l.LoadID, err)
		}
		if f.PickupFrom != nil {
			from, err := ParseInstant(*f.PickupFrom)
			if err != nil {
				return false, fmt.Errorf("%w: pickup_from: %v", ErrInvalidInput, err)
			}
			if pickup.Before(from) {
				return false, nil
			}
		}
		if f.PickupTo != nil {
			to, err := ParseInstant(*f.PickupTo)
			if err != nil {
				return false, fmt.Errorf("%w: pickup_to: %v", ErrInvalidInput, err)
			}
			if pickup.After(to) {
				return false, nil
			}
		}
	}

	return true, nil
}

// instantLayouts covers the ISO-8601 shapes the flat files and callers use,
// tried in order after the trailing-Z translation.
var instantLayouts = []string{
	"2006-01-02T15:04:05-07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseInstant parses an ISO-8601 timestamp, translating a trailing Z to
// +00:00 first so zone-suffixed and offset forms compare on equal footing.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as ISO-8601 timestamp", s)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
