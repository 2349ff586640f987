package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/ssafy-wtd/wtd/internal/activity"
)

// FilterState is the persisted search/filter record.
type FilterState struct {
	IsExpandedSearch bool                 `json:"isExpandedSearch"`
	Recommendations  []activity.PlaceInfo `json:"recommendations"`
	HasSearched      bool                 `json:"hasSearched"`
	Filters          Filters              `json:"filters"`
}

// Filters are the user's recommendation criteria.
type Filters struct {
	ChargeTime         int      `json:"chargeTime" validate:"gte=0"`
	IsEcoFriendly      bool     `json:"isEcoFriendly"`
	TravelTime         int      `json:"travelTime" validate:"gte=0"`
	SelectedCategory   []string `json:"selectedCategory" validate:"dive,required"`
	UsePublicTransport bool     `json:"usePublicTransport"`
	Personnel          int      `json:"personnel" validate:"gte=1"`
	SelectedPurpose    []string `json:"selectedPurpose" validate:"dive,required"`
	SelectedPreference string   `json:"selectedPreference"`
}

const (
	defaultChargeTime = 30
	defaultTravelTime = 5
	defaultPersonnel  = 1
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// DefaultState returns a fresh copy of the default record.
func DefaultState() FilterState {
	return FilterState{
		Recommendations: []activity.PlaceInfo{},
		Filters:         DefaultFilters(),
	}
}

// DefaultFilters returns a fresh copy of the default filters.
func DefaultFilters() Filters {
	return Filters{
		ChargeTime:       defaultChargeTime,
		TravelTime:       defaultTravelTime,
		SelectedCategory: []string{},
		Personnel:        defaultPersonnel,
		SelectedPurpose:  []string{},
	}
}

// Validate checks the filter invariants.
func (f Filters) Validate() error {
	if err := getValidator().Struct(f); err != nil {
		return fmt.Errorf("invalid filters: %w", err)
	}
	return nil
}

// Request builds the recommendation criteria for these filters.
func (f Filters) Request(userID int64, latitude, longitude float64) activity.RecommendRequest {
	return activity.RecommendRequest{
		UserID:          userID,
		Latitude:        latitude,
		Longitude:       longitude,
		ChargingTime:    f.ChargeTime,
		EcoFriendly:     f.IsEcoFriendly,
		PublicTransport: f.UsePublicTransport,
		TravelTime:      f.TravelTime,
		PersonCount:     f.Personnel,
		Purposes:        cloneStrings(f.SelectedPurpose),
		Locations:       cloneStrings(f.SelectedCategory),
		Preferences:     f.SelectedPreference,
	}
}

// Clone returns a deep copy.
func (s FilterState) Clone() FilterState {
	dup := s
	dup.Recommendations = clonePlaces(s.Recommendations)
	dup.Filters = s.Filters.Clone()
	return dup
}

// Clone returns a deep copy.
func (f Filters) Clone() Filters {
	dup := f
	dup.SelectedCategory = cloneStrings(f.SelectedCategory)
	dup.SelectedPurpose = cloneStrings(f.SelectedPurpose)
	return dup
}

// decodeState merges a persisted record over the defaults one field at a
// time. Fields that are missing, mistyped or invalid keep their default and
// are reported in dropped. Only a payload that is not a JSON object at all
// returns an error.
func decodeState(data []byte) (st FilterState, dropped []string, err error) {
	st = DefaultState()

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return st, nil, fmt.Errorf("parse state: %w", err)
	}
	if raw == nil {
		return st, nil, fmt.Errorf("parse state: not an object")
	}

	mergeField(raw, "isExpandedSearch", &st.IsExpandedSearch, "", &dropped)
	mergeField(raw, "hasSearched", &st.HasSearched, "", &dropped)
	mergeField(raw, "recommendations", &st.Recommendations, "", &dropped)

	if rawFilters, ok := raw["filters"]; ok {
		var fr map[string]json.RawMessage
		if err := json.Unmarshal(rawFilters, &fr); err != nil || fr == nil {
			dropped = append(dropped, "filters")
		} else {
			f := &st.Filters
			mergeField(fr, "chargeTime", &f.ChargeTime, "gte=0", &dropped)
			mergeField(fr, "isEcoFriendly", &f.IsEcoFriendly, "", &dropped)
			mergeField(fr, "travelTime", &f.TravelTime, "gte=0", &dropped)
			mergeField(fr, "selectedCategory", &f.SelectedCategory, "dive,required", &dropped)
			mergeField(fr, "usePublicTransport", &f.UsePublicTransport, "", &dropped)
			mergeField(fr, "personnel", &f.Personnel, "gte=1", &dropped)
			mergeField(fr, "selectedPurpose", &f.SelectedPurpose, "dive,required", &dropped)
			mergeField(fr, "selectedPreference", &f.SelectedPreference, "", &dropped)
		}
	}

	st.normalize()
	return st, dropped, nil
}

// mergeField decodes raw[key] into dst when it is present, well-typed and
// passes tag. dst is left untouched otherwise.
func mergeField[T any](raw map[string]json.RawMessage, key string, dst *T, tag string, dropped *[]string) {
	msg, ok := raw[key]
	if !ok {
		return
	}
	if string(bytes.TrimSpace(msg)) == "null" {
		*dropped = append(*dropped, key)
		return
	}
	var v T
	if err := json.Unmarshal(msg, &v); err != nil {
		*dropped = append(*dropped, key)
		return
	}
	if tag != "" {
		if err := getValidator().Var(v, tag); err != nil {
			*dropped = append(*dropped, key)
			return
		}
	}
	*dst = v
}

// normalize replaces nil slices so they serialize as [] rather than null.
func (s *FilterState) normalize() {
	if s.Recommendations == nil {
		s.Recommendations = []activity.PlaceInfo{}
	}
	if s.Filters.SelectedCategory == nil {
		s.Filters.SelectedCategory = []string{}
	}
	if s.Filters.SelectedPurpose == nil {
		s.Filters.SelectedPurpose = []string{}
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	dup := make([]string, len(in))
	copy(dup, in)
	return dup
}

func clonePlaces(in []activity.PlaceInfo) []activity.PlaceInfo {
	if in == nil {
		return []activity.PlaceInfo{}
	}
	dup := make([]activity.PlaceInfo, len(in))
	copy(dup, in)
	return dup
}
