package activity

// RecommendRequest mirrors the criteria accepted by POST /recommend.
type RecommendRequest struct {
	UserID          int64    `json:"userId,omitempty"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	ChargingTime    int      `json:"chargingTime"`
	EcoFriendly     bool     `json:"ecoFriendly"`
	PublicTransport bool     `json:"publicTransport"`
	TravelTime      int      `json:"travelTime"`
	PersonCount     int      `json:"personCount"`
	Purposes        []string `json:"purposes"`
	Locations       []string `json:"locations"`
	Preferences     string   `json:"preferences"`
}

// RecommendResponse mirrors the payload returned by POST /recommend.
type RecommendResponse struct {
	Recommendations []PlaceInfo `json:"recommendations"`
}

// PlaceInfo is a single recommended place.
type PlaceInfo struct {
	PlaceName     string `json:"placeName"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	DistanceMeter int    `json:"distanceMeter"`
	TravelTimeMin int    `json:"travelTimeMin"`
	IsEcoFriendly bool   `json:"ecoFriendly"`
	ImageURL      string `json:"imageUrl"`
}

// EstimatedTimeResponse mirrors GET /estimated-time/{userId}.
type EstimatedTimeResponse struct {
	EstimatedTime float64 `json:"estimatedTime"`
}

// Minutes returns the estimate rounded to whole minutes.
func (e EstimatedTimeResponse) Minutes() int {
	if e.EstimatedTime <= 0 {
		return 0
	}
	return int(e.EstimatedTime + 0.5)
}

type errorBody struct {
	Message string `json:"message"`
}
