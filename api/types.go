package api

// ApiResponse wraps every JSON reply.
type ApiResponse struct {
	Status string      `json:"status"`
	Error  string      `json:"error,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// RenderRequest describes a single float animation to sample. Duration is in
// seconds; an omitted overshoot uses the easing default.
type RenderRequest struct {
	From      float64 `json:"from"`
	To        float64 `json:"to"`
	Duration  float64 `json:"duration"`
	Easing    string  `json:"easing"`
	Overshoot *float64 `json:"overshoot"`
	Rate      float64 `json:"rate"`
}

// ColorRenderRequest describes a colour fade between hex colours.
type ColorRenderRequest struct {
	From      string  `json:"from" binding:"required"`
	To        string  `json:"to" binding:"required"`
	Duration  float64 `json:"duration"`
	Easing    string  `json:"easing"`
	Overshoot *float64 `json:"overshoot"`
	Rate      float64 `json:"rate"`
}

// RenderResponse is the sampled animation. Times are normalized to the
// duration, which is in seconds.
type RenderResponse[T any] struct {
	Duration     float64   `json:"duration"`
	FillForwards bool      `json:"fillForwards"`
	Times        []float64 `json:"times"`
	Values       []T       `json:"values"`
}
