package model

type RenderRequestBody struct {
	BPM      float64     `json:"bpm"`
	Events   []RawEvent  `json:"events"`
	Frames   *FrameTrack `json:"frames,omitempty"`
	Mode     string      `json:"mode,omitempty"`
	Strategy string      `json:"strategy,omitempty"`
	HoldLast *bool       `json:"hold_last,omitempty"`
}

type QuantizeResponse struct {
	RenderId    string          `json:"render_id"`
	BPM         float64         `json:"bpm"`
	TempoMicros uint32          `json:"tempo_micros"`
	Notes       []QuantizedNote `json:"notes"`
	Events      []DeltaEvent    `json:"events"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
