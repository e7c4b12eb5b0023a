package api

// ActivityResponse is the envelope returned by cmd=get_activity.
type ActivityResponse struct {
	Response `json:"response"`
}

type Response struct {
	Result  string       `json:"result"`
	Message FlexString   `json:"message"`
	Data    ActivityData `json:"data"`
}

type ActivityData struct {
	// StreamCount is nil when the field is absent or null.
	StreamCount *FlexInt  `json:"stream_count"`
	Sessions    []Session `json:"sessions"`

	StreamCountDirectPlay   FlexInt `json:"stream_count_direct_play"`
	StreamCountDirectStream FlexInt `json:"stream_count_direct_stream"`
	StreamCountTranscode    FlexInt `json:"stream_count_transcode"`
	TotalBandwidth          FlexInt `json:"total_bandwidth"`
	LANBandwidth            FlexInt `json:"lan_bandwidth"`
	WANBandwidth            FlexInt `json:"wan_bandwidth"`
}

// Session is one entry of the sessions array. Only the fields the status
// table needs are decoded; every one of them may be missing.
type Session struct {
	SessionKey                FlexString `json:"session_key"`
	User                      FlexString `json:"user"`
	FriendlyName              FlexString `json:"friendly_name"`
	Platform                  FlexString `json:"platform"`
	Player                    FlexString `json:"player"`
	MediaType                 FlexString `json:"media_type"`
	VideoFullResolution       FlexString `json:"video_full_resolution"`
	StreamVideoFullResolution FlexString `json:"stream_video_full_resolution"`
	TranscodeDecision         FlexString `json:"transcode_decision"`
	TranscodeHWFullPipeline   FlexInt    `json:"transcode_hw_full_pipeline"`
	Bandwidth                 FlexInt    `json:"bandwidth"`
	Throttled                 FlexInt    `json:"throttled"`
	State                     FlexString `json:"state"`
	ViewOffset                FlexInt    `json:"view_offset"`
	Duration                  FlexInt    `json:"duration"`
	FullTitle                 FlexString `json:"full_title"`
	Location                  FlexString `json:"location"`
}
