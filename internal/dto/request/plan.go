package request

type CreatePlanRequest struct {
	PricePerHour float64 `json:"price_per_hour" validate:"required,gt=0"`
}

type SetMeetingURLRequest struct {
	MeetingURL string `json:"meeting_url" validate:"required,url,max=512"`
}
