package request

type GenerateSlotsRequest struct {
	// Days of 0 means "use the configured horizon".
	Days int `json:"days" binding:"omitempty,min=1,max=365"`
}
