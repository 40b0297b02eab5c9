package domain

// Hook is one captured social event: the hook text plus the context it was
// observed in. Hooks are the records of the event log export.
type Hook struct {
	Text      string `json:"hook" validate:"required"`
	Category  string `json:"category"`
	Weather   string `json:"weather"`
	TimeOfDay string `json:"time_of_day" validate:"omitempty,oneof=morning afternoon evening night"`
}

// String renders the hook as it appears in plain listings.
func (h Hook) String() string {
	return h.Text
}
