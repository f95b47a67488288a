package domain

// Slot bounds for the survey's presentation order. Each of the four
// generated responses is shown in exactly one slot.
const (
	SlotMin = 1
	SlotMax = 4
)

// Rating is one participant's judgment of a single generated response.
type Rating struct {
	ParticipantID string    `json:"participantId"`
	TaskID        string    `json:"taskId"`
	Condition     Condition `json:"condition"`
	ResponseID    string    `json:"responseId"`
	Usefulness    int       `json:"usefulness"`
	Novelty       int       `json:"novelty"`
	Slot          int       `json:"slot"`
}

// Validate checks the rating references a known condition, a response,
// and a legal presentation slot.
func (r Rating) Validate() error {
	ve := NewValidationError("rating")
	if !r.Condition.Valid() {
		ve.AddError("unknown condition")
	}
	if r.ResponseID == "" {
		ve.AddError("missing response id")
	}
	if r.Slot < SlotMin || r.Slot > SlotMax {
		ve.AddError("slot out of range")
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}
