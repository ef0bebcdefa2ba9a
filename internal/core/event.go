package core

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Action names the change a RecordEvent reports.
type Action string

// RecordEvent describes a successful write to the store.
// Amount and Date are empty for deletions. PreviousDate is the record's date
// before an update or deletion, empty when it could not be read.
type RecordEvent struct {
	Kind         Kind
	Action       Action
	RecordID     int64
	Amount       Money
	Date         Date
	PreviousDate Date
}

// Dates returns the distinct non-empty days the event touches.
func (ev RecordEvent) Dates() []Date {
	var out []Date
	for _, d := range []Date{ev.Date, ev.PreviousDate} {
		if !d.IsEmpty() && (len(out) == 0 || out[0].Compare(d) != 0) {
			out = append(out, d)
		}
	}
	return out
}
