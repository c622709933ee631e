package models

import (
	"encoding/json"
	"time"
)

// Reserved AcceptedTask document fields.
const (
	FieldAcceptedByEmail = "acceptedByEmail"
	FieldAcceptedAt      = "acceptedAt"
	FieldJobID           = "jobId"
)

// AcceptedTask records a principal accepting a job.
//
// AcceptedByEmail is always the verified identity of the caller who created
// the record; any value supplied in the request body is discarded. AcceptedAt
// is stamped by the server. JobID references a Job by identifier but is not
// validated for existence. Extra carries the open descriptive fields, flat on
// the wire like [Job].
type AcceptedTask struct {
	ID              string
	AcceptedByEmail string
	AcceptedAt      time.Time
	JobID           string
	Extra           map[string]any
}

// MarshalJSON flattens the task into a single-level JSON object.
func (t AcceptedTask) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(t.Extra)+4)
	for k, v := range t.Extra {
		doc[k] = v
	}
	if t.ID != "" {
		doc[FieldID] = t.ID
	}
	doc[FieldAcceptedByEmail] = t.AcceptedByEmail
	if !t.AcceptedAt.IsZero() {
		doc[FieldAcceptedAt] = t.AcceptedAt
	}
	if t.JobID != "" {
		doc[FieldJobID] = t.JobID
	}

	return json.Marshal(doc)
}

// UnmarshalJSON lifts the invariant fields out of a flat JSON object and
// collects every remaining key into Extra.
func (t *AcceptedTask) UnmarshalJSON(data []byte) error {
	doc := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	known := map[string]any{
		FieldID:              &t.ID,
		FieldAcceptedByEmail: &t.AcceptedByEmail,
		FieldAcceptedAt:      &t.AcceptedAt,
		FieldJobID:           &t.JobID,
	}
	for field, dst := range known {
		if raw, ok := doc[field]; ok {
			if err := json.Unmarshal(raw, dst); err != nil {
				return err
			}
			delete(doc, field)
		}
	}

	if len(doc) > 0 {
		t.Extra = make(map[string]any, len(doc))
		for k, raw := range doc {
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			t.Extra[k] = v
		}
	}

	return nil
}

// TaskFilter narrows an accepted-task listing. Non-empty fields are
// intersected (logical AND). A zero value matches every record.
type TaskFilter struct {
	// Email restricts the listing to tasks accepted by that principal.
	Email string

	// JobID restricts the listing to tasks referencing that job.
	JobID string
}
