package models

import (
	"encoding/json"
	"time"
)

// Reserved Job document fields. Everything else a caller supplies on create
// or patch lives in [Job.Extra] and is opaque to the service.
const (
	FieldID       = "_id"
	FieldEmail    = "email"
	FieldPostedAt = "postedAt"
)

// Job is a posting in the marketplace.
//
// ID is assigned by the store on insert. Email is the ownership key: it is
// supplied by the caller on create and immutable afterwards. PostedAt is
// stamped by the server on create and immutable afterwards. Extra holds the
// open set of caller-supplied descriptive fields (title, description, budget,
// ...) which the service never interprets.
//
// On the wire a Job is a flat document: Extra keys appear at the top level
// next to the invariant fields, matching the shape stored in the document
// database.
type Job struct {
	ID       string
	Email    string
	PostedAt time.Time
	Extra    map[string]any
}

// MarshalJSON flattens the job into a single-level JSON object.
func (j Job) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(j.Extra)+3)
	for k, v := range j.Extra {
		doc[k] = v
	}
	if j.ID != "" {
		doc[FieldID] = j.ID
	}
	doc[FieldEmail] = j.Email
	if !j.PostedAt.IsZero() {
		doc[FieldPostedAt] = j.PostedAt
	}

	return json.Marshal(doc)
}

// UnmarshalJSON lifts the invariant fields out of a flat JSON object and
// collects every remaining key into Extra.
func (j *Job) UnmarshalJSON(data []byte) error {
	doc := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	if raw, ok := doc[FieldID]; ok {
		if err := json.Unmarshal(raw, &j.ID); err != nil {
			return err
		}
		delete(doc, FieldID)
	}
	if raw, ok := doc[FieldEmail]; ok {
		if err := json.Unmarshal(raw, &j.Email); err != nil {
			return err
		}
		delete(doc, FieldEmail)
	}
	if raw, ok := doc[FieldPostedAt]; ok {
		if err := json.Unmarshal(raw, &j.PostedAt); err != nil {
			return err
		}
		delete(doc, FieldPostedAt)
	}

	if len(doc) > 0 {
		j.Extra = make(map[string]any, len(doc))
		for k, raw := range doc {
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			j.Extra[k] = v
		}
	}

	return nil
}

// JobFilter narrows a job listing. A zero value matches every job.
type JobFilter struct {
	// Email, when non-empty, restricts the listing to jobs owned by that
	// principal.
	Email string
}

// JobPatch is the set of fields a PATCH request wants to merge into an
// existing job. Keys are document field names.
type JobPatch map[string]any

// StripImmutable removes the fields that may never change after creation
// (identifier, owner email, posting timestamp) and returns the patch for
// chaining.
func (p JobPatch) StripImmutable() JobPatch {
	delete(p, FieldID)
	delete(p, FieldEmail)
	delete(p, FieldPostedAt)
	return p
}
