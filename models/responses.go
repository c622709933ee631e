package models

// Message is the uniform error body returned to clients. Internal error
// detail is logged server-side and never placed here.
type Message struct {
	Message string `json:"message"`
}

// InsertResult echoes the outcome of a single-document insert, in the shape
// the document store reports it.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// UpdateResult echoes the outcome of a single-document update.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult echoes the outcome of a single-document delete.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
