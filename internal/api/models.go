package api

// GradeRequest represents the request body for grading one item.
type GradeRequest struct {
	ItemKey string `json:"itemKey" validate:"required"`
	Quality string `json:"quality" validate:"required,oneof=know unsure dont_know"`
	Surface string `json:"surface" validate:"omitempty,oneof=flashcard quiz sentence"`
}

// GradeResponse carries the mastery record after grading. Persisted is
// false when the grading was computed but could not be durably saved.
type GradeResponse struct {
	Record    interface{} `json:"record"`
	Persisted bool        `json:"persisted"`
}

// StartSessionRequest represents the request body for starting a session.
type StartSessionRequest struct {
	Mode      string `json:"mode" validate:"omitempty,oneof=flashcard quiz sentence"`
	Level     int    `json:"level" validate:"required,gt=0"`
	Direction string `json:"direction" validate:"omitempty,oneof=kr-en en-kr"`
	Category  string `json:"category"`
	Count     int    `json:"count" validate:"omitempty,gt=0"`
	DueOnly   bool   `json:"dueOnly"`
}

// AdvanceRequest represents the request body for flashcard navigation.
type AdvanceRequest struct {
	Back bool `json:"back"`
}

// SessionGradeRequest represents the request body for grading the current
// flashcard.
type SessionGradeRequest struct {
	Quality string `json:"quality" validate:"required,oneof=know unsure dont_know"`
}

// AnswerRequest represents the request body for a typed quiz answer. An
// empty answer is allowed; it simply grades as wrong.
type AnswerRequest struct {
	Answer string `json:"answer"`
}
