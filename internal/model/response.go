package model

import "time"

// SurveyResponse is one submitted survey. UserID is the document key in
// the store, so a visitor submitting twice overwrites their earlier
// response rather than creating a duplicate.
type SurveyResponse struct {
	UserID        string    `json:"userId" bson:"userId"`
	SurveyAnswers AnswerMap `json:"surveyAnswers" bson:"surveyAnswers"`
	SubmittedAt   time.Time `json:"submittedAt" bson:"submittedAt"`
}

// SubmitSurveyRequest is the body of POST /submit-survey.
type SubmitSurveyRequest struct {
	UserID        string    `json:"userId"`
	SurveyAnswers AnswerMap `json:"surveyAnswers"`
}
