package model

// QuestionType defines the widget a question renders with
type QuestionType string

const (
	QuestionTypeRating QuestionType = "rating" // 1..10 number boxes
	QuestionTypeText   QuestionType = "text"   // free-text area
)

// RatingMax is the upper bound of the rating widget scale.
const RatingMax = 10

// Question is one survey question. FieldName is the document key in the
// store, so writing a question with an existing field name overwrites it.
type Question struct {
	Text      string       `json:"text" bson:"text"`
	FieldName string       `json:"fieldName" bson:"fieldName"`
	Type      QuestionType `json:"type" bson:"type"`
	Order     int          `json:"order" bson:"order"`
}

// QuestionDraft is the form-local shape of a question being authored,
// before an order value has been assigned.
type QuestionDraft struct {
	Text      string       `json:"text"`
	FieldName string       `json:"fieldName"`
	Type      QuestionType `json:"type"`
}
