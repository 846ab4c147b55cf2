package model

// AnswerMap maps question field names to recorded values: an int for
// rating questions (0 = unanswered) or a string for text questions
// ("" = unanswered). Keys are always a subset of the known field names.
type AnswerMap map[string]interface{}

// DefaultAnswers builds the all-default answer map for a question set.
func DefaultAnswers(questions []Question) AnswerMap {
	answers := make(AnswerMap, len(questions))
	for _, q := range questions {
		switch q.Type {
		case QuestionTypeText:
			answers[q.FieldName] = ""
		default:
			answers[q.FieldName] = 0
		}
	}
	return answers
}

// Clone returns a copy that shares no storage with the original.
func (m AnswerMap) Clone() AnswerMap {
	clone := make(AnswerMap, len(m))
	for k, v := range m {
		clone[k] = v
	}
	return clone
}

// Equal reports whether both maps hold the same values.
func (m AnswerMap) Equal(other AnswerMap) bool {
	if len(m) != len(other) {
		return false
	}
	for k, v := range m {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
