// internal/models/answers.go
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Known questionnaire keys. The questionnaire UI may send any other key; unknown keys are
// carried through and score neutrally.
const (
	KeyBusinessType    = "business_type"
	KeyIndustry        = "industry"
	KeyCompanySize     = "company_size"
	KeyBudgetRange     = "budget_range"
	KeyTimeline        = "timeline"
	KeyPrimaryGoals    = "primary_goals"
	KeyComplexityLevel = "complexity_level"
	KeyAnnualRevenue   = "annual_revenue"
	KeyCompanyName     = "company_name"
	KeyContactName     = "contact_name"
	KeyContactEmail    = "contact_email"
)

var ErrInvalidAnswers = errors.New("INVALID_ARGUMENT")

type AnswerKind int

const (
	AnswerAbsent AnswerKind = iota
	AnswerText
	AnswerList
	AnswerScalar
)

// AnswerValue is a single questionnaire answer: absent, a string, a list of strings, or some
// other scalar kept as raw JSON.
type AnswerValue struct {
	Kind  AnswerKind
	Text  string
	Items []string
	Raw   json.RawMessage
}

func Text(s string) AnswerValue {
	return AnswerValue{Kind: AnswerText, Text: s}
}

func List(items ...string) AnswerValue {
	return AnswerValue{Kind: AnswerList, Items: items}
}

func Scalar(v interface{}) AnswerValue {
	raw, err := json.Marshal(v)
	if err != nil || string(raw) == "null" {
		return AnswerValue{}
	}
	return AnswerValue{Kind: AnswerScalar, Raw: raw}
}

// IsAnswered reports whether the value counts as answered: not null, not a blank string and
// not an empty list.
func (v AnswerValue) IsAnswered() bool {
	switch v.Kind {
	case AnswerText:
		return strings.TrimSpace(v.Text) != ""
	case AnswerList:
		return len(v.Items) > 0
	case AnswerScalar:
		return len(v.Raw) > 0
	default:
		return false
	}
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = AnswerValue{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	case '[':
		var raw []interface{}
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		items := make([]string, 0, len(raw))
		for _, item := range raw {
			switch it := item.(type) {
			case nil:
				continue
			case string:
				items = append(items, it)
			default:
				items = append(items, fmt.Sprint(it))
			}
		}
		*v = List(items...)
	default:
		*v = AnswerValue{Kind: AnswerScalar, Raw: append(json.RawMessage(nil), data...)}
	}
	return nil
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case AnswerText:
		return json.Marshal(v.Text)
	case AnswerList:
		if v.Items == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.Items)
	case AnswerScalar:
		if len(v.Raw) == 0 {
			return []byte("null"), nil
		}
		return v.Raw, nil
	default:
		return []byte("null"), nil
	}
}

// QuestionnaireAnswers maps question identifiers to answers. It is never mutated by the
// scoring code.
type QuestionnaireAnswers map[string]AnswerValue

// ParseAnswers decodes a JSON object of answers. Anything other than an object is rejected.
func ParseAnswers(data []byte) (QuestionnaireAnswers, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: answers must be a JSON object", ErrInvalidAnswers)
	}
	var answers QuestionnaireAnswers
	if err := json.Unmarshal(trimmed, &answers); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAnswers, err)
	}
	if answers == nil {
		answers = QuestionnaireAnswers{}
	}
	return answers, nil
}

func (a QuestionnaireAnswers) Has(key string) bool {
	v, ok := a[key]
	return ok && v.IsAnswered()
}

// Text returns the normalized (trimmed, lower-cased) string answer for key. A list answer
// yields its first item.
func (a QuestionnaireAnswers) Text(key string) string {
	v, ok := a[key]
	if !ok {
		return ""
	}
	switch v.Kind {
	case AnswerText:
		return normalize(v.Text)
	case AnswerList:
		for _, item := range v.Items {
			if n := normalize(item); n != "" {
				return n
			}
		}
	}
	return ""
}

// Values returns the normalized non-empty items of a list answer; a string answer becomes a
// single item.
func (a QuestionnaireAnswers) Values(key string) []string {
	v, ok := a[key]
	if !ok {
		return nil
	}
	var out []string
	switch v.Kind {
	case AnswerText:
		if n := normalize(v.Text); n != "" {
			out = append(out, n)
		}
	case AnswerList:
		for _, item := range v.Items {
			if n := normalize(item); n != "" {
				out = append(out, n)
			}
		}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
