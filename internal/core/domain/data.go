package domain

import "fmt"

// Well-known data record fields read by the merge engine.
const (
	FieldCoupleName  = "couple_name"
	FieldWeddingDate = "wedding_date"
	FieldBrideName   = "bride_name"
	FieldBrideBio    = "bride_bio"
	FieldBrideImage  = "bride_image"
	FieldGroomName   = "groom_name"
	FieldGroomBio    = "groom_bio"
	FieldGroomImage  = "groom_image"
	FieldFAQs        = "faqs"
)

// DataRecord is the flat user-supplied content that fills a template's slots.
// Values are scalars or lists of structured records (for example FAQs).
type DataRecord map[string]any

// Clone returns a deep copy of the record. A nil record clones to an empty one.
func (d DataRecord) Clone() DataRecord {
	out := make(DataRecord, len(d))
	for k, v := range d {
		out[k] = CloneValue(v)
	}
	return out
}

// Lookup returns the raw value of a field.
func (d DataRecord) Lookup(field string) (any, bool) {
	v, ok := d[field]
	return v, ok
}

// String returns a field as a string. Non-string values are formatted,
// missing and nil values yield "".
func (d DataRecord) String(field string) string {
	v, ok := d[field]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// IsEmpty reports whether a field is absent, nil, the empty string or an empty list.
func (d DataRecord) IsEmpty(field string) bool {
	return IsEmptyValue(d[field])
}

// IsEmptyValue reports whether v counts as "not filled in".
func IsEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case []map[string]any:
		return len(val) == 0
	case []string:
		return len(val) == 0
	case []FAQ:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}

// FAQ is one question/answer pair of the faqs list field.
type FAQ struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
	Open     bool   `json:"open,omitempty" yaml:"open,omitempty"`
}

// FAQs decodes the faqs list field. Entries may be typed FAQ values or
// generic maps as produced by JSON decoding. Any other entry decodes to an
// empty FAQ so the result always has one entry per list item.
func (d DataRecord) FAQs() []FAQ {
	switch list := d[FieldFAQs].(type) {
	case []FAQ:
		return append([]FAQ(nil), list...)
	case []map[string]any:
		out := make([]FAQ, 0, len(list))
		for _, m := range list {
			out = append(out, faqFromMap(m))
		}
		return out
	case []any:
		out := make([]FAQ, 0, len(list))
		for _, item := range list {
			switch e := item.(type) {
			case FAQ:
				out = append(out, e)
			case map[string]any:
				out = append(out, faqFromMap(e))
			default:
				out = append(out, FAQ{})
			}
		}
		return out
	default:
		return nil
	}
}

func faqFromMap(m map[string]any) FAQ {
	faq := FAQ{}
	if q, ok := m["question"].(string); ok {
		faq.Question = q
	}
	if a, ok := m["answer"].(string); ok {
		faq.Answer = a
	}
	if o, ok := m["open"].(bool); ok {
		faq.Open = o
	}
	return faq
}
