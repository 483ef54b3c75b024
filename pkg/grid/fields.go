package grid

import "strings"

// Built-in field types recognized by cell rules.
const (
	FieldIDNumber = "id-number"
	FieldPhone    = "phone"
	FieldPostcode = "postcode"
)

// FieldType identifies a semantic column kind by header keywords.
type FieldType struct {
	Name     string
	Keywords []string
}

// FieldTypes is an ordered list; earlier entries win when a header contains
// keywords of several types.
type FieldTypes []FieldType

// DefaultFieldTypes returns the built-in keyword table.
func DefaultFieldTypes() FieldTypes {
	return FieldTypes{
		{Name: FieldIDNumber, Keywords: []string{"身份证号", "身份证", "idcard"}},
		{Name: FieldPhone, Keywords: []string{"手机号", "电话", "手机", "联系电话", "mobile"}},
		{Name: FieldPostcode, Keywords: []string{"邮编", "邮政编码", "postcode"}},
	}
}

// Classify returns the field type whose keyword is contained in the header,
// or "" when none applies.
func (ft FieldTypes) Classify(header string) string {
	h := Normalize(header)
	if h == "" {
		return ""
	}
	for _, t := range ft {
		for _, kw := range t.Keywords {
			k := Normalize(kw)
			if k != "" && strings.Contains(h, k) {
				return t.Name
			}
		}
	}
	return ""
}

// BuildFieldMap maps column index to field type. Columns without a
// recognized keyword are absent.
func BuildFieldMap(headers []string, types FieldTypes) map[int]string {
	m := make(map[int]string)
	for col, h := range headers {
		if t := types.Classify(h); t != "" {
			m[col] = t
		}
	}
	return m
}
