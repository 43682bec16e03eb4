package cashfree

import (
	"encoding/json"
	"sort"
	"strings"
)

// Method is the tagged display variant of the gateway's payment_method
// field, which arrives either as a plain string or as a per-instrument
// object keyed by method name.
type Method struct {
	Kind   string
	Detail string
}

// Display renders the method for receipts: title-cased kind with the masked
// identifier appended when present, e.g. "Upi (rohit@ybl)".
func (m Method) Display() string {
	if m.Kind == "" {
		return ""
	}
	label := titleCase(m.Kind)
	if m.Detail != "" {
		return label + " (" + m.Detail + ")"
	}
	return label
}

// detail fields carrying a user-recognizable masked identifier, checked in
// order of preference.
var detailKeys = []string{"upi_id", "card_number", "masked_card", "channel"}

// ParseMethod converts the raw payment_method JSON into the tagged variant.
// Unknown or empty shapes yield a zero Method, never an error: the method
// descriptor is strictly display data.
func ParseMethod(raw json.RawMessage) Method {
	if len(raw) == 0 {
		return Method{}
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return Method{Kind: strings.TrimSpace(asString)}
	}

	var asObject map[string]map[string]any
	if err := json.Unmarshal(raw, &asObject); err != nil {
		return Method{}
	}

	keys := make([]string, 0, len(asObject))
	for key, group := range asObject {
		if group == nil {
			continue
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return Method{}
	}
	sort.Strings(keys)
	kind := keys[0]

	method := Method{Kind: kind}
	group := asObject[kind]
	for _, key := range detailKeys {
		if value, ok := group[key].(string); ok && strings.TrimSpace(value) != "" {
			method.Detail = strings.TrimSpace(value)
			break
		}
	}
	return method
}

func titleCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
