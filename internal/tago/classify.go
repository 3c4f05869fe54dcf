package tago

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
)

const (
	serviceResponseMarker = "OpenAPI_ServiceResponse"
	serviceErrorMarker    = "SERVICE_ERROR"
	quotaExceededMarker   = "API token quota exceeded"
	successCode           = "00"
)

// Outcome is the classification of a raw provider response body
type Outcome int

const (
	OutcomeItems Outcome = iota
	OutcomeServiceError
	OutcomeQuotaExceeded
	OutcomeEmpty
	OutcomeXML
	OutcomeMalformed
	OutcomeResultError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeItems:
		return "items"
	case OutcomeServiceError:
		return "service error"
	case OutcomeQuotaExceeded:
		return "quota exceeded"
	case OutcomeEmpty:
		return "empty"
	case OutcomeXML:
		return "xml"
	case OutcomeMalformed:
		return "malformed"
	case OutcomeResultError:
		return "result error"
	}
	return "unknown"
}

// ItemShape selects how response.body.items is unpacked
type ItemShape int

const (
	// ShapeStandard reads items.item as a single object or an array
	ShapeStandard ItemShape = iota
	// ShapeAirport additionally accepts items as a bare array or as an
	// object keyed by decimal indices
	ShapeAirport
)

// Response is a classified provider response
type Response struct {
	Outcome    Outcome
	Items      []json.RawMessage
	ResultCode string
	ResultMsg  string
}

type envelope struct {
	Response struct {
		Header struct {
			ResultCode FlexString `json:"resultCode"`
			ResultMsg  string     `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			Items json.RawMessage `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

// Classify inspects a raw body. Rules are applied in order; the first match
// wins.
func Classify(body []byte, shape ItemShape) Response {
	if bytes.Contains(body, []byte(serviceResponseMarker)) || bytes.Contains(body, []byte(serviceErrorMarker)) {
		return Response{Outcome: OutcomeServiceError}
	}
	if bytes.Contains(body, []byte(quotaExceededMarker)) {
		return Response{Outcome: OutcomeQuotaExceeded}
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Response{Outcome: OutcomeEmpty}
	}
	if bytes.HasPrefix(trimmed, []byte("<")) {
		return Response{Outcome: OutcomeXML}
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return Response{Outcome: OutcomeMalformed}
	}

	code := string(env.Response.Header.ResultCode)
	if code != successCode {
		return Response{
			Outcome:    OutcomeResultError,
			ResultCode: code,
			ResultMsg:  env.Response.Header.ResultMsg,
		}
	}

	return Response{
		Outcome:    OutcomeItems,
		Items:      unpackItems(env.Response.Body.Items, shape),
		ResultCode: code,
		ResultMsg:  env.Response.Header.ResultMsg,
	}
}

func unpackItems(raw json.RawMessage, shape ItemShape) []json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	switch raw[0] {
	case '[':
		if shape == ShapeAirport {
			return asList(raw)
		}
		return nil
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil
		}
		if item, ok := obj["item"]; ok {
			return asList(item)
		}
		if shape == ShapeAirport {
			return indexedValues(obj)
		}
	}
	// null, "" and anything else carry no items
	return nil
}

// asList returns an array's elements, or a single object as a one-element list
func asList(raw json.RawMessage) []json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	switch raw[0] {
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil
		}
		return list
	case '{':
		return []json.RawMessage{raw}
	}
	return nil
}

// indexedValues returns the values of {"0": ..., "1": ...} in index order.
// Objects with any non-numeric key yield nothing.
func indexedValues(obj map[string]json.RawMessage) []json.RawMessage {
	if len(obj) == 0 {
		return nil
	}

	indices := make([]int, 0, len(obj))
	byIndex := make(map[int]json.RawMessage, len(obj))
	for k, v := range obj {
		if !isDigits(k) {
			return nil
		}
		i, err := strconv.Atoi(k)
		if err != nil {
			return nil
		}
		indices = append(indices, i)
		byIndex[i] = v
	}
	sort.Ints(indices)

	items := make([]json.RawMessage, 0, len(indices))
	for _, i := range indices {
		items = append(items, byIndex[i])
	}
	return items
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
