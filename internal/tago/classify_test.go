package tago

import (
	"encoding/json"
	"testing"
)

func TestClassify_Outcomes(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected Outcome
	}{
		{"service error marker", `<OpenAPI_ServiceResponse><cmmMsgHeader>SERVICE_ERROR</cmmMsgHeader></OpenAPI_ServiceResponse>`, OutcomeServiceError},
		{"service error in json", `{"error":"SERVICE_ERROR"}`, OutcomeServiceError},
		{"quota exceeded", `API token quota exceeded`, OutcomeQuotaExceeded},
		{"empty", "", OutcomeEmpty},
		{"whitespace", "  \n\t", OutcomeEmpty},
		{"xml declaration", `<?xml version="1.0"?><response/>`, OutcomeXML},
		{"html", `<html>gateway</html>`, OutcomeXML},
		{"xml after whitespace", "  \n<?xml version=\"1.0\"?><response/>", OutcomeXML},
		{"malformed json", `{"response":`, OutcomeMalformed},
		{"bad result code", `{"response":{"header":{"resultCode":"22","resultMsg":"LIMITED"}}}`, OutcomeResultError},
		{"missing header", `{"foo":1}`, OutcomeResultError},
		{"ok", `{"response":{"header":{"resultCode":"00"},"body":{"items":{"item":[]}}}}`, OutcomeItems},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Classify([]byte(tc.body), ShapeStandard)
			if result.Outcome != tc.expected {
				t.Errorf("Classify(%q) = %v, expected %v", tc.body, result.Outcome, tc.expected)
			}
		})
	}
}

func TestClassify_ServiceErrorBeatsQuota(t *testing.T) {
	body := `<OpenAPI_ServiceResponse>API token quota exceeded</OpenAPI_ServiceResponse>`
	if got := Classify([]byte(body), ShapeStandard).Outcome; got != OutcomeServiceError {
		t.Errorf("Classify = %v, expected service error to match first", got)
	}
}

func TestClassify_ResultCodeAndMessage(t *testing.T) {
	body := `{"response":{"header":{"resultCode":"30","resultMsg":"SERVICE KEY IS NOT REGISTERED"}}}`
	result := Classify([]byte(body), ShapeStandard)

	if result.ResultCode != "30" || result.ResultMsg != "SERVICE KEY IS NOT REGISTERED" {
		t.Errorf("Classify = %+v, expected code 30 with message", result)
	}
}

func TestClassify_ItemShapes(t *testing.T) {
	tests := []struct {
		name  string
		items string
		shape ItemShape
		count int
	}{
		{"single object", `{"item":{"tmnCd":"010"}}`, ShapeStandard, 1},
		{"array", `{"item":[{"tmnCd":"010"},{"tmnCd":"020"}]}`, ShapeStandard, 2},
		{"empty string", `""`, ShapeStandard, 0},
		{"missing item", `{}`, ShapeStandard, 0},
		{"null item", `{"item":null}`, ShapeStandard, 0},
		{"bare array ignored for standard", `[{"a":1}]`, ShapeStandard, 0},
		{"bare array for airport", `[{"a":1},{"a":2}]`, ShapeAirport, 2},
		{"indexed object for airport", `{"0":{"a":1},"1":{"a":2},"2":{"a":3}}`, ShapeAirport, 3},
		{"indexed object ignored for standard", `{"0":{"a":1}}`, ShapeStandard, 0},
		{"mixed keys for airport", `{"0":{"a":1},"x":{"a":2}}`, ShapeAirport, 0},
		{"item wrapper for airport", `{"item":[{"a":1}]}`, ShapeAirport, 1},
		{"empty string for airport", `""`, ShapeAirport, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body := `{"response":{"header":{"resultCode":"00"},"body":{"items":` + tc.items + `}}}`
			result := Classify([]byte(body), tc.shape)
			if result.Outcome != OutcomeItems {
				t.Fatalf("Outcome = %v, expected items", result.Outcome)
			}
			if len(result.Items) != tc.count {
				t.Errorf("len(Items) = %d, expected %d", len(result.Items), tc.count)
			}
		})
	}
}

func TestClassify_NoBodyField(t *testing.T) {
	body := `{"response":{"header":{"resultCode":"00","resultMsg":"NORMAL SERVICE."}}}`
	result := Classify([]byte(body), ShapeStandard)
	if result.Outcome != OutcomeItems || len(result.Items) != 0 {
		t.Errorf("Classify = %+v, expected no items", result)
	}
}

func TestClassify_IndexedOrder(t *testing.T) {
	body := `{"response":{"header":{"resultCode":"00"},"body":{"items":{"10":{"n":10},"2":{"n":2},"0":{"n":0}}}}}`
	result := Classify([]byte(body), ShapeAirport)

	expected := []int{0, 2, 10}
	if len(result.Items) != len(expected) {
		t.Fatalf("len(Items) = %d, expected %d", len(result.Items), len(expected))
	}
	for i, raw := range result.Items {
		var v struct{ N int }
		if err := json.Unmarshal(raw, &v); err != nil {
			t.Fatal(err)
		}
		if v.N != expected[i] {
			t.Errorf("Items[%d].n = %d, expected %d", i, v.N, expected[i])
		}
	}
}

func TestFlexString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"202501150830"`, "202501150830"},
		{`202501150830`, "202501150830"},
		{`null`, ""},
		{`" 010 "`, "010"},
	}

	for _, tc := range tests {
		var f FlexString
		if err := json.Unmarshal([]byte(tc.input), &f); err != nil {
			t.Fatalf("Unmarshal(%s) returned error: %v", tc.input, err)
		}
		if f.String() != tc.expected {
			t.Errorf("FlexString(%s) = %q, expected %q", tc.input, f.String(), tc.expected)
		}
	}
}

func TestFlexInt(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{`35000`, 35000},
		{`"35000"`, 35000},
		{`""`, 0},
		{`"무료"`, 0},
		{`null`, 0},
		{`12000.0`, 12000},
	}

	for _, tc := range tests {
		var f FlexInt
		if err := json.Unmarshal([]byte(tc.input), &f); err != nil {
			t.Fatalf("Unmarshal(%s) returned error: %v", tc.input, err)
		}
		if int(f) != tc.expected {
			t.Errorf("FlexInt(%s) = %d, expected %d", tc.input, f, tc.expected)
		}
	}
}
