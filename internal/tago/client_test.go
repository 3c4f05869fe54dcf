package tago

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/leeks92/bus-mustarddata/internal/logging"
)

func newTestServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch_QuotaExceeded(t *testing.T) {
	srv := newTestServer(t, "API token quota exceeded")
	c := NewClient(srv.Client(), logging.Nop())

	items, err := c.Fetch(context.Background(), srv.URL+"/getExpBusTmnList?serviceKey=k", true)
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("Fetch error = %v, expected ErrQuotaExceeded", err)
	}
	if items != nil {
		t.Errorf("Fetch items = %v, expected nil", items)
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Fetch error should be a *FetchError, got %T", err)
	}
	if fetchErr.Endpoint != "getExpBusTmnList" {
		t.Errorf("Endpoint = %q, expected %q", fetchErr.Endpoint, "getExpBusTmnList")
	}
}

func TestFetch_NonFatalOutcomesReturnNoError(t *testing.T) {
	bodies := []string{
		`<OpenAPI_ServiceResponse/>`,
		``,
		`<?xml version="1.0"?>`,
		`not json`,
		`{"response":{"header":{"resultCode":"99"}}}`,
	}

	for _, body := range bodies {
		srv := newTestServer(t, body)
		c := NewClient(srv.Client(), logging.Nop())

		items, err := c.Fetch(context.Background(), srv.URL+"/x", false)
		if err != nil {
			t.Errorf("Fetch(%q) error = %v, expected nil", body, err)
		}
		if len(items) != 0 {
			t.Errorf("Fetch(%q) returned %d items, expected 0", body, len(items))
		}
	}
}

func TestFetch_TransportFailureIsNoData(t *testing.T) {
	srv := newTestServer(t, "")
	url := srv.URL
	srv.Close()

	c := NewClient(nil, logging.Nop())
	items, err := c.Fetch(context.Background(), url+"/x", false)
	if err != nil {
		t.Errorf("Fetch error = %v, expected transport failure to be swallowed", err)
	}
	if len(items) != 0 {
		t.Errorf("Fetch returned %d items, expected 0", len(items))
	}
}

func TestFetch_CanceledContext(t *testing.T) {
	srv := newTestServer(t, `{"response":{"header":{"resultCode":"00"}}}`)
	c := NewClient(srv.Client(), logging.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Fetch(ctx, srv.URL+"/x", true); !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch error = %v, expected context.Canceled", err)
	}
}

func TestFetchInto_DropsUndecodableItems(t *testing.T) {
	body := `{"response":{"header":{"resultCode":"00"},"body":{"items":{"item":[
		{"depPlandTime":202501150830,"arrPlandTime":"202501151100","gradeNm":"우등","charge":35000},
		"garbage",
		null,
		{"depPlandTime":"202501150900","arrPlandTime":"202501151130","charge":"28000"}
	]}}}}`
	srv := newTestServer(t, body)
	c := NewClient(srv.Client(), logging.Nop())

	items, err := FetchInto[ScheduleItem](context.Background(), c, srv.URL+"/x", true)
	if err != nil {
		t.Fatalf("FetchInto error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, expected 2", len(items))
	}
	if items[0].DepPlandTime.String() != "202501150830" {
		t.Errorf("DepPlandTime = %q, expected numeric timestamp kept as digits", items[0].DepPlandTime)
	}
	if items[1].Charge != 28000 {
		t.Errorf("Charge = %d, expected 28000", items[1].Charge)
	}
}

func TestExpressService_ShortTerminals(t *testing.T) {
	body := `{"response":{"header":{"resultCode":"00"},"body":{"items":{"item":[
		{"tmnCd":"010","tmnNm":"서울경부"},
		{"tmnCd":"","tmnNm":"이름만"},
		{"tmnCd":"700","tmnNm":"부산"}
	]}}}}`
	srv := newTestServer(t, body)
	api := NewAPI(NewClient(srv.Client(), logging.Nop()), Endpoints{ExpressArrURL: srv.URL, ServiceKey: "k"})

	terminals, err := api.Express().ShortTerminals(context.Background())
	if err != nil {
		t.Fatalf("ShortTerminals error = %v", err)
	}
	if len(terminals) != 2 {
		t.Fatalf("len(terminals) = %d, expected 2", len(terminals))
	}
	if terminals[0].Code != "010" || terminals[1].Name != "부산" {
		t.Errorf("terminals = %+v", terminals)
	}
}

func TestEndpoints_ArrKeyFallback(t *testing.T) {
	e := Endpoints{ExpressArrURL: "http://arr", ServiceKey: "main"}
	expected := "http://arr/getArrTmnFromDepTmn?serviceKey=main&depTmnCd=010&numOfRows=500&pageNo=1&_type=json"
	if got := e.ExpressArrivalsURL("010"); got != expected {
		t.Errorf("ExpressArrivalsURL = %q, expected %q", got, expected)
	}

	e.ArrServiceKey = "arr"
	if got := e.ExpressShortTerminalsURL(); got != "http://arr/getExpBusTmnList?serviceKey=arr&numOfRows=500&pageNo=1&_type=json" {
		t.Errorf("ExpressShortTerminalsURL = %q, expected arrival key", got)
	}
}
