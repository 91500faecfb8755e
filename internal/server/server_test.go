package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/evanraalte/nstimes/internal/domain"
	"github.com/evanraalte/nstimes/internal/infra/pricecache"
	"github.com/evanraalte/nstimes/internal/stations"
	"github.com/evanraalte/nstimes/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testDirectory = stations.MustNewDirectory([]domain.Station{
	{ID: 8400058, Name: "Amsterdam Centraal"},
	{ID: 8400131, Name: "Amsterdam Sloterdijk"},
	{ID: 8400597, Name: "Tilburg"},
	{ID: 8400621, Name: "Utrecht Centraal"},
	{ID: 8400747, Name: "Zwolle"},
})

type stubUpstream struct {
	calls   int
	options []domain.PriceOption
	trips   []domain.Trip
	err     error
}

func (u *stubUpstream) Prices(context.Context, domain.Station, domain.Station, domain.TravelClass, domain.TravelType) ([]domain.PriceOption, error) {
	u.calls++
	return u.options, u.err
}

func (u *stubUpstream) Trips(context.Context, domain.Station, domain.Station) ([]domain.Trip, error) {
	return u.trips, u.err
}

type fixture struct {
	srv      *Server
	upstream *stubUpstream
	cache    *pricecache.Cache
}

func newFixture(t *testing.T, up *stubUpstream, withCache bool) fixture {
	t.Helper()
	res := stations.NewLocalResolver(testDirectory)
	metrics := NewMetrics()

	f := fixture{upstream: up}
	deps := Deps{
		Resolver: res,
		Trips:    usecase.NewFindTrips(res, up),
		Metrics:  metrics,
	}

	var opts []usecase.GetPriceOption
	if withCache {
		f.cache = pricecache.NewMemory()
		opts = append(opts, usecase.WithCache(metrics.InstrumentCache(f.cache)))
		deps.Cache = f.cache
	}
	deps.Prices = usecase.NewGetPrice(res, up, opts...)

	f.srv = New(deps)
	return f
}

func (f fixture) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	f.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	f := newFixture(t, &stubUpstream{}, false)

	rec := f.get(t, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	decode(t, rec, &body)
	if body["status"] != "ok" {
		t.Fatalf("unexpected body %v", body)
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected request id header")
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	f := newFixture(t, &stubUpstream{}, false)
	id := "6f1c2f4e-8a59-4c55-9d3f-1b0f6a3b7d21"

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, id)
	f.srv.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get(requestIDHeader); got != id {
		t.Fatalf("expected %s, got %s", id, got)
	}
}

func TestPrice_MissThenCached(t *testing.T) {
	up := &stubUpstream{options: []domain.PriceOption{{DisplayName: "Enkele reis", TravelClass: domain.SecondClass, TotalCents: 1140}}}
	f := newFixture(t, up, true)

	var first, second priceJS
	rec := f.get(t, "/price?from=Tilburg&to=Zwolle")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	decode(t, rec, &first)
	if first.Cached || first.PriceCents != 1140 || first.TravelClass != 2 || first.Price != "€11.40" {
		t.Fatalf("unexpected first response %+v", first)
	}

	rec = f.get(t, "/price?from=zwolle&to=breda&class=2")
	decode(t, rec, &second)
	if !second.Cached || second.PriceCents != 1140 {
		t.Fatalf("expected cached response, got %+v", second)
	}
	if second.From != "Zwolle" || second.To != "Tilburg" {
		t.Fatalf("unexpected stations %+v", second)
	}
	if up.calls != 1 {
		t.Fatalf("expected 1 upstream call, got %d", up.calls)
	}

	rec = f.get(t, "/metrics")
	if !strings.Contains(rec.Body.String(), `nstimes_price_cache_lookups_total{result="hit"} 1`) {
		t.Fatalf("expected hit counter in metrics output")
	}
	if !strings.Contains(rec.Body.String(), `nstimes_http_request_duration_seconds_count{method="GET",route="/price",status="200"} 2`) {
		t.Fatalf("expected latency summary for /price")
	}

	rec = f.get(t, "/cache/stats")
	var st statsJS
	decode(t, rec, &st)
	if !st.Enabled || st.Total != 1 || st.Valid != 1 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestPrice_Ambiguous(t *testing.T) {
	f := newFixture(t, &stubUpstream{}, false)

	rec := f.get(t, "/price?from=Amsterdam&to=Zwolle")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body errorBody
	decode(t, rec, &body)
	if len(body.Matches) != 2 || body.Matches[0].ID != 8400058 || body.Matches[1].ID != 8400131 {
		t.Fatalf("unexpected matches %+v", body.Matches)
	}
}

func TestPrice_NoMatch(t *testing.T) {
	f := newFixture(t, &stubUpstream{}, false)

	rec := f.get(t, "/price?from=Atlantis&to=Zwolle")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body errorBody
	decode(t, rec, &body)
	if body.Matches != nil || !strings.Contains(body.Error, "not found") {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestPrice_BadQuery(t *testing.T) {
	f := newFixture(t, &stubUpstream{}, false)

	for _, target := range []string{"/price?from=Tilburg", "/price?from=Tilburg&to=Zwolle&class=3", "/price?from=Tilburg&to=Zwolle&class=x"} {
		if rec := f.get(t, target); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestPrice_UpstreamFailure(t *testing.T) {
	up := &stubUpstream{err: &domain.OpError{Op: "nsapi.prices", Kind: domain.KindUpstream, Err: domain.ErrUpstream}}
	f := newFixture(t, up, false)

	rec := f.get(t, "/price?from=Tilburg&to=Zwolle")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestPrice_NoPrices(t *testing.T) {
	f := newFixture(t, &stubUpstream{}, false)

	if rec := f.get(t, "/price?from=Tilburg&to=Zwolle"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTrips(t *testing.T) {
	dep := time.Date(2025, 3, 14, 8, 12, 0, 0, time.UTC)
	up := &stubUpstream{trips: []domain.Trip{{Origin: "Utrecht Centraal", Destination: "Zwolle", Track: "7", Departure: dep, Arrival: dep.Add(47 * time.Minute), TrainType: "IC"}}}
	f := newFixture(t, up, false)

	rec := f.get(t, "/trips?from=Utrecht%20Centraal&to=Zwolle")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got []tripJS
	decode(t, rec, &got)
	if len(got) != 1 || got[0].Track != "7" || !got[0].Departure.Equal(dep) {
		t.Fatalf("unexpected trips %+v", got)
	}
}

func TestStations(t *testing.T) {
	f := newFixture(t, &stubUpstream{}, false)

	var got lookupJS
	decode(t, f.get(t, "/stations?q=amsterdam"), &got)
	if got.Outcome != "ambiguous" || len(got.Candidates) != 2 {
		t.Fatalf("unexpected lookup %+v", got)
	}

	decode(t, f.get(t, "/stations?q=utrecht%20c"), &got)
	if got.Outcome != "single" || got.Candidates[0].ID != 8400621 {
		t.Fatalf("unexpected lookup %+v", got)
	}

	if rec := f.get(t, "/stations"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without q, got %d", rec.Code)
	}
}

func TestCacheStats_Disabled(t *testing.T) {
	f := newFixture(t, &stubUpstream{}, false)

	rec := f.get(t, "/cache/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var st statsJS
	decode(t, rec, &st)
	if st != (statsJS{}) {
		t.Fatalf("expected zeros, got %+v", st)
	}
}

func TestNoRoute(t *testing.T) {
	f := newFixture(t, &stubUpstream{}, false)

	if rec := f.get(t, "/nope"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestServe_GracefulShutdown(t *testing.T) {
	f := newFixture(t, &stubUpstream{}, false)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve: %v", err)
		}
	case <-time.After(2 * shutdownTimeout):
		t.Fatalf("server did not stop")
	}
}
