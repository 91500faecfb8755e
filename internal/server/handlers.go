package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/evanraalte/nstimes/internal/domain"
	"github.com/evanraalte/nstimes/internal/usecase"
)

type stationJS struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func stationsJS(in []domain.Station) []stationJS {
	out := make([]stationJS, 0, len(in))
	for _, s := range in {
		out = append(out, stationJS{ID: int(s.ID), Name: s.Name})
	}
	return out
}

type pairQuery struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

type priceQuery struct {
	pairQuery
	Class int `form:"class" binding:"omitempty,oneof=1 2"`
}

type priceJS struct {
	From        string `json:"from"`
	To          string `json:"to"`
	PriceCents  int    `json:"price_cents"`
	Price       string `json:"price"`
	TravelClass int    `json:"travel_class"`
	Cached      bool   `json:"cached"`
}

type tripJS struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Track       string    `json:"track"`
	Cancelled   bool      `json:"cancelled"`
	Departure   time.Time `json:"departure"`
	Arrival     time.Time `json:"arrival"`
	TrainType   string    `json:"train_type"`
}

type lookupJS struct {
	Query      string      `json:"query"`
	Outcome    string      `json:"outcome"`
	Candidates []stationJS `json:"candidates"`
}

type statsJS struct {
	Enabled bool `json:"enabled"`
	Total   int  `json:"total"`
	Valid   int  `json:"valid"`
	Expired int  `json:"expired"`
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Error: msg})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) price(c *gin.Context) {
	var q priceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "from and to are required; class must be 1 or 2")
		return
	}

	quote, err := s.deps.Prices.Execute(c.Request.Context(), usecase.PriceRequest{
		From:  q.From,
		To:    q.To,
		Class: domain.TravelClass(q.Class),
	})
	if err != nil {
		s.fail(c, err)
		return
	}

	first, _ := quote.First()
	c.JSON(http.StatusOK, priceJS{
		From:        quote.From.Name,
		To:          quote.To.Name,
		PriceCents:  first.TotalCents,
		Price:       domain.FormatEuros(first.TotalCents),
		TravelClass: int(quote.Class),
		Cached:      quote.FromCache,
	})
}

func (s *Server) trips(c *gin.Context) {
	var q pairQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "from and to are required")
		return
	}

	res, err := s.deps.Trips.Execute(c.Request.Context(), q.From, q.To)
	if err != nil {
		s.fail(c, err)
		return
	}

	out := make([]tripJS, 0, len(res.Trips))
	for _, t := range res.Trips {
		out = append(out, tripJS{
			Origin:      t.Origin,
			Destination: t.Destination,
			Track:       t.Track,
			Cancelled:   t.Cancelled,
			Departure:   t.Departure,
			Arrival:     t.Arrival,
			TrainType:   t.TrainType,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) stations(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		badRequest(c, "q is required")
		return
	}

	lookup, err := s.deps.Resolver.Resolve(c.Request.Context(), query)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, lookupJS{
		Query:      lookup.Query,
		Outcome:    string(lookup.Kind),
		Candidates: stationsJS(lookup.Candidates),
	})
}

func (s *Server) cacheStats(c *gin.Context) {
	if s.deps.Cache == nil {
		c.JSON(http.StatusOK, statsJS{})
		return
	}
	st := s.deps.Cache.Stats()
	c.JSON(http.StatusOK, statsJS{
		Enabled: true,
		Total:   st.Total,
		Valid:   st.Valid,
		Expired: st.Expired,
	})
}
