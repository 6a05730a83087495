package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"recipe-pricing/core/cost"
	"recipe-pricing/core/output"
	"recipe-pricing/core/pricing"
	"recipe-pricing/core/profile"
	"recipe-pricing/core/rounding"
	"recipe-pricing/core/types"
	"recipe-pricing/internal/errors"
	"recipe-pricing/internal/settings"
)

// resolveProfile layers the request's profile over the tenant's, field by field
func (s *Server) resolveProfile(in ProfileInput) (*settings.Resolved, error) {
	f := s.base.Merge(settings.File{
		BusinessType: in.BusinessType,
		Country:      in.Country,
		Pricing:      in.Pricing,
		Rounding:     in.Rounding,
		Intervals:    in.Intervals,
	})
	return settings.Resolve(&f)
}

// handleQuote handles POST /v1/quote
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if !req.TaxRatePercent.Valid {
		s.writeError(w, r, errors.Input("tax_rate_percent is required"))
		return
	}

	resolved, err := s.resolveProfile(req.ProfileInput)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	params := resolved.Parameters(req.TaxRatePercent.Decimal)
	quote, err := pricing.Calculate(pricing.Request{
		Lines:     req.Lines,
		Params:    params,
		Policy:    resolved.Policy,
		Intervals: &resolved.Intervals,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	totals, err := cost.Totals(req.Lines, req.Portions)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.QuotesTotal.WithLabelValues(string(quote.Model), string(quote.Policy)).Inc()

	resp := QuoteResponse{
		RequestID: RequestIDFrom(r.Context()),
		Quote:     quote,
		Totals:    totals,
		Display:   display(quote, resolved.Regional.Currency),
	}
	if req.RecordedCost.Valid {
		result := cost.CheckConsistency(req.RecordedCost.Decimal, totals.CalculatedCost)
		resp.Consistency = &result
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func display(q *pricing.Quote, cur types.CurrencyPresentation) DisplayPrices {
	return DisplayPrices{
		PreTaxPrice:  output.FormatMoney(q.PreTaxPrice, cur, 2),
		FinalPrice:   output.FormatMoney(q.FinalPrice, cur, 2),
		RoundedPrice: output.FormatMoney(q.RoundedPrice, cur, 2),
	}
}

// handleVariants handles POST /v1/variants
func (s *Server) handleVariants(w http.ResponseWriter, r *http.Request) {
	var req VariantsRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if !req.TaxRatePercent.Valid {
		s.writeError(w, r, errors.Input("tax_rate_percent is required"))
		return
	}

	resolved, err := s.resolveProfile(req.ProfileInput)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	params := resolved.Parameters(req.TaxRatePercent.Decimal)
	base, surcharged, err := cost.SurchargedCost(req.Lines, params.OperationalCostPercent)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	values := []decimal.Decimal(resolved.Targets())
	if params.Model == types.ModelRatio {
		values = resolved.Ratios()
	}
	variants, err := pricing.Variants(surcharged, params, values, resolved.Policy, &resolved.Intervals)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	for _, v := range variants {
		if v.Err != nil {
			s.metrics.FailuresTotal.WithLabelValues(string(errors.TypeOf(v.Err))).Inc()
			continue
		}
		s.metrics.QuotesTotal.WithLabelValues(string(v.Quote.Model), string(v.Quote.Policy)).Inc()
	}

	s.writeJSON(w, http.StatusOK, VariantsResponse{
		RequestID:      RequestIDFrom(r.Context()),
		BaseCost:       base,
		SurchargedCost: surcharged,
		Variants:       variants,
	})
}

// handleRound handles POST /v1/round
func (s *Server) handleRound(w http.ResponseWriter, r *http.Request) {
	var req RoundRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	price, err := rounding.ParsePrice(req.Price)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	key, err := rounding.ParsePolicyKey(req.Policy)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	policy := rounding.NewPolicy(key)
	if req.Step != nil {
		policy.Step = decimal.NewFromFloat(*req.Step)
	}
	for _, e := range req.Endings {
		policy.Endings = append(policy.Endings, decimal.NewFromFloat(e))
	}

	rounded, err := rounding.Apply(price, policy)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, RoundResponse{
		RequestID: RequestIDFrom(r.Context()),
		Price:     price,
		Policy:    key,
		Rounded:   rounded,
	})
}

// handleConsistency handles POST /v1/consistency
func (s *Server) handleConsistency(w http.ResponseWriter, r *http.Request) {
	var req ConsistencyRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	result := cost.CheckConsistency(cost.NormalizeCost(*req.RecordedCost), cost.NormalizeCost(*req.CalculatedCost))
	s.writeJSON(w, http.StatusOK, ConsistencyResponse{
		RequestID: RequestIDFrom(r.Context()),
		Result:    result,
	})
}

// handleBusinessTypes handles GET /v1/business-types
func (s *Server) handleBusinessTypes(w http.ResponseWriter, r *http.Request) {
	entries := make([]BusinessTypeEntry, 0, len(profile.BusinessTypes))
	for _, bt := range profile.BusinessTypes {
		entries = append(entries, BusinessTypeEntry{
			BusinessType:     bt,
			CanEditIntervals: profile.CanEditIntervals(bt),
			Defaults:         profile.MustBusinessDefaults(bt),
		})
	}
	s.writeJSON(w, http.StatusOK, entries)
}

// handleBusinessDefaults handles GET /v1/business-types/{type}/defaults
func (s *Server) handleBusinessDefaults(w http.ResponseWriter, r *http.Request) {
	raw, err := url.PathUnescape(chi.URLParam(r, "type"))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.TypeInput, "invalid business type path", err))
		return
	}
	bt, err := profile.ParseBusinessType(raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defaults, err := profile.ResolveBusinessDefaults(bt)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, defaults)
}

// handleCountries handles GET /v1/countries
func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	out := make([]profile.RegionalDefaults, 0, len(profile.Countries))
	for _, c := range profile.Countries {
		out = append(out, profile.ResolveRegionalDefaults(c))
	}
	s.writeJSON(w, http.StatusOK, out)
}

// handleCountryDefaults handles GET /v1/countries/{country}/defaults.
// Unknown countries get the fallback defaults, flagged in the response.
func (s *Server) handleCountryDefaults(w http.ResponseWriter, r *http.Request) {
	raw, err := url.PathUnescape(chi.URLParam(r, "country"))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.TypeInput, "invalid country path", err))
		return
	}
	country, ok := profile.LookupCountry(raw)
	if !ok {
		country = profile.Countries[0]
	}
	s.writeJSON(w, http.StatusOK, CountryDefaultsResponse{
		Requested: raw,
		Fallback:  !ok,
		Defaults:  profile.ResolveRegionalDefaults(country),
	})
}

// handlePolicies handles GET /v1/policies
func (s *Server) handlePolicies(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, rounding.Catalog())
}
