package handler

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"injury-estimator/internal/analytics"
	"injury-estimator/internal/engine"
	"injury-estimator/internal/factors"
	"injury-estimator/internal/format"
	"injury-estimator/internal/logger"
	"injury-estimator/internal/model"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()
	reg, err := factors.Default()
	require.NoError(t, err)
	f, err := format.New("en-US", "USD")
	require.NoError(t, err)
	log := logger.NewTest(t)
	return New(engine.New(reg, f, log, false), analytics.NewTracker(reg, log), log, true)
}

func do(h *Handler, method, uri, body string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	if body != "" {
		req.SetBodyString(body)
	}
	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	h.Handle(ctx)
	return ctx
}

func TestEstimate(t *testing.T) {
	h := newHandler(t)

	ctx := do(h, fasthttp.MethodPost, "/api/v1/estimates", `{
		"case_type": "construction",
		"fields": {
			"age": "28", "annualIncome": "60000", "medicalExpenses": "10000",
			"timeOffWork": "8", "severity": "serious", "accidentType": "crane-accident",
			"oshaViolations": "yes", "painLevel": "6", "liabilityStrength": "8"
		}
	}`)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))

	var resp model.EstimateResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, model.OutcomeSuccess, resp.CalculationMetadata.CalculationOutcome)
	require.NotNil(t, resp.Display)
	assert.Equal(t, "$519,520", resp.Display.Total)
	assert.Equal(t, "$363,664 - $675,376", resp.Display.Range)
}

func TestEstimateUnknownCaseTypeIsDomainFailure(t *testing.T) {
	h := newHandler(t)

	ctx := do(h, fasthttp.MethodPost, "/api/v1/estimates", `{"case_type":"dog_bite","fields":{}}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp model.EstimateResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, model.OutcomeFailure, resp.CalculationMetadata.CalculationOutcome)
}

func TestBadRequests(t *testing.T) {
	h := newHandler(t)

	tests := []struct {
		name   string
		method string
		uri    string
		body   string
		status int
	}{
		{"malformed json", fasthttp.MethodPost, "/api/v1/estimates", `{"case_type":`, fasthttp.StatusBadRequest},
		{"missing case type", fasthttp.MethodPost, "/api/v1/estimates", `{"fields":{}}`, fasthttp.StatusBadRequest},
		{"compare missing case type", fasthttp.MethodPost, "/api/v1/estimates/compare", `{}`, fasthttp.StatusBadRequest},
		{"wrong method", fasthttp.MethodGet, "/api/v1/estimates", "", fasthttp.StatusMethodNotAllowed},
		{"unknown path", fasthttp.MethodGet, "/api/v2/estimates", "", fasthttp.StatusNotFound},
		{"unknown schema", fasthttp.MethodGet, "/api/v1/case-types/dog_bite/schema", "", fasthttp.StatusNotFound},
		{"invalid event", fasthttp.MethodPost, "/api/v1/events", `{"calculator_type":"maritime","action":"clicked"}`, fasthttp.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := do(h, tt.method, tt.uri, tt.body)
			assert.Equal(t, tt.status, ctx.Response.StatusCode())

			var er model.ErrorResponse
			require.NoError(t, json.Unmarshal(ctx.Response.Body(), &er))
			assert.Equal(t, tt.status, er.Status)
			assert.NotEmpty(t, er.Message)
		})
	}
}

func TestCompare(t *testing.T) {
	h := newHandler(t)

	ctx := do(h, fasthttp.MethodPost, "/api/v1/estimates/compare", `{
		"case_type": "rideshare",
		"baseline": {"medical_expenses": 5000, "liability_strength": 5},
		"variant":  {"medical_expenses": 5000, "liability_strength": 9}
	}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp model.CompareResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.NotEmpty(t, resp.Changes)
}

func TestCaseTypesAndSchema(t *testing.T) {
	h := newHandler(t)

	ctx := do(h, fasthttp.MethodGet, "/api/v1/case-types", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var list []model.CaseTypeSummary
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &list))
	assert.Len(t, list, 6)

	ctx = do(h, fasthttp.MethodGet, "/api/v1/case-types/wrongful-death/schema", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &schema))
	assert.Equal(t, "object", schema["type"])
	props, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, props, "funeral_costs")
}

func TestEventAccepted(t *testing.T) {
	h := newHandler(t)

	ctx := do(h, fasthttp.MethodPost, "/api/v1/events", `{"calculator_type":"maritime","step":1,"action":"started"}`)
	require.Equal(t, fasthttp.StatusAccepted, ctx.Response.StatusCode())

	var receipt model.EventReceipt
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &receipt))
	assert.True(t, receipt.Accepted)
	assert.NotEmpty(t, receipt.SessionID)
}

func TestHealthAndMetrics(t *testing.T) {
	h := newHandler(t)

	ctx := do(h, fasthttp.MethodGet, "/healthz", "")
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	ctx = do(h, fasthttp.MethodGet, "/metrics", "")
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "go_goroutines")

	reg, err := factors.Default()
	require.NoError(t, err)
	f, err := format.New("en-US", "USD")
	require.NoError(t, err)
	noMetrics := New(engine.New(reg, f, logger.Nop(), false), analytics.NewTracker(reg, logger.Nop()), logger.Nop(), false)
	ctx = do(noMetrics, fasthttp.MethodGet, "/metrics", "")
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}
