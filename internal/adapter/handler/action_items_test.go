package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/johnquangdev/meeting-actions/errors"
	"github.com/johnquangdev/meeting-actions/internal/domain/entities"
	"github.com/johnquangdev/meeting-actions/internal/usecase/actionitems"
	"github.com/johnquangdev/meeting-actions/pkg/config"
	"github.com/johnquangdev/meeting-actions/pkg/datetime"
	"github.com/johnquangdev/meeting-actions/pkg/metrics"
	"github.com/johnquangdev/meeting-actions/pkg/nlp"
	pkgvalidator "github.com/johnquangdev/meeting-actions/pkg/validator"
)

type fakeService struct {
	got  actionitems.ExtractRequest
	out  *actionitems.Extraction
	err  error
	caps map[string]nlp.State
}

func (f *fakeService) Extract(_ context.Context, req actionitems.ExtractRequest) (*actionitems.Extraction, error) {
	f.got = req
	return f.out, f.err
}

func (f *fakeService) Warmup(context.Context) {}

func (f *fakeService) Capabilities() map[string]nlp.State { return f.caps }

func newTestServer(svc actionitems.Service) *echo.Echo {
	e := echo.New()
	e.Validator = pkgvalidator.New()
	cfg := &config.Config{Server: config.ServerConfig{Environment: "test"}}
	NewRouter(cfg, svc, NewActionItemsHandler(svc, nil), metrics.NewManager()).Setup(e)
	return e
}

func post(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/action-items/extract", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Info    string          `json:"info"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestExtract_Success(t *testing.T) {
	item, _ := entities.NewActionItem("send the report", "Bob will send the report.")
	item.WithAssignee("Bob Smith")

	svc := &fakeService{out: &actionitems.Extraction{
		Strategy: actionitems.StrategyKeyword,
		Items:    []entities.ActionItem{*item},
	}}
	e := newTestServer(svc)

	rec := post(e, `{"text":"Bob will send the report.","participants":["Bob Smith"],"strategy":"keyword"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decode(t, rec)
	assert.Equal(t, 200, env.Code)
	assert.Equal(t, "success", env.Message)
	assert.JSONEq(t, `{
		"strategy": "keyword",
		"count": 1,
		"cached": false,
		"items": [{"task":"send the report","assignee":"Bob Smith","deadline":null,"context":"Bob will send the report."}]
	}`, string(env.Data))

	assert.Equal(t, actionitems.ExtractRequest{
		Text:         "Bob will send the report.",
		Participants: []string{"Bob Smith"},
		Strategy:     actionitems.StrategyKeyword,
	}, svc.got)
}

func TestExtract_DefaultsToAuto(t *testing.T) {
	svc := &fakeService{out: &actionitems.Extraction{Strategy: actionitems.StrategyKeyword}}
	rec := post(newTestServer(svc), `{"text":""}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, actionitems.StrategyAuto, svc.got.Strategy)
	assert.JSONEq(t, `{"strategy":"keyword","count":0,"cached":false,"items":[]}`, string(decode(t, rec).Data))
}

func TestExtract_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		code apperrors.ErrorCode
	}{
		{name: "malformed json", body: `{"text":`, code: apperrors.ErrorCode_INVALID_PAYLOAD},
		{name: "wrong type", body: `{"text": 42}`, code: apperrors.ErrorCode_INVALID_PAYLOAD},
		{name: "unknown strategy", body: `{"text":"x","strategy":"magic"}`, code: apperrors.ErrorCode_INVALID_ARGUMENT},
		{name: "blank participant", body: `{"text":"x","participants":["Bob"," "]}`, code: apperrors.ErrorCode_INVALID_ARGUMENT},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			rec := post(newTestServer(svc), tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, int(tt.code), decode(t, rec).Code)
			assert.Empty(t, svc.got.Text)
		})
	}
}

func TestExtract_ServiceError(t *testing.T) {
	svc := &fakeService{err: errors.New("boom")}
	rec := post(newTestServer(svc), `{"text":"Bob will call."}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, int(apperrors.ErrorCode_EXTRACTION_FAILED), env.Code)
	assert.Equal(t, "boom", env.Info)
}

func TestHealth(t *testing.T) {
	svc := &fakeService{caps: map[string]nlp.State{"ner": nlp.StateReady, "parser": nlp.StateDisabled}}
	e := newTestServer(svc)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","environment":"test","capabilities":{"ner":"ready","parser":"disabled"}}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	e := newTestServer(&fakeService{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "# HELP")
}

// End to end through the real service with every capability disabled
func TestExtract_RealService(t *testing.T) {
	svc := actionitems.NewService(nil, nil, datetime.NewNaturalParser(nil, nil), nil, nil, actionitems.Config{}, nil)
	rec := post(newTestServer(svc), `{"text":"Action: Alice to prepare the slides by Friday. Nice work."}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Strategy string `json:"strategy"`
		Items    []struct {
			Task     string  `json:"task"`
			Assignee *string `json:"assignee"`
			Deadline *string `json:"deadline"`
			Context  string  `json:"context"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &data))

	assert.Equal(t, "keyword", data.Strategy)
	require.Len(t, data.Items, 1)
	assert.Equal(t, "Alice to prepare the slides by Friday.", data.Items[0].Task)
	require.NotNil(t, data.Items[0].Assignee)
	assert.Equal(t, "Alice", *data.Items[0].Assignee)
	assert.NotNil(t, data.Items[0].Deadline)
	assert.Equal(t, "Action: Alice to prepare the slides by Friday.", data.Items[0].Context)
}

func TestHandleError_PlainErrorIsInternal(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, HandleError(nil, c, errors.New("disk on fire")))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, int(apperrors.ErrorCode_INTERNAL), env.Code)
	assert.Equal(t, "Internal server error", env.Message)
	assert.Equal(t, "disk on fire", env.Info)
}

func TestHandleSuccess_Envelope(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, HandleSuccess(nil, c, map[string]int{"count": 1}))

	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, int(apperrors.ErrorCode_HTTP_OK), env.Code)
	assert.Equal(t, "success", env.Message)
	assert.JSONEq(t, `{"count":1}`, string(env.Data))
}

func TestUnknownRoute(t *testing.T) {
	e := newTestServer(&fakeService{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/nope", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, int(apperrors.ErrorCode_NOT_FOUND), env.Code)
	assert.Equal(t, "route /v1/nope not found", env.Message)
}

func TestWrongMethodKeepsEchoDefault(t *testing.T) {
	e := newTestServer(&fakeService{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/action-items/extract", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
