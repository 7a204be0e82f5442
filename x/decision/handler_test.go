package decision

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/totegamma/routegate/core"
	"github.com/totegamma/routegate/x/cache"
	"github.com/totegamma/routegate/x/resolver"
	"github.com/totegamma/routegate/x/router"
)

func TestHandlerDecide(t *testing.T) {

	registry := router.NewRegistry()
	registry.Add(&core.Route{Path: "/a", Permissions: []any{"/a"}})

	defaults := core.NewDefaults()
	resolverService := resolver.NewService(registry, cache.NewRepository(), nil, defaults)
	handler := NewHandler(NewService(registry, resolverService, defaults))

	e := echo.New()

	decide := func(body string) (*httptest.ResponseRecorder, map[string]any) {
		req := httptest.NewRequest(http.MethodPost, "/decide", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Decide(c)
		assert.NoError(t, err)

		var response map[string]any
		err = json.Unmarshal(rec.Body.Bytes(), &response)
		assert.NoError(t, err)

		return rec, response
	}

	rec, response := decide(`{"query": "/a", "route": "/a"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"authorized": true}, response["content"])

	rec, response = decide(`{"query": "/c", "route": "/a"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"authorized": false}, response["content"])

	rec, _ = decide(`{"query": "/a", "route": "/nope"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
