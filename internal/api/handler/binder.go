package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// StrictBinder decodes JSON bodies rejecting unknown fields, so a payload
// cannot smuggle extra keys past the schema (e.g. "status" or "user" on a
// creation request is a 400, not a silently dropped field). Non-JSON
// requests fall through to Echo's default binder.
type StrictBinder struct {
	fallback echo.DefaultBinder
}

// Bind satisfies the echo.Binder interface.
func (b *StrictBinder) Bind(i any, c echo.Context) error {
	req := c.Request()
	ctype := req.Header.Get(echo.HeaderContentType)
	if req.ContentLength != 0 && strings.HasPrefix(ctype, echo.MIMEApplicationJSON) {
		dec := json.NewDecoder(req.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(i); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
		}
		return nil
	}
	return b.fallback.Bind(i, c)
}
