package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gaurav-prasanna/reelpipe/core"
	"github.com/gaurav-prasanna/reelpipe/core/render"
)

// handleExtract serves POST /api/extract.
//
//	400  body undecodable or url missing or empty
//	200  {"error": ...} when the page has no recoverable video
//	200  the extraction result
//	500  fetch or parse failure; the cause is logged, never returned
func (s *Server) handleExtract(c echo.Context) error {
	var req core.ExtractionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, render.ErrorBody(core.MsgMissingURL))
	}
	url := req.URL
	if url == "" {
		return c.JSON(http.StatusBadRequest, render.ErrorBody(core.MsgMissingURL))
	}

	ctx := c.Request().Context()
	result, err := s.runner.Run(ctx, url)
	switch {
	case errors.Is(err, core.ErrVideoNotFound):
		return c.JSON(http.StatusOK, render.ErrorBody(core.MsgVideoMiss))
	case err != nil:
		zerolog.Ctx(ctx).Error().Err(err).Str("url", url).Msg("extraction failed")
		return c.JSON(http.StatusInternalServerError, render.ErrorBody(core.MsgServerError))
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
