package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"cameo/pkg/flight"
	"cameo/pkg/wiki"
)

type portraitResp struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	Found    bool   `json:"found"`
}

// newPortraitCache caches misses as "" so unknown names are not re-fetched
// until the entry expires. Transport failures are not cached.
func newPortraitCache(p Portraits, ttl time.Duration) *flight.Cache[string, string] {
	if p == nil {
		return nil
	}
	c := flight.NewCache(func(ctx context.Context, name string) (string, error) {
		src, err := p.Portrait(ctx, name)
		if errors.Is(err, wiki.ErrNoPortrait) {
			return "", nil
		}
		return src, err
	})
	c.Expiry(ttl)
	return c
}

// GET /api/portrait?name=
func (s *Server) handleGetPortrait(c echo.Context) error {
	name := strings.TrimSpace(c.QueryParam("name"))
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	resp := portraitResp{Name: name, ImageURL: wiki.UnknownAvatar}
	if s.portraits == nil {
		return c.JSON(http.StatusOK, resp)
	}

	src, err := s.portraits.Get(c.Request().Context(), name)
	if err != nil {
		log.Warn("portrait lookup failed", "name", name, "error", err)
	}
	if src != "" {
		resp.ImageURL = src
		resp.Found = true
	}
	return c.JSON(http.StatusOK, resp)
}
