// Command mockapi is a development stand-in for a json-server style resource
// API. It serves /users, /sessions, and /todos with collection query-param
// filtering and per-record GET/PATCH/DELETE, all in memory.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/colonyops/taskdeck/pkg/kv"
)

// record is a schemaless resource row, keyed by its "id" field.
type record map[string]any

// resource serves one collection with json-server semantics.
type resource struct {
	name string
	data *kv.Store[string, record]
}

func newResource(name string) *resource {
	return &resource{name: name, data: kv.New[string, record]()}
}

func (r *resource) register(e *echo.Echo) {
	base := "/" + r.name
	e.GET(base, r.list)
	e.POST(base, r.create)
	e.GET(base+"/:id", r.get)
	e.PATCH(base+"/:id", r.patch)
	e.DELETE(base+"/:id", r.remove)
}

// list returns the collection, filtered by equality on every query param.
func (r *resource) list(c echo.Context) error {
	params := c.QueryParams()
	matched := r.data.Filter(func(rec record) bool {
		for key, values := range params {
			if len(values) == 0 {
				continue
			}
			if fmt.Sprint(rec[key]) != values[0] {
				return false
			}
		}
		return true
	})
	return c.JSON(http.StatusOK, matched)
}

func (r *resource) create(c echo.Context) error {
	var rec record
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, _ := rec["id"].(string)
	if id == "" {
		id = uuid.NewString()
		rec["id"] = id
	}

	r.data.Set(id, rec)
	return c.JSON(http.StatusCreated, rec)
}

func (r *resource) get(c echo.Context) error {
	rec, ok := r.data.Get(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return c.JSON(http.StatusOK, rec)
}

func (r *resource) patch(c echo.Context) error {
	id := c.Param("id")
	rec, ok := r.data.Get(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}

	var changes record
	if err := c.Bind(&changes); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	for k, v := range changes {
		if k == "id" {
			continue
		}
		rec[k] = v
	}

	r.data.Set(id, rec)
	return c.JSON(http.StatusOK, rec)
}

func (r *resource) remove(c echo.Context) error {
	if !r.data.Delete(c.Param("id")) {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return c.JSON(http.StatusOK, record{})
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	addr := os.Getenv("MOCKAPI_ADDR")
	if addr == "" {
		addr = ":3001"
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Msg("request")
			return nil
		},
	}))

	for _, name := range []string{"users", "sessions", "todos"} {
		newResource(name).register(e)
	}

	log.Info().Str("addr", addr).Msg("mockapi listening")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
