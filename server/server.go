package server

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"vgshop/listingresolver/internal/resolver"
	"vgshop/listingresolver/logger"
	"vgshop/listingresolver/services/publisher"
)

// ListingResolver is the resolution operation the server exposes
type ListingResolver interface {
	Resolve(ctx context.Context, rawInput string) (*resolver.Outcome, error)
}

// Server is the thin HTTP boundary in front of the resolver. Handlers carry
// no business logic beyond error mapping.
type Server struct {
	echo     *echo.Echo
	resolver ListingResolver
	pub      publisher.Publisher
	log      *logger.Logger
}

// requestValidator adapts go-playground/validator to echo
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// NewServer creates the HTTP server and wires its routes
func NewServer(res ListingResolver, pub publisher.Publisher) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &requestValidator{validate: validator.New()}
	e.Use(middleware.Recover())

	s := &Server{
		echo:     e,
		resolver: res,
		pub:      pub,
		log:      logger.ForServer(),
	}

	e.GET("/health", s.healthHandler)

	grp := e.Group("/api/v1")
	{
		grp.POST("/resolve", s.resolveHandler)
	}

	return s
}

// Start begins serving on addr and blocks until the server stops
func (s *Server) Start(addr string) error {
	s.log.Info().Str("addr", addr).Msg("Starting HTTP server")
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the underlying echo instance for tests
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
