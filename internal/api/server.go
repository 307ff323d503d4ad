// Package api exposes the indicator collector over a local HTTP API.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgnsrekt/tv_indicators/internal/collector"
	"github.com/dgnsrekt/tv_indicators/internal/feed"
	"github.com/dgnsrekt/tv_indicators/internal/indicators"
)

// Service is the collector surface the API needs.
type Service interface {
	ListIndicators(ctx context.Context) ([]indicators.Record, error)
	AddIndicator(ctx context.Context, url string) (indicators.Record, error)
}

// NewServer builds the HTTP handler. broker may be nil to disable the
// websocket event feed.
func NewServer(svc Service, broker *feed.Broker) http.Handler {
	router := chi.NewMux()
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)

	cfg := huma.DefaultConfig("TV Indicators API", "1.0.0")
	cfg.DocsPath = ""
	api := humachi.New(router, cfg)

	router.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		if _, err := w.Write([]byte(docsHTML)); err != nil {
			slog.Debug("docs response write failed", "error", err)
		}
	})

	if broker != nil {
		router.Method(http.MethodGet, "/api/v1/events", feed.Handler(broker))
	}

	registerIndicatorHandlers(api, svc)
	registerHealthHandlers(api)

	return router
}

func registerIndicatorHandlers(api huma.API, svc Service) {
	type listOutput struct {
		Body struct {
			Indicators []indicators.Record `json:"indicators"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "list-indicators", Method: http.MethodGet, Path: "/api/v1/indicators", Summary: "List all collected indicators", Tags: []string{"Indicators"}},
		func(ctx context.Context, input *struct{}) (*listOutput, error) {
			records, err := svc.ListIndicators(ctx)
			if err != nil {
				return nil, mapErr(err)
			}
			out := &listOutput{}
			out.Body.Indicators = records
			return out, nil
		})

	type addOutput struct {
		Body indicators.Record
	}
	huma.Register(api, huma.Operation{OperationID: "add-indicator", Method: http.MethodPost, Path: "/api/v1/indicators", Summary: "Scrape a script page and append the indicator", Tags: []string{"Indicators"}},
		func(ctx context.Context, input *struct {
			Body struct {
				URL string `json:"url" required:"true" doc:"TradingView script page URL"`
			}
		}) (*addOutput, error) {
			rec, err := svc.AddIndicator(ctx, input.Body.URL)
			if err != nil {
				return nil, mapErr(err)
			}
			out := &addOutput{}
			out.Body = rec
			return out, nil
		})
}

func registerHealthHandlers(api huma.API) {
	type healthOutput struct {
		Body struct {
			Status string `json:"status"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "healthz", Method: http.MethodGet, Path: "/api/v1/healthz", Summary: "Liveness check", Tags: []string{"System"}},
		func(ctx context.Context, input *struct{}) (*healthOutput, error) {
			out := &healthOutput{}
			out.Body.Status = "ok"
			return out, nil
		})
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	var coded *collector.CodedError
	if errors.As(err, &coded) {
		switch coded.Code {
		case collector.CodeValidation, collector.CodeCanceled:
			return huma.Error400BadRequest(coded.Message)
		case collector.CodeScrapeTimeout:
			return huma.Error504GatewayTimeout(coded.Message)
		case collector.CodeBrowserUnavailable:
			return huma.Error502BadGateway(coded.Message)
		default:
			return huma.Error500InternalServerError(fmt.Sprintf("%s: %s", coded.Code, coded.Message))
		}
	}
	return huma.Error500InternalServerError(err.Error())
}
