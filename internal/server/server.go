package server

import (
	"context"
	"database/sql"
	"net"
	"net/http"
	"strconv"

	"github.com/handora-games/session-api/internal/config"
	"github.com/handora-games/session-api/internal/modules/analysis"
	"github.com/handora-games/session-api/internal/modules/core"
	"github.com/handora-games/session-api/internal/modules/session"
	sessioncommands "github.com/handora-games/session-api/internal/modules/session/commands"
	sessiondomain "github.com/handora-games/session-api/internal/modules/session/domain"
	sessionqueries "github.com/handora-games/session-api/internal/modules/session/queries"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/migrate-go"
	"github.com/go-chi/chi"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type Server interface {
	Start() error
	Stop() error
}

var _ Server = &HTTPServer{}

// HTTPServer acts as the composition root for the application.
type HTTPServer struct {
	server *http.Server
}

func NewHTTPServer(config config.Config) (Server, error) {
	baseCtx := context.Background()

	zap.ReplaceGlobals(config.Logger)

	db, err := sql.Open("postgres", config.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := migrate.Run(baseCtx, db, config.MigrationsPath); err != nil {
		return nil, err
	}

	requestLoggingBehavior := core.RequestLoggingBehavior{Logger: config.Logger}
	handlerErrorLoggingBehavior := core.HandlerErrorLoggingBehavior{Logger: config.Logger}
	requestValidationBehavior := core.RequestValidationBehavior{}

	mediator.RegisterPipelineBehavior(&requestLoggingBehavior)
	mediator.RegisterPipelineBehavior(&handlerErrorLoggingBehavior)
	mediator.RegisterPipelineBehavior(&requestValidationBehavior)

	store := session.NewPostgresStore(db)

	// handler registration

	// session lifecycle

	startSessionHandler := sessioncommands.NewStartSessionCommandHandler(store)
	err = mediator.RegisterRequestHandler[sessioncommands.StartSessionCommand, sessioncommands.StartSessionResponse](
		startSessionHandler,
	)
	if err != nil {
		return nil, err
	}

	setWarmupBaselineHandler := sessioncommands.NewSetWarmupBaselineCommandHandler(store)
	err = mediator.RegisterRequestHandler[sessioncommands.SetWarmupBaselineCommand, sessiondomain.Session](
		setWarmupBaselineHandler,
	)
	if err != nil {
		return nil, err
	}

	recordEventHandler := sessioncommands.NewRecordEventCommandHandler(store)
	err = mediator.RegisterRequestHandler[sessioncommands.RecordEventCommand, sessioncommands.RecordEventResponse](
		recordEventHandler,
	)
	if err != nil {
		return nil, err
	}

	finishSessionHandler := sessioncommands.NewFinishSessionCommandHandler(store)
	err = mediator.RegisterRequestHandler[sessioncommands.FinishSessionCommand, sessiondomain.Session](
		finishSessionHandler,
	)
	if err != nil {
		return nil, err
	}

	getSessionHandler := sessionqueries.NewGetSessionQueryHandler(store)
	err = mediator.RegisterRequestHandler[sessionqueries.GetSessionQuery, sessiondomain.Session](
		getSessionHandler,
	)
	if err != nil {
		return nil, err
	}

	getSessionWithHistoryHandler := sessionqueries.NewGetSessionWithHistoryQueryHandler(store)
	err = mediator.RegisterRequestHandler[sessionqueries.GetSessionWithHistoryQuery, sessionqueries.SessionWithHistory](
		getSessionWithHistoryHandler,
	)
	if err != nil {
		return nil, err
	}

	listSessionsHandler := sessionqueries.NewListSessionsQueryHandler(store)
	err = mediator.RegisterRequestHandler[sessionqueries.ListSessionsQuery, []sessiondomain.Session](
		listSessionsHandler,
	)
	if err != nil {
		return nil, err
	}

	// analysis

	completionClient := analysis.NewOpenAIClient(
		config.OpenAI.APIKey,
		config.OpenAI.BaseURL,
		config.OpenAI.Model,
	)

	analyzeHandler := analysis.NewAnalyzeCommandHandler(completionClient)
	err = mediator.RegisterRequestHandler[analysis.AnalyzeCommand, analysis.AnalyzeResponse](
		analyzeHandler,
	)
	if err != nil {
		return nil, err
	}

	// http

	router := NewRouter(config)

	server := http.Server{
		Addr:    net.JoinHostPort("", strconv.Itoa(config.Port)),
		Handler: router,
		BaseContext: func(net.Listener) context.Context {
			return baseCtx
		},
	}

	return &HTTPServer{server: &server}, nil
}

// NewRouter wires middleware and routes. Handlers resolve through
// the mediator, so registration has to happen before requests are
// served.
func NewRouter(config config.Config) chi.Router {
	router := chi.NewRouter()

	router.Use(core.CORSMiddleware(config.AllowedOrigins))
	router.Use(core.CorrelationIDMiddleware)
	router.Use(core.RequestLoggingMiddleware(config.Logger))

	router.Get("/", handleHealthcheck)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", sessionqueries.HandleListSessions)
			r.Post("/start", sessioncommands.HandleStartSession)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", sessionqueries.HandleGetSession)
				r.Get("/with-history", sessionqueries.HandleGetSessionWithHistory)
				r.Post("/warmup", sessioncommands.HandleSetWarmupBaseline)
				r.Post("/events", sessioncommands.HandleRecordEvent)
				r.Post("/finish", sessioncommands.HandleFinishSession)
			})
		})

		r.Post("/analytics/analyze", analysis.HandleAnalyze)
	})

	return router
}

func handleHealthcheck(w http.ResponseWriter, r *http.Request) {
	core.WriteOK(w, r, map[string]string{"status": "ok"})
}

func (s *HTTPServer) Start() error {
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *HTTPServer) Stop() error {
	return s.server.Close()
}
