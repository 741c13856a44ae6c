package router

import (
	"context"
	"database/sql"
	"net/http"

	mem "vaccination-card/internal/adapters/storage/memory"
	pg "vaccination-card/internal/adapters/storage/postgres"
	"vaccination-card/internal/domain/persons"
	"vaccination-card/internal/domain/vaccination"
	"vaccination-card/internal/domain/vaccines"
	"vaccination-card/internal/middleware"
	"vaccination-card/internal/platform/logger"
	"vaccination-card/internal/platform/metrics"
	"vaccination-card/internal/ports/auth"

	_ "vaccination-card/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger  logger.Logger
	Metrics *metrics.Metrics

	// Catalog se siembra al arrancar; las vacunas existentes se saltean.
	Catalog []vaccines.CreateInput
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		personRepo  persons.Repository
		vaccineRepo vaccines.Repository
		recordRepo  vaccination.Repository
		txRunner    vaccination.TxRunner
	)

	if opts.DB != nil {
		personRepo = pg.NewPersonsRepo(opts.DB)
		vaccineRepo = pg.NewVaccinesRepo(opts.DB)
		recordRepo = pg.NewRecordsRepo(opts.DB)
		txRunner = pg.NewTxRunner(opts.DB)
	} else {
		personRepo = mem.NewPersonRepo()
		vaccineRepo = mem.NewVaccineRepo()
		recordRepo = mem.NewRecordRepo()
		txRunner = mem.NewTxRunner()
	}

	// Services por módulo
	personsSvc := persons.NewService(personRepo,
		persons.WithLogger(log.With(logger.Fields{"module": "persons"})),
		persons.WithMetrics(m),
		persons.WithRecordsPurger(recordRepo),
		persons.WithTxRunner(txRunner),
	)
	vaccinesSvc := vaccines.NewService(vaccineRepo,
		vaccines.WithLogger(log.With(logger.Fields{"module": "vaccines"})),
		vaccines.WithMetrics(m),
		vaccines.WithUsageChecker(recordRepo),
	)
	cardSvc := vaccination.NewService(recordRepo, personsSvc, vaccinesSvc, txRunner,
		vaccination.WithLogger(log.With(logger.Fields{"module": "vaccination"})),
		vaccination.WithMetrics(m),
	)

	if len(opts.Catalog) > 0 {
		res, err := vaccinesSvc.Seed(context.Background(), opts.Catalog)
		if err != nil {
			log.Error("catalog seed failed", logger.Fields{"err": err})
		} else {
			log.Info("catalog seeded", logger.Fields{"created": res.Created, "skipped": res.Skipped})
		}
	}

	// Rutas por módulo, todas con usuario autenticado
	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.RequireUser)

		persons.RegisterRoutes(api, personsSvc, vaccination.Routes(cardSvc))
		vaccines.RegisterRoutes(api, vaccinesSvc)
	})

	return r
}
