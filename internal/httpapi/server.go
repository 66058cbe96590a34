package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"nutriplan/internal/importer"
	"nutriplan/internal/metrics"
	"nutriplan/internal/planner"
	"nutriplan/internal/profile"
	"nutriplan/internal/recipe"
	"nutriplan/internal/shopping"
	"nutriplan/internal/storage"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Server wires the HTTP surface over the planning engine and its stores.
type Server struct {
	profiles  *profile.Repository
	recipes   *recipe.Repository
	plans     *planner.PlanRepository
	shopLists *shopping.Repository
	corpus    *recipe.Corpus
	cache     *storage.PlanCache
	metrics   *metrics.Store
	importer  *importer.Importer

	jwtSecret []byte
	dataPath  string
	log       *zap.Logger
}

// Options carries the collaborators a Server needs. Importer and Metrics may
// be nil; the matching endpoints degrade gracefully.
type Options struct {
	Profiles  *profile.Repository
	Recipes   *recipe.Repository
	Plans     *planner.PlanRepository
	ShopLists *shopping.Repository
	Corpus    *recipe.Corpus
	Cache     *storage.PlanCache
	Metrics   *metrics.Store
	Importer  *importer.Importer
	JWTSecret string
	DataPath  string
	Logger    *zap.Logger
}

// NewServer creates the API server.
func NewServer(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		profiles:  opts.Profiles,
		recipes:   opts.Recipes,
		plans:     opts.Plans,
		shopLists: opts.ShopLists,
		corpus:    opts.Corpus,
		cache:     opts.Cache,
		metrics:   opts.Metrics,
		importer:  opts.Importer,
		jwtSecret: []byte(opts.JWTSecret),
		dataPath:  opts.DataPath,
		log:       log,
	}
}

// Router builds the chi router with middleware and all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/profile", s.handleGetProfile)
		r.Post("/profile", s.handleUpsertProfile)

		r.Route("/plan", func(r chi.Router) {
			r.Post("/generate", s.handleGeneratePlan)
			r.Get("/", s.handleGetPlan)
			r.Post("/swap", s.handleSwapMeal)
			r.Get("/shopping-list", s.handleShoppingList)
			r.Get("/cost", s.handleCostEstimate)
		})

		r.Post("/recipes/import", s.handleImportRecipe)
	})

	return r
}

// workingCorpus is the embedded seed plus whatever has been imported into
// the recipe repository.
func (s *Server) workingCorpus(ctx context.Context) *recipe.Corpus {
	stored, err := s.recipes.ListAll(ctx)
	if err != nil {
		s.log.Warn("falling back to seed corpus", zap.Error(err))
		return s.corpus
	}
	return s.corpus.Merge(stored)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
