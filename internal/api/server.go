package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/storehouse/internal/metrics"
	"github.com/Kerhoff/storehouse/internal/models"
	"github.com/Kerhoff/storehouse/internal/service"
)

// Options configures the HTTP surface
type Options struct {
	AllowedOrigin  string
	EnforceRoles   bool
	LoginRateLimit float64
	LoginRateBurst int
}

// Server provides the HTTP API.
type Server struct {
	svc     *service.Service
	logger  *logrus.Logger
	metrics *metrics.Metrics
	opts    Options
	limiter *loginLimiter
	router  chi.Router
}

// NewServer creates a Server, registers all routes, and returns it.
func NewServer(svc *service.Service, logger *logrus.Logger, m *metrics.Metrics, opts Options) *Server {
	s := &Server{
		svc:     svc,
		logger:  logger,
		metrics: m,
		opts:    opts,
		limiter: newLoginLimiter(opts.LoginRateLimit, opts.LoginRateBurst),
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// Handler returns the http.Handler that can be passed to http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

var (
	purchasers   = []models.Role{models.RoleCoordinator, models.RoleOnlineShopper, models.RolePhysicalShopper}
	rotaManagers = []models.Role{models.RoleCoordinator, models.RoleRotaManager}
	coordinators = []models.Role{models.RoleCoordinator}
)

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.StripSlashes)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(s.cors)

	r.Get("/", s.handleRoot)
	r.Get("/healthz", s.handleHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.With(s.limitLogins).Post("/login", s.handleLogin)
		r.With(s.authenticate).Get("/me", s.handleMe)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.listUsers())
			r.Get("/{id}", s.getUser())
			r.With(s.requireRole(coordinators...)).Put("/{id}", s.updateUser())
			r.With(s.requireRole(coordinators...)).Patch("/{id}", s.updateUser())
		})

		r.Route("/agencies", func(r chi.Router) {
			r.Post("/", s.createAgency())
			r.Get("/", s.listAgencies())
			r.Get("/{id}", s.getAgency())
			r.Put("/{id}", s.updateAgency())
			r.Patch("/{id}", s.updateAgency())
		})

		r.Route("/families", func(r chi.Router) {
			r.Post("/", s.createFamily())
			r.Get("/", s.listFamilies())
			r.Get("/{id}", s.getFamily())
			r.Put("/{id}", s.updateFamily())
			r.Patch("/{id}", s.updateFamily())
		})

		r.Route("/items", func(r chi.Router) {
			r.Post("/", s.createItem())
			r.Get("/", s.listItems())
			r.Get("/{id}", s.getItem())
			r.Put("/{id}", s.updateItem())
			r.Patch("/{id}", s.updateItem())
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Post("/", s.createInventory())
			r.Get("/", s.listInventory())
			r.Get("/{id}", s.getInventory())
			r.Put("/{id}", s.updateInventory())
			r.Patch("/{id}", s.updateInventory())
		})

		r.Route("/weekly-requirements", func(r chi.Router) {
			r.Post("/", s.createWeeklyRequirement())
			r.Get("/", s.listWeeklyRequirements())
			r.Get("/{id}", s.getWeeklyRequirement())
			r.Put("/{id}", s.updateWeeklyRequirement())
			r.Patch("/{id}", s.updateWeeklyRequirement())
		})

		r.Route("/packing-lists", func(r chi.Router) {
			r.Post("/", s.createPackingList())
			r.Get("/", s.listPackingLists())
			r.Get("/{id}", s.getPackingList())
			r.Put("/{id}", s.updatePackingList())
			r.Patch("/{id}", s.updatePackingList())
			r.Delete("/{id}", s.deletePackingList())
		})

		r.Route("/packing-list-items", func(r chi.Router) {
			r.Post("/", s.createPackingListItem())
			r.Get("/", s.listPackingListItems())
			r.Get("/{id}", s.getPackingListItem())
			r.Put("/{id}", s.updatePackingListItem())
			r.Patch("/{id}", s.updatePackingListItem())
			r.Delete("/{id}", s.deletePackingListItem())
		})

		r.Route("/packing-sessions", func(r chi.Router) {
			r.Post("/", s.createPackingSession())
			r.Get("/", s.listPackingSessions())
			r.Get("/{id}", s.getPackingSession())
			r.Put("/{id}", s.updatePackingSession())
			r.Patch("/{id}", s.updatePackingSession())
		})

		r.Route("/volunteer-assignments", func(r chi.Router) {
			r.Post("/", s.createVolunteerAssignment())
			r.Get("/", s.listVolunteerAssignments())
			r.Get("/{id}", s.getVolunteerAssignment())
			r.Put("/{id}", s.updateVolunteerAssignment())
			r.Patch("/{id}", s.updateVolunteerAssignment())
		})

		r.Route("/food-boxes", func(r chi.Router) {
			r.Post("/", s.createFoodBox())
			r.Get("/", s.listFoodBoxes())
			r.Get("/{id}", s.getFoodBox())
			r.Put("/{id}", s.updateFoodBox())
			r.Patch("/{id}", s.updateFoodBox())
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", s.listOrders())
			r.Get("/{id}", s.getOrder())

			r.Group(func(r chi.Router) {
				r.Use(s.requireRole(purchasers...))
				r.Post("/", s.createOrder())
				r.Put("/{id}", s.updateOrder())
				r.Patch("/{id}", s.updateOrder())
				r.Delete("/{id}", s.deleteOrder())
			})
		})

		r.Route("/order-items", func(r chi.Router) {
			r.Get("/", s.listOrderItems())
			r.Get("/{id}", s.getOrderItem())

			r.Group(func(r chi.Router) {
				r.Use(s.requireRole(purchasers...))
				r.Post("/", s.createOrderItem())
				r.Put("/{id}", s.updateOrderItem())
				r.Patch("/{id}", s.updateOrderItem())
				r.Delete("/{id}", s.deleteOrderItem())
			})
		})

		r.Route("/rotas", func(r chi.Router) {
			r.Get("/", s.listRotas())
			r.Get("/{id}", s.getRota())

			r.Group(func(r chi.Router) {
				r.Use(s.requireRole(rotaManagers...))
				r.Post("/", s.createRota())
				r.Put("/{id}", s.updateRota())
				r.Patch("/{id}", s.updateRota())
			})
		})

		r.Route("/rota-assignments", func(r chi.Router) {
			r.Get("/", s.listRotaAssignments())
			r.Get("/{id}", s.getRotaAssignment())

			r.Group(func(r chi.Router) {
				r.Use(s.requireRole(rotaManagers...))
				r.Post("/", s.createRotaAssignment())
				r.Put("/{id}", s.updateRotaAssignment())
				r.Patch("/{id}", s.updateRotaAssignment())
				r.Delete("/{id}", s.deleteRotaAssignment())
			})
		})

		r.Route("/communications", func(r chi.Router) {
			r.Get("/", s.listCommunications())
			r.Get("/{id}", s.getCommunication())

			r.Group(func(r chi.Router) {
				r.Use(s.requireRole(coordinators...))
				r.Post("/", s.createCommunication())
				r.Post("/{id}/send", s.handleSendCommunication)
			})
		})

		r.Route("/communication-templates", func(r chi.Router) {
			r.Get("/", s.listCommunicationTemplates())
			r.Get("/{id}", s.getCommunicationTemplate())

			r.Group(func(r chi.Router) {
				r.Use(s.requireRole(coordinators...))
				r.Post("/", s.createCommunicationTemplate())
				r.Put("/{id}", s.updateCommunicationTemplate())
				r.Patch("/{id}", s.updateCommunicationTemplate())
				r.Delete("/{id}", s.deleteCommunicationTemplate())
			})
		})
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, messageResponse{Message: "Storehouse Manager API"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
