package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gocache "github.com/patrickmn/go-cache"

	"github.com/arjun/lead-intel/internal/auth"
	"github.com/arjun/lead-intel/internal/db"
	"github.com/arjun/lead-intel/internal/leads"
	"github.com/arjun/lead-intel/internal/notify"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
	statsCacheTTL   = 60 * time.Second
)

type Server struct {
	Store       *db.Store
	Leads       *leads.Service
	AuthService *auth.Service
	Notifier    *notify.Dispatcher
	Echo        *echo.Echo
	DB          *pgxpool.Pool

	// Dashboard stats are recomputed on every poll; cache them briefly
	// per region so the aggregate queries don't dominate load.
	statsCache *gocache.Cache
}

func NewServer(pool *pgxpool.Pool) *Server {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// CORS: allow frontend origins from env or default to localhost
	allowedOrigins := []string{"http://localhost:5173"}
	if extra := os.Getenv("CORS_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				allowedOrigins = append(allowedOrigins, o)
			}
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	store := db.NewStore(pool)

	s := &Server{
		DB:          pool,
		Store:       store,
		Leads:       leads.NewService(store),
		AuthService: auth.NewService(pool),
		Notifier:    notify.NewDispatcherFromEnv(),
		Echo:        e,
		statsCache:  gocache.New(statsCacheTTL, 5*time.Minute),
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.Echo.Group("/api")
	api.GET("/health", s.handleHealth)

	api.GET("/leads", s.handleListLeads)
	api.GET("/leads/stats", s.handleLeadStats)
	api.GET("/leads/:id", s.handleGetLead)
	api.POST("/leads/notify", s.handleNotifyLeads)

	api.GET("/tenders", s.handleListTenders)
	api.GET("/tenders/stats", s.handleTenderStats)
	api.GET("/tenders/:id", s.handleGetTender)

	api.GET("/websites", s.handleListWebsites)
	api.GET("/websites/stats", s.handleWebsiteStats)
	api.GET("/websites/:id", s.handleGetWebsite)

	api.POST("/auth/signup", s.handleSignup)
	api.POST("/auth/login", s.handleLogin)

	me := api.Group("/auth")
	me.Use(auth.Middleware)
	me.GET("/me", s.handleCurrentUser)
}

// Response envelopes. Every endpoint answers {success: ...}; failures
// carry a stable generic message and never the underlying error.

type pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// positiveInt parses a query value as a positive integer, falling back
// to def for anything malformed. Pagination never 4xxes.
func positiveInt(raw string, def int) int {
	if v, err := strconv.Atoi(raw); err == nil && v > 0 {
		return v
	}
	return def
}

func (s *Server) pageParams(c echo.Context) (page, limit int) {
	page = positiveInt(c.QueryParam("page"), 1)
	limit = positiveInt(c.QueryParam("limit"), defaultPageSize)
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListLeads(c echo.Context) error {
	state := c.QueryParam("state")
	page, limit := s.pageParams(c)

	merged, err := s.Leads.Aggregate(c.Request().Context(), state)
	if err != nil {
		c.Logger().Errorf("Failed to aggregate leads: %v", err)
		return fail(c, http.StatusInternalServerError, "Error fetching leads")
	}

	result := leads.RankAndPage(merged, page, limit)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    result.Items,
		"pagination": pagination{
			Page:       result.Page,
			Limit:      result.PageSize,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	})
}

func (s *Server) handleLeadStats(c echo.Context) error {
	state := c.QueryParam("state")

	cacheKey := "leads:" + strings.ToLower(state)
	if cached, found := s.statsCache.Get(cacheKey); found {
		return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "stats": cached})
	}

	stats, err := s.Leads.Stats(c.Request().Context(), state)
	if err != nil {
		c.Logger().Errorf("Failed to compute lead stats: %v", err)
		return fail(c, http.StatusInternalServerError, "Error fetching dashboard stats")
	}

	s.statsCache.Set(cacheKey, stats, gocache.DefaultExpiration)
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "stats": stats})
}

func (s *Server) handleGetLead(c echo.Context) error {
	lead, err := s.Leads.Lookup(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, leads.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Lead not found")
		}
		c.Logger().Errorf("Failed to fetch lead: %v", err)
		return fail(c, http.StatusInternalServerError, "Error fetching lead")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "data": lead})
}

type notifyRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	State       string `json:"state"`
}

func (s *Server) handleNotifyLeads(c echo.Context) error {
	var req notifyRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	req.Email = strings.TrimSpace(req.Email)
	req.State = strings.TrimSpace(req.State)
	if req.State == "" || (req.PhoneNumber == "" && req.Email == "") {
		return fail(c, http.StatusBadRequest, "A recipient (phoneNumber or email) and state are required")
	}

	merged, err := s.Leads.Aggregate(c.Request().Context(), req.State)
	if err != nil {
		c.Logger().Errorf("Failed to aggregate leads for notification: %v", err)
		return fail(c, http.StatusInternalServerError, "Error sending notification")
	}
	if len(merged) == 0 {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "No leads found for notification",
		})
	}

	ranked := leads.Rank(merged)
	digest := leads.FormatDigest(ranked, req.State)
	subject := "New Leads Alert - " + req.State

	results := s.Notifier.SendDigest(c.Request().Context(), req.PhoneNumber, req.Email, subject, digest)

	delivered := false
	for _, r := range results {
		if r.Success {
			delivered = true
			break
		}
	}

	message := "Notification sent successfully"
	if !delivered {
		message = "Failed to send notification"
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": delivered,
		"message": message,
		"details": results,
	})
}

func (s *Server) handleListTenders(c echo.Context) error {
	filter := leads.CompileFilter(c.QueryParam("state"))
	page, limit := s.pageParams(c)

	tenders, total, err := s.Store.ListTenders(c.Request().Context(), filter, limit, (page-1)*limit)
	if err != nil {
		c.Logger().Errorf("Failed to list tenders: %v", err)
		return fail(c, http.StatusInternalServerError, "Error fetching tenders")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    tenders,
		"pagination": pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages(total, limit),
		},
	})
}

func (s *Server) handleTenderStats(c echo.Context) error {
	stats, err := s.Leads.TenderStats(c.Request().Context(), c.QueryParam("state"))
	if err != nil {
		c.Logger().Errorf("Failed to compute tender stats: %v", err)
		return fail(c, http.StatusInternalServerError, "Error fetching dashboard stats")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "stats": stats})
}

func (s *Server) handleGetTender(c echo.Context) error {
	tender, err := s.Store.TenderByLeadID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, leads.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Tender not found")
		}
		c.Logger().Errorf("Failed to fetch tender: %v", err)
		return fail(c, http.StatusInternalServerError, "Error fetching tender")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "data": tender})
}

func (s *Server) handleListWebsites(c echo.Context) error {
	filter := leads.CompileFilter(c.QueryParam("state"))
	page, limit := s.pageParams(c)

	websites, total, err := s.Store.ListWebsites(c.Request().Context(), filter, limit, (page-1)*limit)
	if err != nil {
		c.Logger().Errorf("Failed to list websites: %v", err)
		return fail(c, http.StatusInternalServerError, "Error fetching companies")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    websites,
		"pagination": pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages(total, limit),
		},
	})
}

func (s *Server) handleWebsiteStats(c echo.Context) error {
	stats, err := s.Leads.WebsiteStats(c.Request().Context(), c.QueryParam("state"))
	if err != nil {
		c.Logger().Errorf("Failed to compute website stats: %v", err)
		return fail(c, http.StatusInternalServerError, "Error fetching dashboard stats")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "stats": stats})
}

func (s *Server) handleGetWebsite(c echo.Context) error {
	website, err := s.Store.WebsiteByCompanyID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, leads.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Company not found")
		}
		c.Logger().Errorf("Failed to fetch website: %v", err)
		return fail(c, http.StatusInternalServerError, "Error fetching company")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "data": website})
}

func (s *Server) handleSignup(c echo.Context) error {
	var req auth.SignupRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request")
	}

	resp, err := s.AuthService.Signup(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			return fail(c, http.StatusConflict, "User already exists")
		}
		c.Logger().Errorf("Signup failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Server error during signup")
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{"success": true, "token": resp.Token, "user": resp.User})
}

func (s *Server) handleLogin(c echo.Context) error {
	var req auth.LoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request")
	}

	resp, err := s.AuthService.Login(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCreds) {
			return fail(c, http.StatusUnauthorized, "Invalid credentials")
		}
		c.Logger().Errorf("Login failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Server error during login")
	}

	// Welcome message is best effort and must not hold up the login.
	if resp.User.Phone != "" {
		user := resp.User
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
			defer cancel()
			s.Notifier.SendLoginNotice(ctx, user.Phone, user.Name, user.State)
		}()
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "token": resp.Token, "user": resp.User})
}

func (s *Server) handleCurrentUser(c echo.Context) error {
	userID, err := auth.GetUserIDFromContext(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	user, err := s.AuthService.GetUser(c.Request().Context(), userID)
	if err != nil {
		return fail(c, http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "user": user})
}

func totalPages(total, limit int) int {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

func (s *Server) Start(port string) error {
	return s.Echo.Start(":" + port)
}
