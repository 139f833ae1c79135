package analytics

import (
	"strconv"

	anasvc "portfolio-backend/internal/application/analytics"
	propsvc "portfolio-backend/internal/application/properties"
	txhandler "portfolio-backend/internal/interfaces/handlers/transactions"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/pkg/response"
	"portfolio-backend/internal/scoring"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Handlers runs analyses for the session user's organisation. SaveAnalyses
// stores a summary of every run unless the request passes save=false.
type Handlers struct {
	Service         *anasvc.Service
	DefaultStrategy string
	SaveAnalyses    bool
}

var statuses = response.StatusMap{
	propsvc.ErrOrgRequired:     fiber.StatusForbidden,
	scoring.ErrUnknownStrategy: fiber.StatusBadRequest,
	scoring.ErrInvalidWeights:  fiber.StatusBadRequest,
	anasvc.ErrInvalidRecord:    fiber.StatusBadRequest,
}

func (h *Handlers) shouldSave(c *fiber.Ctx) bool {
	if v, err := strconv.ParseBool(c.Query("save")); err == nil {
		return v
	}
	return h.SaveAnalyses
}

func (h *Handlers) strategy(s string) scoring.Strategy {
	if s == "" {
		s = h.DefaultStrategy
	}
	return scoring.Strategy(s)
}

// respond sends result and, when asked to, stores its summary. A failed save
// is logged but does not fail the request.
func (h *Handlers) respond(c *fiber.Ctx, orgID uuid.UUID, message string, result interface{}) error {
	meta := fiber.Map{"saved": false}
	if h.shouldSave(c) {
		row, err := h.Service.SaveSummary(c.UserContext(), orgID, middleware.ActorUserID(c), result)
		if err != nil {
			log.Warn().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("analysis summary not saved")
		} else {
			meta = fiber.Map{"saved": true, "analysis_id": row.AnalysisID}
		}
	}
	return response.Success(c, message, result, meta)
}

// POST /api/v1/analytics/portfolio
func (h *Handlers) ScorePortfolio(c *fiber.Ctx) error {
	orgID, ok := middleware.ActorOrgID(c)
	if !ok {
		return response.Error(c, propsvc.ErrOrgRequired.Error(), fiber.StatusForbidden, nil)
	}
	var body anasvc.PortfolioRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	props, err := anasvc.ConvertProperties(body.Properties)
	if err != nil {
		return response.FromError(c, err, statuses)
	}
	opts := body.Options()
	opts.Strategy = h.strategy(body.Strategy)
	result, err := h.Service.ScoreProperties(props, opts)
	if err != nil {
		return response.FromError(c, err, statuses)
	}
	return h.respond(c, orgID, "Portfolio analysed successfully", result)
}

// GET /api/v1/analytics/portfolio?strategy=&enhanced=&save=
func (h *Handlers) AnalyzePortfolio(c *fiber.Ctx) error {
	orgID, ok := middleware.ActorOrgID(c)
	if !ok {
		return response.Error(c, propsvc.ErrOrgRequired.Error(), fiber.StatusForbidden, nil)
	}
	opts := scoring.AnalysisOptions{
		Strategy: h.strategy(c.Query("strategy")),
		Enhanced: c.QueryBool("enhanced", false),
	}
	result, err := h.Service.AnalyzePortfolio(c.UserContext(), orgID, opts)
	if err != nil {
		return response.FromError(c, err, statuses)
	}
	return h.respond(c, orgID, "Portfolio analysed successfully", result)
}

// POST /api/v1/analytics/reconcile
func (h *Handlers) ReconcileRecords(c *fiber.Ctx) error {
	orgID, ok := middleware.ActorOrgID(c)
	if !ok {
		return response.Error(c, propsvc.ErrOrgRequired.Error(), fiber.StatusForbidden, nil)
	}
	var body anasvc.ReconcileRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	txs, err := anasvc.ConvertTransactions(body.Transactions)
	if err != nil {
		return response.FromError(c, err, statuses)
	}
	leases, err := anasvc.ConvertLeases(body.Leases)
	if err != nil {
		return response.FromError(c, err, statuses)
	}
	return h.respond(c, orgID, "Transactions reconciled successfully", h.Service.Reconcile(txs, leases))
}

// GET /api/v1/analytics/reconcile?property_id=&from=&to=
func (h *Handlers) ReconcileStored(c *fiber.Ctx) error {
	orgID, ok := middleware.ActorOrgID(c)
	if !ok {
		return response.Error(c, propsvc.ErrOrgRequired.Error(), fiber.StatusForbidden, nil)
	}
	f, err := txhandler.ParseListFilter(c)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	result, err := h.Service.ReconcileStored(c.UserContext(), orgID, f)
	if err != nil {
		return response.FromError(c, err, statuses)
	}
	return h.respond(c, orgID, "Transactions reconciled successfully", result)
}

// GET /api/v1/analytics/forecast
func (h *Handlers) Forecast(c *fiber.Ctx) error {
	orgID, ok := middleware.ActorOrgID(c)
	if !ok {
		return response.Error(c, propsvc.ErrOrgRequired.Error(), fiber.StatusForbidden, nil)
	}
	result, err := h.Service.Forecast(c.UserContext(), orgID)
	if err != nil {
		return response.FromError(c, err, statuses)
	}
	return h.respond(c, orgID, "Forecast generated successfully", result)
}

// GET /api/v1/analytics/occupancy
func (h *Handlers) Occupancy(c *fiber.Ctx) error {
	orgID, ok := middleware.ActorOrgID(c)
	if !ok {
		return response.Error(c, propsvc.ErrOrgRequired.Error(), fiber.StatusForbidden, nil)
	}
	result, err := h.Service.Occupancy(c.UserContext(), orgID)
	if err != nil {
		return response.FromError(c, err, statuses)
	}
	return h.respond(c, orgID, "Occupancy analysed successfully", result)
}

// GET /api/v1/analytics/lease-risk
func (h *Handlers) LeaseRisk(c *fiber.Ctx) error {
	orgID, ok := middleware.ActorOrgID(c)
	if !ok {
		return response.Error(c, propsvc.ErrOrgRequired.Error(), fiber.StatusForbidden, nil)
	}
	result, err := h.Service.LeaseRisk(c.UserContext(), orgID)
	if err != nil {
		return response.FromError(c, err, statuses)
	}
	return h.respond(c, orgID, "Lease risk scored successfully", result)
}

// GET /api/v1/analytics/history?kind=&limit=
func (h *Handlers) History(c *fiber.Ctx) error {
	orgID, ok := middleware.ActorOrgID(c)
	if !ok {
		return response.Error(c, propsvc.ErrOrgRequired.Error(), fiber.StatusForbidden, nil)
	}
	rows, err := h.Service.History(c.UserContext(), orgID, c.Query("kind"), c.QueryInt("limit", 0))
	if err != nil {
		return response.FromError(c, err, statuses)
	}
	return response.Success(c, "Analysis history fetched successfully", rows, fiber.Map{"count": len(rows)})
}
