package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"trapzone/internal/app/game"
	"trapzone/internal/app/ports"
	"trapzone/internal/app/replay"
	"trapzone/internal/app/status"
	"trapzone/internal/domain/hunting"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	GameUC    game.UseCase
	StatusUC  status.UseCase
	ReplayUC  replay.UseCase
	Scenarios ports.ScenarioProvider
	KPI       kpiSnapshotProvider

	// AllowOrigin is sent as Access-Control-Allow-Origin; empty means "*".
	AllowOrigin string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(h.AllowOrigin))

	api := s.Group("/api")
	api.GET("/catalog", h.catalog)
	api.GET("/scenarios", h.scenarios)
	api.POST("/sessions", h.start)

	sessions := api.Group("/sessions/:id")
	sessions.GET("", h.status)
	sessions.GET("/replay", h.replay)
	sessions.POST("/purchase", h.purchase)
	sessions.POST("/deploy", h.deploy)
	sessions.POST("/advance", h.advance)
	sessions.POST("/fire", h.fire)
	sessions.POST("/pause", h.pause)
	sessions.POST("/resume", h.resume)

	s.GET("/ops/kpi", h.kpi)
}

type startRequest struct {
	Seed     *int64 `json:"seed,omitempty"`
	Scenario string `json:"scenario,omitempty"`
}

type purchaseRequest struct {
	TrapKind string `json:"trap_kind"`
}

type deployRequest struct {
	TrapKind string `json:"trap_kind"`
	Zone     string `json:"zone"`
}

type advanceRequest struct {
	Seconds float64 `json:"seconds"`
}

type fireRequest struct {
	Process string `json:"process"`
}

type catalogResponse struct {
	Animals      []hunting.AnimalKind `json:"animals"`
	Traps        []hunting.TrapKind   `json:"traps"`
	Zones        []hunting.ZoneSpec   `json:"zones"`
	StartMoney   int                  `json:"start_money"`
	GoalBalance  int                  `json:"goal_balance"`
	TaxMin       int                  `json:"tax_min"`
	TaxMax       int                  `json:"tax_max"`
	TaxSeconds   float64              `json:"tax_seconds"`
	HuntSeconds  float64              `json:"hunt_seconds"`
	SpawnSeconds float64              `json:"spawn_seconds"`
}

func (h Handler) start(c context.Context, ctx *app.RequestContext) {
	var body startRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.GameUC.Start(c, game.StartRequest{Seed: body.Seed, Scenario: body.Scenario})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) purchase(c context.Context, ctx *app.RequestContext) {
	var body purchaseRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.GameUC.Purchase(c, game.PurchaseRequest{SessionID: ctx.Param("id"), TrapKind: body.TrapKind})
	h.respond(ctx, resp, err)
}

func (h Handler) deploy(c context.Context, ctx *app.RequestContext) {
	var body deployRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.GameUC.Deploy(c, game.DeployRequest{SessionID: ctx.Param("id"), TrapKind: body.TrapKind, Zone: body.Zone})
	h.respond(ctx, resp, err)
}

func (h Handler) advance(c context.Context, ctx *app.RequestContext) {
	var body advanceRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.GameUC.Advance(c, game.AdvanceRequest{SessionID: ctx.Param("id"), Seconds: body.Seconds})
	h.respond(ctx, resp, err)
}

func (h Handler) fire(c context.Context, ctx *app.RequestContext) {
	var body fireRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.GameUC.Fire(c, game.FireRequest{SessionID: ctx.Param("id"), Process: body.Process})
	h.respond(ctx, resp, err)
}

func (h Handler) pause(c context.Context, ctx *app.RequestContext) {
	resp, err := h.GameUC.Pause(c, game.SessionRequest{SessionID: ctx.Param("id")})
	h.respond(ctx, resp, err)
}

func (h Handler) resume(c context.Context, ctx *app.RequestContext) {
	resp, err := h.GameUC.Resume(c, game.SessionRequest{SessionID: ctx.Param("id")})
	h.respond(ctx, resp, err)
}

func (h Handler) respond(ctx *app.RequestContext, resp game.Response, err error) {
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.Execute(c, status.Request{SessionID: ctx.Param("id")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	limit := 0
	if raw := strings.TrimSpace(ctx.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "limit must be an integer")
			return
		}
		limit = n
	}
	var types []string
	ctx.QueryArgs().VisitAll(func(key, value []byte) {
		if string(key) != "type" {
			return
		}
		for _, t := range strings.Split(string(value), ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
	})
	resp, err := h.ReplayUC.Execute(c, replay.Request{SessionID: ctx.Param("id"), Limit: limit, Types: types})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) catalog(_ context.Context, ctx *app.RequestContext) {
	cfg := h.GameUC.Config
	ctx.JSON(consts.StatusOK, catalogResponse{
		Animals:      cfg.Catalog.Animals,
		Traps:        cfg.Catalog.Traps,
		Zones:        cfg.Zones,
		StartMoney:   cfg.StartMoney,
		GoalBalance:  cfg.GoalBalance,
		TaxMin:       cfg.TaxMin,
		TaxMax:       cfg.TaxMax,
		TaxSeconds:   cfg.Timers.Tax.Seconds(),
		HuntSeconds:  cfg.Timers.Hunt.Seconds(),
		SpawnSeconds: cfg.Timers.Spawn.Seconds(),
	})
}

func (h Handler) scenarios(c context.Context, ctx *app.RequestContext) {
	if h.Scenarios == nil {
		ctx.JSON(consts.StatusOK, map[string]any{"scenarios": []string{}})
		return
	}
	names, err := h.Scenarios.List(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"scenarios": names})
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	var kindErr *hunting.InvalidKindError
	switch {
	case errors.As(err, &kindErr):
		details := map[string]any{"category": kindErr.Category, "id": kindErr.ID}
		if kindErr.Suggestion != "" {
			details["suggestion"] = kindErr.Suggestion
		}
		writeErrorDetails(ctx, consts.StatusBadRequest, "invalid_kind", err.Error(), details)
	case errors.Is(err, hunting.ErrInvalidZone):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_zone", err.Error())
	case errors.Is(err, hunting.ErrUnknownProcess):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_process", err.Error())
	case errors.Is(err, hunting.ErrInvalidConfig):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_config", err.Error())
	case errors.Is(err, hunting.ErrInsufficientFunds):
		writeErrorBody(ctx, consts.StatusConflict, "insufficient_funds", err.Error())
	case errors.Is(err, hunting.ErrNoneOwned):
		writeErrorBody(ctx, consts.StatusConflict, "none_owned", err.Error())
	case errors.Is(err, hunting.ErrSessionOver):
		writeErrorBody(ctx, consts.StatusConflict, "session_over", err.Error())
	case errors.Is(err, game.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func writeErrorDetails(ctx *app.RequestContext, status int, code, message string, details map[string]any) {
	ctx.JSON(status, map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
