package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"campuslife/internal/app/choice"
	"campuslife/internal/app/effects"
	"campuslife/internal/app/newgame"
	"campuslife/internal/app/observe"
	"campuslife/internal/app/ports"
	"campuslife/internal/app/quests"
	"campuslife/internal/app/replay"
	"campuslife/internal/app/snapshot"
	"campuslife/internal/app/turn"
	"campuslife/internal/domain/life"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const playerIDHeader = "X-Player-ID"

type Handler struct {
	NewGameUC  newgame.UseCase
	ObserveUC  observe.UseCase
	TurnUC     *turn.UseCase
	ChoiceUC   choice.UseCase
	EffectsUC  effects.UseCase
	QuestsUC   quests.UseCase
	SnapshotUC snapshot.UseCase
	ReplayUC   replay.UseCase
	CatalogUC  catalogProvider
	Guard      *turn.Guard
	Story      ports.StoryProvider
	KPI        kpiSnapshotProvider
}

type catalogProvider interface {
	Index(ctx context.Context) ([]byte, error)
	Catalog(ctx context.Context, name string) ([]byte, error)
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	game := s.Group("/api/game")
	game.POST("/new", h.newGame)
	game.POST("/reset", h.reset)
	game.POST("/observe", h.observe)
	game.POST("/turn", h.advanceTurn)
	game.POST("/choice", h.resolveChoice)
	game.POST("/effects", h.applyEffects)
	game.POST("/quest/advance", h.questAdvance)
	game.POST("/quest/complete", h.questComplete)
	game.POST("/quest/fail", h.questFail)
	game.POST("/save/export", h.saveExport)
	game.POST("/save/import", h.saveImport)
	game.POST("/force-unlock", h.forceUnlock)
	game.GET("/replay", h.replay)

	s.GET("/catalog/index.json", h.catalogIndex)
	s.GET("/catalog/:name", h.catalogByName)
	s.GET("/ops/kpi", h.kpi)
	s.GET("/ops/story", h.storyPing)
}

type newGameRequest struct {
	Name   string `json:"name"`
	Gender string `json:"gender"`
	Age    int    `json:"age"`
}

type choiceRequest struct {
	ChoiceID string `json:"choice_id"`
}

type effectsRequest struct {
	Effects []life.Effect `json:"effects"`
	Reason  string        `json:"reason,omitempty"`
}

type questRequest struct {
	TemplateID string `json:"template_id"`
}

type saveImportRequest struct {
	Blob string `json:"blob"`
}

func (h Handler) newGame(c context.Context, ctx *app.RequestContext) {
	playerID, ok := requirePlayerID(ctx)
	if !ok {
		return
	}
	var body newGameRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.NewGameUC.Create(c, newgame.Request{
		PlayerID: playerID,
		Name:     body.Name,
		Gender:   body.Gender,
		Age:      body.Age,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) reset(c context.Context, ctx *app.RequestContext) {
	playerID, ok := requirePlayerID(ctx)
	if !ok {
		return
	}
	if err := h.NewGameUC.Reset(c, playerID); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]bool{"reset": true})
}

func (h Handler) observe(c context.Context, ctx *app.RequestContext) {
	playerID, ok := requirePlayerID(ctx)
	if !ok {
		return
	}
	resp, err := h.ObserveUC.Execute(c, observe.Request{PlayerID: playerID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) advanceTurn(c context.Context, ctx *app.RequestContext) {
	playerID, ok := requirePlayerID(ctx)
	if !ok {
		return
	}
	resp, err := h.TurnUC.Execute(c, turn.Request{PlayerID: playerID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) resolveChoice(c context.Context, ctx *app.RequestContext) {
	playerID, ok := requirePlayerID(ctx)
	if !ok {
		return
	}
	var body choiceRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ChoiceUC.Execute(c, choice.Request{PlayerID: playerID, ChoiceID: body.ChoiceID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) applyEffects(c context.Context, ctx *app.RequestContext) {
	playerID, ok := requirePlayerID(ctx)
	if !ok {
		return
	}
	var body effectsRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.EffectsUC.Execute(c, effects.Request{
		PlayerID: playerID,
		Effects:  body.Effects,
		Reason:   body.Reason,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) questAdvance(c context.Context, ctx *app.RequestContext) {
	h.questOp(c, ctx, h.QuestsUC.AdvanceStage)
}

func (h Handler) questComplete(c context.Context, ctx *app.RequestContext) {
	h.questOp(c, ctx, h.QuestsUC.Complete)
}

func (h Handler) questFail(c context.Context, ctx *app.RequestContext) {
	h.questOp(c, ctx, h.QuestsUC.Fail)
}

func (h Handler) questOp(c context.Context, ctx *app.RequestContext, op func(context.Context, quests.Request) (quests.Response, error)) {
	playerID, ok := requirePlayerID(ctx)
	if !ok {
		return
	}
	var body questRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := op(c, quests.Request{PlayerID: playerID, TemplateID: body.TemplateID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) saveExport(c context.Context, ctx *app.RequestContext) {
	playerID, ok := requirePlayerID(ctx)
	if !ok {
		return
	}
	blob, err := h.SnapshotUC.Export(c, playerID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]string{"blob": blob})
}

func (h Handler) saveImport(c context.Context, ctx *app.RequestContext) {
	playerID, ok := requirePlayerID(ctx)
	if !ok {
		return
	}
	var body saveImportRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	imported, err := h.SnapshotUC.Import(c, playerID, body.Blob)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if !imported {
		writeErrorBody(ctx, consts.StatusUnprocessableEntity, "corrupt_snapshot", "snapshot rejected, state unchanged")
		return
	}
	ctx.JSON(consts.StatusOK, map[string]bool{"imported": true})
}

func (h Handler) forceUnlock(c context.Context, ctx *app.RequestContext) {
	playerID, ok := requirePlayerID(ctx)
	if !ok {
		return
	}
	h.Guard.ForceUnlock(playerID)
	ctx.JSON(consts.StatusOK, map[string]bool{"unlocked": true})
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	playerID, ok := requirePlayerID(ctx)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		PlayerID: playerID,
		Limit:    limit,
		Type:     string(ctx.Query("type")),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) catalogIndex(c context.Context, ctx *app.RequestContext) {
	b, err := h.CatalogUC.Index(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "application/json", b)
}

func (h Handler) catalogByName(c context.Context, ctx *app.RequestContext) {
	name := strings.TrimSuffix(string(ctx.Param("name")), ".json")
	if name == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_catalog", "invalid catalog name")
		return
	}
	b, err := h.CatalogUC.Catalog(c, name)
	if err != nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
		return
	}
	ctx.Data(http.StatusOK, "application/json", b)
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

// storyPing runs the provider self-test. A failure is reported as 200 with
// ok=false: the engine is healthy in offline mode, only the provider is not.
func (h Handler) storyPing(c context.Context, ctx *app.RequestContext) {
	if h.Story == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "story provider not configured")
		return
	}
	if err := h.Story.Ping(c); err != nil {
		ctx.JSON(consts.StatusOK, map[string]any{"ok": false, "error": err.Error()})
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"ok": true})
}

func requirePlayerID(ctx *app.RequestContext) (string, bool) {
	playerID := strings.TrimSpace(string(ctx.GetHeader(playerIDHeader)))
	if playerID == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_player_id", "missing x-player-id header")
		return "", false
	}
	return playerID, true
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, turn.ErrTurnInProgress):
		writeErrorBody(ctx, consts.StatusConflict, "turn_in_progress", err.Error())
	case errors.Is(err, turn.ErrEventPending):
		writeErrorBody(ctx, consts.StatusConflict, "event_pending", err.Error())
	case errors.Is(err, turn.ErrGameEnded):
		writeErrorBody(ctx, consts.StatusConflict, "game_ended", err.Error())
	case errors.Is(err, newgame.ErrAlreadyExists):
		writeErrorBody(ctx, consts.StatusConflict, "already_exists", err.Error())
	case errors.Is(err, quests.ErrUnknownTemplate):
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_template", err.Error())
	case errors.Is(err, turn.ErrInvalidRequest),
		errors.Is(err, choice.ErrInvalidRequest),
		errors.Is(err, effects.ErrInvalidRequest),
		errors.Is(err, quests.ErrInvalidRequest),
		errors.Is(err, observe.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest),
		errors.Is(err, snapshot.ErrInvalidRequest),
		errors.Is(err, newgame.ErrInvalidRequest):
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
