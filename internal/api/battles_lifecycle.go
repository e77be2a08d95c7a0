package api

import (
	"net/http"

	"github.com/pawhaven/petbattle/internal/constants"
	"github.com/pawhaven/petbattle/internal/engine"
	"github.com/pawhaven/petbattle/internal/service"

	"github.com/gin-gonic/gin"
)

type CreateBattleRequest struct {
	PetIDs     []uint `json:"pet_ids"`
	OpponentID string `json:"opponent_id"`
	Wager      int    `json:"wager"`
	VsAI       bool   `json:"vs_ai"`
}

// CreateBattle starts a new battle for the session user's team.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	userID := sessionUser(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	var req CreateBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.Wager < 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	b, err := service.StartBattle(h.repo, service.StartBattleRequest{
		UserID:     userID,
		PetIDs:     req.PetIDs,
		OpponentID: req.OpponentID,
		Wager:      req.Wager,
		VsAI:       req.VsAI,
	}, h.actionTimeout)
	if err != nil {
		switch err {
		case service.ErrEmptyTeam, service.ErrTeamTooLarge, service.ErrPetNotOwned,
			service.ErrPetNotBattleReady, service.ErrOpponentHasNoPets:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		case service.ErrWagerNotCovered, service.ErrOpponentWagerNotMet:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		}
		return
	}

	out, err := MarshalForContext(c, b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		return
	}
	c.JSON(http.StatusCreated, out)
}

// SubmitTurn resolves one action for the session user's side.
func (h *BattleHandler) SubmitTurn(c *gin.Context) {
	userID := sessionUser(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	battleID, ok := parseBattleID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	var req service.TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	b, res, err := service.SubmitTurn(h.repo, h.hub, h.locks, h.items, battleID, userID, req, h.actionTimeout)
	if err != nil {
		switch err {
		case service.ErrBattleNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		case service.ErrNotParticipant:
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: err.Error()})
		case service.ErrBattleBusy, service.ErrNotYourTurn, service.ErrBattleNotActive, service.ErrBattleOver:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
		case service.ErrUnknownItem, service.ErrInvalidTurnInput,
			engine.ErrUnknownSkill, engine.ErrSpecialOnCooldown,
			engine.ErrInvalidSlot, engine.ErrTargetFainted, engine.ErrNoActiveCombatant:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
		}
		return
	}

	out, err := MarshalForContext(c, b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
		return
	}
	c.JSON(http.StatusOK, gin.H{"battle": out, "events": res.Events})
}

// CompleteBattle settles a finished battle and returns the final record
// with its rewards. Safe to call repeatedly; duplicates return the
// already-applied result.
func (h *BattleHandler) CompleteBattle(c *gin.Context) {
	userID := sessionUser(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	battleID, ok := parseBattleID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}

	b, err := service.SettleBattle(h.repo, h.hub, battleID, userID)
	if err != nil {
		switch err {
		case service.ErrBattleNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		case service.ErrNotParticipant:
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: err.Error()})
		case service.ErrBattleStillActive:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedSettleBattle})
		}
		return
	}

	out, err := MarshalForContext(c, b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedSettleBattle})
		return
	}
	c.JSON(http.StatusOK, out)
}
