package api

import (
	"net/http"
	"strings"

	"github.com/pawhaven/petbattle/internal/constants"
	"github.com/pawhaven/petbattle/internal/game"
	"github.com/gin-gonic/gin"
)

// ListPets returns the session user's pets with their care stats, so a
// client can pick a battle-ready team.
func (h *BattleHandler) ListPets(c *gin.Context) {
	userID := sessionUser(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	pets, err := h.repo.ListPetsByOwner(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchPets})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(pets)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchPets})
		return
	}
	c.JSON(http.StatusOK, out)
}

type CreatePetRequest struct {
	Name    string       `json:"name"`
	Species string       `json:"species"`
	Element game.Element `json:"element"`
}

// CreatePet adopts a new level-1 pet for the session user. Fresh pets
// start with solid care stats and one starter skill of their element.
func (h *BattleHandler) CreatePet(c *gin.Context) {
	userID := sessionUser(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	var req CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || len(req.Name) > 32 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if !validElement(req.Element) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	p := &game.Pet{
		OwnerID:   userID,
		Name:      req.Name,
		Species:   req.Species,
		Element:   req.Element,
		Level:     1,
		Health:    100,
		Energy:    100,
		Hunger:    0,
		Happiness: 100,
		Skills:    []game.Skill{starterSkill(req.Element)},
	}
	if err := h.repo.CreatePet(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreatePet})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreatePet})
		return
	}
	c.JSON(http.StatusCreated, out)
}

// ListInventory returns the session user's consumable stacks.
func (h *BattleHandler) ListInventory(c *gin.Context) {
	userID := sessionUser(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	items, err := h.repo.ListInventory(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchInventory})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchInventory})
		return
	}
	c.JSON(http.StatusOK, out)
}

func validElement(e game.Element) bool {
	for _, known := range game.Elements {
		if e == known {
			return true
		}
	}
	return false
}

func starterSkill(e game.Element) game.Skill {
	switch e {
	case game.Fire:
		return game.Skill{Name: "Flame Burst", Power: 35, Element: game.Fire}
	case game.Water:
		return game.Skill{Name: "Tidal Slam", Power: 35, Element: game.Water}
	case game.Earth:
		return game.Skill{Name: "Rock Throw", Power: 35, Element: game.Earth}
	case game.Air:
		return game.Skill{Name: "Gale Cutter", Power: 35, Element: game.Air}
	default:
		return game.Skill{Name: "Radiant Beam", Power: 30, Element: game.Light}
	}
}
