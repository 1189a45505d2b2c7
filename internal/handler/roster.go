package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jrabinat-art/agenda/internal/models"
	"github.com/jrabinat-art/agenda/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RosterHandler serves the team roster/stats dashboard.
type RosterHandler struct {
	DB *gorm.DB
}

func NewRosterHandler(db *gorm.DB) *RosterHandler {
	return &RosterHandler{DB: db}
}

type playerReq struct {
	Name     string `json:"name" binding:"required,max=128"`
	Position string `json:"position" binding:"max=32"`
	Number   int    `json:"number" binding:"gte=0,lte=99"`
	Goals    int    `json:"goals" binding:"gte=0"`
	Assists  int    `json:"assists" binding:"gte=0"`
	Matches  int    `json:"matches" binding:"gte=0"`
	Active   *bool  `json:"active"`
}

type playerResp struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Number   int    `json:"number"`
	Goals    int    `json:"goals"`
	Assists  int    `json:"assists"`
	Matches  int    `json:"matches"`
	Active   bool   `json:"active"`
}

func toPlayerResp(p *models.Player) playerResp {
	return playerResp{
		ID:       p.ID,
		Name:     p.Name,
		Position: p.Position,
		Number:   p.Number,
		Goals:    p.Goals,
		Assists:  p.Assists,
		Matches:  p.Matches,
		Active:   p.Active,
	}
}

func (h *RosterHandler) CreatePlayer(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	var req playerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name is required")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	player := models.Player{
		UserID:   user.ID,
		Name:     req.Name,
		Position: strings.TrimSpace(req.Position),
		Number:   req.Number,
		Goals:    req.Goals,
		Assists:  req.Assists,
		Matches:  req.Matches,
		Active:   active,
	}
	if err := h.DB.Create(&player).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save player")
		return
	}

	util.Success(c, util.Response{
		"player": toPlayerResp(&player),
	})
}

// ListPlayers returns the roster plus team stat totals in one view model.
func (h *RosterHandler) ListPlayers(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	q := h.DB.Where("user_id = ?", user.ID)
	// default is whole roster; ?active=true narrows to current squad
	if c.Query("active") == "true" {
		q = q.Where("active = ?", true)
	}

	var players []models.Player
	if err := q.Order("number ASC, id ASC").Find(&players).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load roster")
		return
	}

	items := make([]playerResp, 0, len(players))
	var totalGoals, totalAssists, totalMatches int
	for i := range players {
		items = append(items, toPlayerResp(&players[i]))
		totalGoals += players[i].Goals
		totalAssists += players[i].Assists
		totalMatches += players[i].Matches
	}

	util.Success(c, util.Response{
		"items": items,
		"total": len(items),
		"summary": gin.H{
			"goals":   totalGoals,
			"assists": totalAssists,
			"matches": totalMatches,
		},
	})
}

func (h *RosterHandler) UpdatePlayer(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var req playerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name is required")
		return
	}

	var player models.Player
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&player).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "player not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load player")
		}
		return
	}

	player.Name = req.Name
	player.Position = strings.TrimSpace(req.Position)
	player.Number = req.Number
	player.Goals = req.Goals
	player.Assists = req.Assists
	player.Matches = req.Matches
	if req.Active != nil {
		player.Active = *req.Active
	}

	if err := h.DB.Save(&player).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save player")
		return
	}

	util.Success(c, util.Response{
		"player": toPlayerResp(&player),
	})
}

func (h *RosterHandler) DeletePlayer(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	if err := h.DB.
		Where("id = ? AND user_id = ?", id, user.ID).
		Delete(&models.Player{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete player")
		return
	}

	util.Success(c, util.Response{
		"message": "deleted",
	})
}
