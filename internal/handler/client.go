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

// ClientHandler serves the address-book dashboard.
type ClientHandler struct {
	DB *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{DB: db}
}

type clientReq struct {
	Name  string `json:"name" binding:"required,max=128"`
	Email string `json:"email" binding:"omitempty,email,max=128"`
	Phone string `json:"phone" binding:"max=32"`
}

type clientResp struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func toClientResp(cl *models.Client) clientResp {
	return clientResp{
		ID:    cl.ID,
		Name:  cl.Name,
		Email: cl.Email,
		Phone: cl.Phone,
	}
}

func (h *ClientHandler) CreateClient(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	var req clientReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name is required")
		return
	}

	client := models.Client{
		UserID: user.ID,
		Name:   req.Name,
		Email:  strings.TrimSpace(req.Email),
		Phone:  strings.TrimSpace(req.Phone),
	}
	if err := h.DB.Create(&client).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save client")
		return
	}

	util.Success(c, util.Response{
		"client": toClientResp(&client),
	})
}

// ListClients returns the user's clients, newest first.
func (h *ClientHandler) ListClients(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	var clients []models.Client
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("id DESC").
		Find(&clients).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load clients")
		return
	}

	items := make([]clientResp, 0, len(clients))
	for i := range clients {
		items = append(items, toClientResp(&clients[i]))
	}

	util.Success(c, util.Response{
		"items": items,
		"total": len(items),
	})
}

func (h *ClientHandler) UpdateClient(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var req clientReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name is required")
		return
	}

	var client models.Client
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&client).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "client not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load client")
		}
		return
	}

	client.Name = req.Name
	client.Email = strings.TrimSpace(req.Email)
	client.Phone = strings.TrimSpace(req.Phone)

	if err := h.DB.Save(&client).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save client")
		return
	}

	util.Success(c, util.Response{
		"client": toClientResp(&client),
	})
}

func (h *ClientHandler) DeleteClient(c *gin.Context) {
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
		Delete(&models.Client{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete client")
		return
	}

	util.Success(c, util.Response{
		"message": "deleted",
	})
}
