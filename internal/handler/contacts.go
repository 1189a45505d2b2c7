package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jrabinat-art/agenda/internal/filestore"
	"github.com/jrabinat-art/agenda/internal/util"

	"github.com/gin-gonic/gin"
)

// ContactsHandler serves the file-backed contact list dashboard. Unlike the
// other dashboards its data never touches the database.
type ContactsHandler struct {
	Store *filestore.Store
}

func NewContactsHandler(store *filestore.Store) *ContactsHandler {
	return &ContactsHandler{Store: store}
}

type contactReq struct {
	Name  string `json:"name" binding:"required,max=128"`
	Email string `json:"email" binding:"omitempty,email,max=128"`
	Phone string `json:"phone" binding:"max=32"`
}

func (h *ContactsHandler) ListContacts(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	contacts, err := h.Store.List(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to read contacts file")
		return
	}

	util.Success(c, util.Response{
		"items": contacts,
		"total": len(contacts),
	})
}

func (h *ContactsHandler) AddContact(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	var req contactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name is required")
		return
	}

	ct := filestore.Contact{
		Name:  req.Name,
		Email: strings.TrimSpace(req.Email),
		Phone: strings.TrimSpace(req.Phone),
	}
	if err := h.Store.Add(user.ID, ct); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write contacts file")
		return
	}

	util.Success(c, util.Response{
		"contact": ct,
	})
}

// DeleteContact removes the contact at a zero-based list position; the file
// has no row ids.
func (h *ContactsHandler) DeleteContact(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid index")
		return
	}

	if err := h.Store.Delete(user.ID, index); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "no contact at that position")
		return
	}

	util.Success(c, util.Response{
		"message": "deleted",
	})
}
