package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jrabinat-art/agenda/internal/models"
	"github.com/jrabinat-art/agenda/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// getCurrentUser pulls the user placed into the context by AuthMiddleware.
// On failure it writes the 401 envelope itself; callers just return.
func getCurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil, false
	}
	return user, true
}

// bindError turns a ShouldBindJSON failure into the error envelope, naming
// the first offending field when the binding validator reports one.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam,
			fmt.Sprintf("invalid field %s (%s)", fe.Field(), fe.Tag()))
		return
	}
	util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
}
