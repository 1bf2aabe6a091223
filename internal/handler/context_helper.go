package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/tutoring-admin-api/pkg/errors"
	"github.com/noah-isme/tutoring-admin-api/pkg/response"
)

const msgSuccess = "Success"

// parseID reads a numeric path parameter.
func parseID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid "+name+" "+strconv.Quote(raw))
	}
	return id, nil
}

// optionalInt64Query reads a numeric query parameter that may be absent.
func optionalInt64Query(c *gin.Context, name string) (*int64, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid "+name+" "+strconv.Quote(raw))
	}
	return &v, nil
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return true
}
