package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/redmane-backend/internal/platform/apierr"
)

func pathInt64(c *gin.Context, name string) (int64, error) {
	return parseInt64(name, c.Param(name))
}

func queryInt64(c *gin.Context, name string) (int64, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return 0, apierr.Validation("http.params", "missing query parameter %s", name)
	}
	return parseInt64(name, raw)
}

func parseInt64(name, raw string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, apierr.New(apierr.CodeValidation, "http.params", fmt.Sprintf("%s must be an integer", name), err)
	}
	return v, nil
}
