package admin

import (
	handlershared "github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "user_id")
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	return handlershared.ParseUintParam(c, name)
}
