package public

import (
	handlershared "github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "user_id")
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	return handlershared.ParseUintParam(c, name)
}

func parseAmount(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(raw)
}
