package admin

import (
	handlershared "github.com/bcexpress/tracking-api/internal/http/handlers/shared"
	"github.com/bcexpress/tracking-api/internal/service"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "user_id", "error.user_id_invalid", "error.user_id_type_invalid")
}

func getUsername(c *gin.Context) string {
	return handlershared.GetContextString(c, "username")
}

// bookingScope derives the caller's booking visibility from the auth
// context set by the JWT middleware.
func bookingScope(c *gin.Context) service.BookingScope {
	return service.BookingScope{
		Role:         handlershared.GetContextString(c, "user_role"),
		OriginBranch: handlershared.GetContextString(c, "origin_branch"),
	}
}
