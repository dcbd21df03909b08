package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mkrishnakr62/chatting-backend-app/internal/apperr"
	"github.com/mkrishnakr62/chatting-backend-app/internal/middleware"
)

// respondError is the single boundary translator for domain errors.
// Unexpected failures become a generic 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"success": false, "message": apperr.PublicMessage(err)})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}

func parseID(c *gin.Context, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		respondBadRequest(c, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func parseIDs(c *gin.Context, raw []string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			respondBadRequest(c, "invalid id")
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

func currentUser(c *gin.Context) uuid.UUID {
	return c.MustGet(middleware.UserIDKey).(uuid.UUID)
}
