package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mindnest/backend/internal/auth"
	"github.com/mindnest/backend/internal/config"
	"github.com/mindnest/backend/internal/models"
	"github.com/mindnest/backend/internal/store"
	"github.com/mindnest/backend/internal/ws"
)

const userKey = "currentUser"

// Env bundles the handler dependencies.
type Env struct {
	Cfg      *config.Config
	Auth     *auth.Service
	Users    *store.UserStore
	Ideas    *store.IdeaStore
	Messages *store.MessageStore
	Hub      *ws.Hub
	Log      *zap.Logger
}

// currentUser returns the identity RequireAuth attached to the request.
func currentUser(c *gin.Context) *models.User {
	user, _ := c.MustGet(userKey).(*models.User)
	return user
}

// ok writes the success envelope.
func ok(c *gin.Context, status int, message string, data interface{}) {
	if data == nil {
		c.JSON(status, gin.H{"message": message})
		return
	}
	c.JSON(status, gin.H{"message": message, "data": data})
}

// fail translates a store/auth error into the failure envelope. Internal
// detail stays in the log, the client gets a safe message.
func (e *Env) fail(c *gin.Context, err error) {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		body := gin.H{"message": verr.Reason}
		if len(verr.Fields) > 0 {
			body["missingFields"] = verr.Fields
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"message": "already exists"})
	default:
		e.Log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "something went wrong, please retry"})
	}
}
