package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type sendMessageInput struct {
	ReceiverID uint   `json:"receiverId" binding:"required"`
	Content    string `json:"content"`
}

// SendMessage persists a message and pushes it to any connected recipient.
// The sender is always the authenticated caller, never a body field.
func (e *Env) SendMessage(c *gin.Context) {
	var in sendMessageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "receiverId and content are required"})
		return
	}
	msg, err := e.Messages.Send(c.Request.Context(), currentUser(c).ID, in.ReceiverID, in.Content)
	if err != nil {
		e.fail(c, err)
		return
	}
	e.Hub.Notify(msg)
	ok(c, http.StatusCreated, "message sent successfully", msg)
}

func (e *Env) ChatHistory(c *gin.Context) {
	receiverID, err := strconv.ParseUint(c.Param("receiverId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid receiver id"})
		return
	}
	messages, err := e.Messages.History(c.Request.Context(), currentUser(c).ID, uint(receiverID))
	if err != nil {
		e.fail(c, err)
		return
	}
	ok(c, http.StatusOK, "success", messages)
}

func (e *Env) Conversations(c *gin.Context) {
	summaries, err := e.Messages.Conversations(c.Request.Context())
	if err != nil {
		e.fail(c, err)
		return
	}
	ok(c, http.StatusOK, "success", summaries)
}
