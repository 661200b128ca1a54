package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"innova-chat/dto"
	"innova-chat/services"
)

// ListSessionsHandler godoc
// @Summary      List sessions
// @Description  All sessions ordered by most recent activity.
// @Tags         sessions
// @Produce      json
// @Success      200  {array}   dto.SessionDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /chats [get]
func ListSessionsHandler(svc *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(err.StatusCode, dto.ErrorResponseDTO{Error: err.ErrorCode})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// GetSessionMessagesHandler godoc
// @Summary      Get session messages
// @Description  The session with its full ordered message history.
// @Tags         sessions
// @Param        id  path  int  true  "session id"
// @Produce      json
// @Success      200  {object}  dto.SessionMessagesDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /chats/{id} [get]
func GetSessionMessagesHandler(svc *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionIDParam(c)
		if !ok {
			return
		}
		out, err := svc.Messages(c.Request.Context(), id)
		if err != nil {
			c.JSON(err.StatusCode, dto.ErrorResponseDTO{Error: err.ErrorCode})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// DeleteSessionHandler godoc
// @Summary      Delete a session
// @Description  Deletes the session and all of its messages.
// @Tags         sessions
// @Param        id  path  int  true  "session id"
// @Produce      json
// @Success      200  {object}  dto.StatusResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /chats/{id} [delete]
func DeleteSessionHandler(svc *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionIDParam(c)
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			c.JSON(err.StatusCode, dto.ErrorResponseDTO{Error: err.ErrorCode})
			return
		}
		c.JSON(http.StatusOK, dto.StatusResponseDTO{Status: "deleted"})
	}
}

func sessionIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_session_id"})
		return 0, false
	}
	return id, true
}
