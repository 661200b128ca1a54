package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"innova-chat/dto"
	"innova-chat/services"
)

// ChatHandler godoc
// @Summary      Send a chat turn
// @Description  Persists the user message, generates the bot reply and returns it. Creates a session when none (or a stale one) is referenced.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ChatRequestDTO  true  "chat turn"
// @Success      200   {object}  dto.ChatResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /chat [post]
func ChatHandler(svc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ChatRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request"})
			return
		}

		result, sendErr := svc.Send(c.Request.Context(), services.SendInput{
			Message:   req.Message,
			SessionID: req.SessionID,
		})
		if sendErr != nil {
			c.JSON(sendErr.StatusCode, dto.ErrorResponseDTO{Error: sendErr.ErrorCode})
			return
		}

		c.JSON(http.StatusOK, dto.ChatResponseDTO{
			BotMessage:   dto.NewBotMessageDTO(result.BotMessage),
			SessionID:    result.SessionID,
			SessionTitle: result.SessionTitle,
		})
	}
}

// GenerateTitleHandler godoc
// @Summary      Trigger title generation
// @Description  Schedules a detached title-generation task for the session and returns immediately.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body      dto.GenerateTitleRequestDTO  true  "session reference"
// @Success      202   {object}  dto.StatusResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Router       /generate_title [post]
func GenerateTitleHandler(scheduler services.TitleScheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.GenerateTitleRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "missing_session_id"})
			return
		}

		scheduler.Schedule(*req.SessionID)
		c.JSON(http.StatusAccepted, dto.StatusResponseDTO{Status: "started"})
	}
}
