package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/presence-analyzer/internal/core/domain"
	"github.com/comitanigiacomo/presence-analyzer/internal/core/services"
)

type PresenceHandler struct {
	svc *services.StatsService
}

func NewPresenceHandler(svc *services.StatsService) *PresenceHandler {
	return &PresenceHandler{
		svc: svc,
	}
}

func (h *PresenceHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/users", h.ListUsers)
	router.GET("/mean_time_weekday/:user_id", h.MeanTimeWeekday)
	router.GET("/presence_weekday/:user_id", h.PresenceWeekday)
	router.GET("/presence_start_end/:user_id", h.PresenceStartEnd)
}

// ListUsers godoc
// @Summary     List users
// @Description Users found in the presence log, ordered by id.
// @Produce     json
// @Success     200 {array}  domain.User
// @Failure     500 {object} map[string]string
// @Router      /users [get]
func (h *PresenceHandler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// MeanTimeWeekday godoc
// @Summary     Mean presence time grouped by weekday
// @Produce     json
// @Param       user_id path int true "User ID"
// @Success     200 {array}  array
// @Failure     404 {object} map[string]string
// @Router      /mean_time_weekday/{user_id} [get]
func (h *PresenceHandler) MeanTimeWeekday(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	report, err := h.svc.MeanTimeByWeekday(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// PresenceWeekday godoc
// @Summary     Total presence time grouped by weekday
// @Description The first row is a header for chart rendering.
// @Produce     json
// @Param       user_id path int true "User ID"
// @Success     200 {array}  array
// @Failure     404 {object} map[string]string
// @Router      /presence_weekday/{user_id} [get]
func (h *PresenceHandler) PresenceWeekday(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	report, err := h.svc.PresenceByWeekday(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// PresenceStartEnd godoc
// @Summary     Mean arrival and departure time grouped by weekday
// @Produce     json
// @Param       user_id path int true "User ID"
// @Success     200 {array}  array
// @Failure     404 {object} map[string]string
// @Router      /presence_start_end/{user_id} [get]
func (h *PresenceHandler) PresenceStartEnd(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	report, err := h.svc.StartEndByWeekday(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *PresenceHandler) userID(c *gin.Context) (int, bool) {
	raw := c.Param("user_id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("[HTTP] Invalid user id %q", raw)
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return 0, false
	}
	return id, true
}

func (h *PresenceHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrUserNotFound) {
		log.Printf("[HTTP] %v", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	log.Printf("[HTTP] Failed to load presence data: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load presence data"})
}
