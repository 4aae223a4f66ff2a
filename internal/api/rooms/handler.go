package rooms

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"nutrition-app/internal/app/http/middleware"
	"nutrition-app/internal/app/http/validation"
	"nutrition-app/internal/domain/rooms"
)

const maxCodeAttempts = 3

type Handler struct {
	repo    rooms.Repository
	logger  *slog.Logger
	newCode func(name string) (string, error)
}

func NewHandler(repo rooms.Repository, logger *slog.Logger) *Handler {
	return &Handler{
		repo:    repo,
		logger:  logger.With(slog.String("component", "rooms")),
		newCode: rooms.NewInviteCode,
	}
}

func callerID(c *gin.Context) (string, bool) {
	userID := c.GetString(middleware.CtxUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

func (h *Handler) CreateRoom(c *gin.Context) {
	ctx := c.Request.Context()
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var in struct {
		Name string `json:"name" binding:"required,max=120"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid name"})
		return
	}

	room := rooms.Room{OwnerID: userID, Name: strings.TrimSpace(in.Name)}
	for attempt := 1; ; attempt++ {
		code, err := h.newCode(room.Name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate invite code"})
			return
		}
		room.InviteCode = code

		err = h.repo.CreateRoom(ctx, &room)
		if err == nil {
			break
		}
		if errors.Is(err, rooms.ErrCodeTaken) && attempt < maxCodeAttempts {
			continue
		}
		h.logger.ErrorContext(ctx, "failed to create room", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
		return
	}

	h.logger.InfoContext(ctx, "room created", slog.String("room_id", room.ID), slog.String("owner_id", userID))
	c.JSON(http.StatusCreated, room)
}

func (h *Handler) ListRooms(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	list, err := h.repo.ListRoomsForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load rooms"})
		return
	}
	if list == nil {
		list = []rooms.Room{}
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) JoinRoom(c *gin.Context) {
	ctx := c.Request.Context()
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var in struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing invite code"})
		return
	}

	room, err := h.repo.FindRoomByCode(ctx, in.Code)
	if err != nil {
		if errors.Is(err, rooms.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invalid invite code"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load room"})
		return
	}

	if room.OwnerID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You own this room"})
		return
	}

	joined, err := h.repo.AddMember(ctx, room.ID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join room"})
		return
	}

	status := http.StatusOK
	if joined {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"room_id": room.ID, "name": room.Name, "joined": joined})
}

type assignPlanInput struct {
	PatientID string `json:"patient_id" binding:"required,uuid"`
	Title     string `json:"title" binding:"required,max=200"`
	Content   string `json:"content" binding:"required"`
	StartsOn  string `json:"starts_on" binding:"omitempty,isodate"`
	EndsOn    string `json:"ends_on" binding:"omitempty,isodate"`
}

func (h *Handler) AssignPlan(c *gin.Context) {
	ctx := c.Request.Context()
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var in assignPlanInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal plan", "details": err.Error()})
		return
	}

	room, err := h.repo.FindRoom(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, rooms.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load room"})
		return
	}
	if room.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the room owner can assign plans"})
		return
	}

	member, err := h.repo.IsMember(ctx, room.ID, in.PatientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check membership"})
		return
	}
	if !member {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Patient is not a member of this room"})
		return
	}

	plan := rooms.MealPlan{
		RoomID:         room.ID,
		ProfessionalID: userID,
		PatientID:      in.PatientID,
		Title:          strings.TrimSpace(in.Title),
		Content:        in.Content,
		Source:         rooms.PlanSourceProfessional,
		StartsOn:       optionalDate(in.StartsOn),
		EndsOn:         optionalDate(in.EndsOn),
	}
	if plan.StartsOn != nil && plan.EndsOn != nil && plan.EndsOn.Before(*plan.StartsOn) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ends_on is before starts_on"})
		return
	}

	if err := h.repo.CreateMealPlan(ctx, &plan); err != nil {
		h.logger.ErrorContext(ctx, "failed to save meal plan", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save meal plan"})
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (h *Handler) ListMyMealPlans(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	list, err := h.repo.ListMealPlansForPatient(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load meal plans"})
		return
	}
	if list == nil {
		list = []rooms.MealPlan{}
	}
	c.JSON(http.StatusOK, list)
}

func optionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := validation.ParseDate(s)
	if err != nil {
		return nil
	}
	return &t
}
