package tracking

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"nutrition-app/internal/app/http/middleware"
	"nutrition-app/internal/app/http/validation"
	"nutrition-app/internal/domain/tracking"
)

type Handler struct {
	repo   tracking.Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewHandler(repo tracking.Repository, logger *slog.Logger) *Handler {
	return &Handler{repo: repo, logger: logger.With(slog.String("component", "tracking")), now: time.Now}
}

func (h *Handler) callerID(c *gin.Context) (string, bool) {
	userID := c.GetString(middleware.CtxUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// dayFromQuery reads ?date=YYYY-MM-DD and defaults to today (UTC).
func (h *Handler) dayFromQuery(c *gin.Context) (time.Time, time.Time, bool) {
	day := h.now()
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		parsed, err := validation.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return time.Time{}, time.Time{}, false
		}
		day = parsed
	}
	from, to := validation.DayBounds(day)
	return from, to, true
}

/* ---------- meals ---------- */

type mealInput struct {
	Name     string     `json:"name" binding:"required,max=200"`
	MealType string     `json:"meal_type" binding:"omitempty,oneof=breakfast lunch dinner snack"`
	Calories int        `json:"calories" binding:"gte=0,lte=20000"`
	ProteinG float64    `json:"protein_g" binding:"gte=0"`
	CarbsG   float64    `json:"carbs_g" binding:"gte=0"`
	FatG     float64    `json:"fat_g" binding:"gte=0"`
	Notes    string     `json:"notes" binding:"max=2000"`
	EatenAt  *time.Time `json:"eaten_at"`
}

func (h *Handler) CreateMeal(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	var in mealInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal", "details": err.Error()})
		return
	}

	meal := tracking.MealLog{
		UserID:   userID,
		Name:     strings.TrimSpace(in.Name),
		MealType: in.MealType,
		Calories: in.Calories,
		ProteinG: in.ProteinG,
		CarbsG:   in.CarbsG,
		FatG:     in.FatG,
		Notes:    in.Notes,
		EatenAt:  h.now().UTC(),
	}
	if meal.MealType == "" {
		meal.MealType = tracking.MealSnack
	}
	if in.EatenAt != nil {
		meal.EatenAt = in.EatenAt.UTC()
	}

	if err := h.repo.CreateMeal(c.Request.Context(), &meal); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "failed to save meal", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save meal"})
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (h *Handler) ListMeals(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	from, to, ok := h.dayFromQuery(c)
	if !ok {
		return
	}

	meals, err := h.repo.ListMeals(c.Request.Context(), userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load meals"})
		return
	}
	if meals == nil {
		meals = []tracking.MealLog{}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":   from.Format(validation.DateLayout),
		"meals":  meals,
		"totals": tracking.SumMeals(meals),
	})
}

func (h *Handler) DeleteMeal(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal id"})
		return
	}

	if err := h.repo.DeleteMeal(c.Request.Context(), userID, uint(id)); err != nil {
		if errors.Is(err, tracking.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete meal"})
		return
	}
	c.Status(http.StatusNoContent)
}

/* ---------- hydration ---------- */

func (h *Handler) CreateHydration(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	var in struct {
		AmountML int `json:"amount_ml" binding:"required,gt=0,lte=5000"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount_ml must be between 1 and 5000"})
		return
	}

	entry := tracking.HydrationLog{UserID: userID, AmountML: in.AmountML, LoggedAt: h.now().UTC()}
	if err := h.repo.CreateHydration(c.Request.Context(), &entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save entry"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *Handler) ListHydration(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	from, to, ok := h.dayFromQuery(c)
	if !ok {
		return
	}

	entries, err := h.repo.ListHydration(c.Request.Context(), userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load entries"})
		return
	}
	if entries == nil {
		entries = []tracking.HydrationLog{}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":     from.Format(validation.DateLayout),
		"entries":  entries,
		"total_ml": tracking.SumHydration(entries),
	})
}

/* ---------- weight ---------- */

func (h *Handler) CreateWeight(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	var in struct {
		WeightKG float64 `json:"weight_kg" binding:"required,gt=0,lt=500"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weight_kg must be between 0 and 500"})
		return
	}

	entry := tracking.WeightLog{UserID: userID, WeightKG: in.WeightKG, LoggedAt: h.now().UTC()}
	if err := h.repo.CreateWeight(c.Request.Context(), &entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save entry"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *Handler) ListWeights(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	entries, err := h.repo.ListWeights(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load entries"})
		return
	}
	if entries == nil {
		entries = []tracking.WeightLog{}
	}
	c.JSON(http.StatusOK, entries)
}
