package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/platewise/backend/internal/domain"
	"github.com/platewise/backend/internal/usecase"
)

// Services are the usecases the HTTP API exposes
type Services struct {
	Products   *usecase.ProductService
	Recipes    *usecase.RecipeService
	Normalizer *usecase.NormalizationService
	Intake     *usecase.IntakeService
	Bookmarks  *usecase.BookmarkService
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	products   *usecase.ProductService
	recipes    *usecase.RecipeService
	normalizer *usecase.NormalizationService
	intake     *usecase.IntakeService
	bookmarks  *usecase.BookmarkService
	logger     zerolog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(services Services, logger zerolog.Logger) *Handler {
	normalizer := services.Normalizer
	if normalizer == nil {
		normalizer = usecase.NewNormalizationService(nil)
	}
	return &Handler{
		products:   services.Products,
		recipes:    services.Recipes,
		normalizer: normalizer,
		intake:     services.Intake,
		bookmarks:  services.Bookmarks,
		logger:     logger.With().Str("component", "http").Logger(),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "platewise-backend",
		"version": "1.0.0",
	})
}

// GetProduct looks up a barcode and returns its normalized nutrients and label
func (h *Handler) GetProduct(c *gin.Context) {
	if h.products == nil {
		h.notAvailable(c, "product lookup")
		return
	}

	food, err := h.products.Lookup(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, usecase.Normalized{Food: food, Label: usecase.LabelFor(food)})
}

type batchRequest struct {
	Barcodes []string `json:"barcodes" binding:"required"`
}

// LookupBatch resolves several barcodes in one request
func (h *Handler) LookupBatch(c *gin.Context) {
	if h.products == nil {
		h.notAvailable(c, "product lookup")
		return
	}

	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	results, err := h.products.LookupBatch(c.Request.Context(), req.Barcodes)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// GetRecipe returns a catalog recipe's normalized nutrients and label
func (h *Handler) GetRecipe(c *gin.Context) {
	if h.recipes == nil {
		h.notAvailable(c, "recipe lookup")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe id must be a positive integer"})
		return
	}

	food, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, usecase.Normalized{Food: food, Label: usecase.LabelFor(food)})
}

// SearchRecipes searches the recipe catalog
func (h *Handler) SearchRecipes(c *gin.Context) {
	if h.recipes == nil {
		h.notAvailable(c, "recipe search")
		return
	}

	number := 0
	if raw := c.Query("number"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "number must be an integer"})
			return
		}
		number = n
	}

	resp, err := h.recipes.SearchRecipes(c.Request.Context(), c.Query("q"), number)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BrowseRecipes lists the recipes of a preset category
func (h *Handler) BrowseRecipes(c *gin.Context) {
	if h.recipes == nil {
		h.notAvailable(c, "recipe browsing")
		return
	}

	list, err := h.recipes.Browse(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// RecipeCategories lists the preset recipe categories
func (h *Handler) RecipeCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": domain.RecipeCategories(),
		"default":    domain.DefaultRecipeCategory,
	})
}

// ClearRecipeCaches drops every cached recipe and category list
func (h *Handler) ClearRecipeCaches(c *gin.Context) {
	if h.recipes == nil {
		h.notAvailable(c, "recipe cache")
		return
	}

	removed, err := h.recipes.ClearCaches(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// NormalizeBarcode normalizes a posted OpenFoodFacts product record
func (h *Handler) NormalizeBarcode(c *gin.Context) {
	var product domain.OFFProduct
	if err := c.ShouldBindJSON(&product); err != nil {
		h.badRequest(c, err)
		return
	}

	result, err := h.normalizer.NormalizeProduct(&product)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// NormalizeManual normalizes a posted manual entry form
func (h *Handler) NormalizeManual(c *gin.Context) {
	var entry domain.ManualEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		h.badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.normalizer.NormalizeManual(entry))
}

// NormalizeRecipe normalizes a posted recipe payload
func (h *Handler) NormalizeRecipe(c *gin.Context) {
	var recipe domain.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		h.badRequest(c, err)
		return
	}

	result, err := h.normalizer.NormalizeRecipe(&recipe)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Label renders a nutrition facts label for a posted nutrient map
func (h *Handler) Label(c *gin.Context) {
	var req usecase.LabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.normalizer.Label(req))
}

type dailyValue struct {
	Key    domain.NutrientKey `json:"key"`
	Amount float64            `json:"amount"`
	Unit   domain.Unit        `json:"unit"`
}

// DailyValues lists the daily value reference amounts in label order
func (h *Handler) DailyValues(c *gin.Context) {
	values := make([]dailyValue, 0, len(domain.CanonicalKeys))
	for _, key := range domain.CanonicalKeys {
		if amount, ok := domain.DailyValue(key); ok {
			values = append(values, dailyValue{Key: key, Amount: amount, Unit: key.Unit()})
		}
	}
	c.JSON(http.StatusOK, gin.H{"dailyValues": values})
}

// AddIntake logs a food to the intake of its day
func (h *Handler) AddIntake(c *gin.Context) {
	if h.intake == nil {
		h.notAvailable(c, "intake log")
		return
	}

	var in usecase.IntakeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err)
		return
	}

	entry, err := h.intake.AddEntry(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GetIntake returns a day's entries with their totals and goal progress
func (h *Handler) GetIntake(c *gin.Context) {
	if h.intake == nil {
		h.notAvailable(c, "intake log")
		return
	}

	ctx := c.Request.Context()
	day, err := h.intake.GetDay(ctx, c.Param("date"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	summary, err := h.intake.Summary(ctx, day.Date)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":    day.Date,
		"entries": day.Entries,
		"summary": summary,
	})
}

// ResetIntake clears a day's entries
func (h *Handler) ResetIntake(c *gin.Context) {
	if h.intake == nil {
		h.notAvailable(c, "intake log")
		return
	}

	if err := h.intake.ResetDay(c.Request.Context(), c.Param("date")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListIntakeDays lists the dates with logged intake
func (h *Handler) ListIntakeDays(c *gin.Context) {
	if h.intake == nil {
		h.notAvailable(c, "intake log")
		return
	}

	if withEntries, _ := strconv.ParseBool(c.Query("entries")); withEntries {
		history, err := h.intake.History(c.Request.Context())
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"days": history})
		return
	}

	days, err := h.intake.Days(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// GetGoals returns the effective daily goals
func (h *Handler) GetGoals(c *gin.Context) {
	if h.intake == nil {
		h.notAvailable(c, "goals")
		return
	}

	goals, err := h.intake.Goals(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// UpdateGoals overrides some daily goals
func (h *Handler) UpdateGoals(c *gin.Context) {
	if h.intake == nil {
		h.notAvailable(c, "goals")
		return
	}

	var update domain.Goals
	if err := c.ShouldBindJSON(&update); err != nil {
		h.badRequest(c, err)
		return
	}

	goals, err := h.intake.SetGoals(c.Request.Context(), update)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// ResetGoals restores the default goals
func (h *Handler) ResetGoals(c *gin.Context) {
	if h.intake == nil {
		h.notAvailable(c, "goals")
		return
	}

	goals, err := h.intake.ResetGoals(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// ListBookmarks returns the bookmarked recipes
func (h *Handler) ListBookmarks(c *gin.Context) {
	if h.bookmarks == nil {
		h.notAvailable(c, "bookmarks")
		return
	}

	bookmarks, err := h.bookmarks.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarks": bookmarks})
}

// AddBookmark bookmarks a recipe. Re-adding a bookmarked id answers 200.
func (h *Handler) AddBookmark(c *gin.Context) {
	if h.bookmarks == nil {
		h.notAvailable(c, "bookmarks")
		return
	}

	var recipe domain.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		h.badRequest(c, err)
		return
	}

	added, err := h.bookmarks.Add(c.Request.Context(), recipe)
	if err != nil {
		h.writeError(c, err)
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"added": added, "recipe": recipe})
}

// RemoveBookmark removes a recipe from the bookmarks
func (h *Handler) RemoveBookmark(c *gin.Context) {
	if h.bookmarks == nil {
		h.notAvailable(c, "bookmarks")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe id must be a positive integer"})
		return
	}

	if _, err := h.bookmarks.Remove(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
}

func (h *Handler) notAvailable(c *gin.Context, feature string) {
	c.JSON(http.StatusNotImplemented, gin.H{"error": feature + " is not available"})
}

// writeError maps domain errors to HTTP statuses
func (h *Handler) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrRecipeNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrUpstreamNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrUpstreamFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
