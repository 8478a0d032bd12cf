package controllers

import (
	"foodgram/internal/apperrors"
	"foodgram/internal/models"
	"foodgram/internal/repository"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type IngredientController struct {
	repo repository.IngredientRepository
}

func NewIngredientController(repo repository.IngredientRepository) *IngredientController {
	return &IngredientController{repo: repo}
}

type IngredientCreateRequest struct {
	Name            string `json:"name" binding:"required"`
	MeasurementUnit string `json:"measurement_unit" binding:"required"`
}

// ListIngredients godoc
// @Summary List catalog ingredients
// @Description Retrieve all ingredients, optionally filtered by name prefix. Unpaginated.
// @Tags ingredient
// @Produce json
// @Param name query string false "Name prefix to search for"
// @Success 200 {object} map[string]interface{} "Ingredients retrieved successfully"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve ingredients"
// @Router /ingredients [get]
func (ic *IngredientController) ListIngredients(c *gin.Context) {
	var (
		ingredients []models.Ingredient
		err         error
	)
	if prefix := c.Query("name"); prefix != "" {
		ingredients, err = ic.repo.SearchByNamePrefix(strings.ToLower(prefix))
	} else {
		ingredients, err = ic.repo.FindAll()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve ingredients",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Ingredients retrieved successfully",
		"data":    ingredients,
	})
}

// GetIngredient godoc
// @Summary Get an ingredient by ID
// @Tags ingredient
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 200 {object} map[string]interface{} "Ingredient retrieved successfully"
// @Failure 404 {object} map[string]interface{} "Ingredient not found"
// @Router /ingredients/{id} [get]
func (ic *IngredientController) GetIngredient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid ingredient ID",
			"error":   "ID must be a valid positive integer",
		})
		return
	}

	ingredient, err := ic.repo.FindByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Ingredient not found",
			"error":   "No ingredient exists with the provided ID",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Ingredient retrieved successfully",
		"data":    ingredient,
	})
}

// CreateIngredient godoc
// @Summary Create a catalog ingredient
// @Description The (name, measurement_unit) pair must be unique across the catalog
// @Tags ingredient
// @Accept json
// @Produce json
// @Param ingredient body controllers.IngredientCreateRequest true "Ingredient data"
// @Success 201 {object} map[string]interface{} "Ingredient created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 409 {object} map[string]interface{} "Ingredient already exists"
// @Router /ingredients [post]
func (ic *IngredientController) CreateIngredient(c *gin.Context) {
	var req IngredientCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	ingredient := models.Ingredient{
		Name:            strings.ToLower(strings.TrimSpace(req.Name)),
		MeasurementUnit: strings.TrimSpace(req.MeasurementUnit),
	}

	if err := ic.repo.Create(&ingredient); err != nil {
		if apperrors.IsConflict(err) {
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": "Ingredient already exists",
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create ingredient",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Ingredient created successfully",
		"data":    ingredient,
	})
}

// DeleteIngredient godoc
// @Summary Delete a catalog ingredient
// @Description Deletion is blocked while any recipe line item references the ingredient
// @Tags ingredient
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 200 {object} map[string]interface{} "Ingredient deleted successfully"
// @Failure 404 {object} map[string]interface{} "Ingredient not found"
// @Failure 409 {object} map[string]interface{} "Ingredient is referenced by recipes"
// @Router /ingredients/{id} [delete]
func (ic *IngredientController) DeleteIngredient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid ingredient ID",
			"error":   "ID must be a valid positive integer",
		})
		return
	}

	if err := ic.repo.Delete(uint(id)); err != nil {
		switch {
		case apperrors.IsNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Ingredient not found",
				"error":   "No ingredient exists with the provided ID",
			})
		case apperrors.IsConflict(err):
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": "Ingredient is referenced by recipes",
				"error":   err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to delete ingredient",
				"error":   err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Ingredient deleted successfully",
		"data":    nil,
	})
}
