package controllers

import (
	"errors"
	"fmt"
	"foodgram/internal/apperrors"
	"foodgram/internal/cache"
	"foodgram/internal/repository"
	"foodgram/internal/shortlink"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const shortLinkCacheTTL = 24 * time.Hour

// ShortLinkController issues compact share links for recipes and resolves
// them back. The redis cache is optional: when nil or unreachable, every
// resolution falls through to the store.
type ShortLinkController struct {
	recipeRepo repository.RecipeRepository
	cache      cache.ShortLinkCache
}

func NewShortLinkController(recipeRepo repository.RecipeRepository, linkCache cache.ShortLinkCache) *ShortLinkController {
	return &ShortLinkController{recipeRepo: recipeRepo, cache: linkCache}
}

// GetShortLink godoc
// @Summary Get a short link for a recipe
// @Description Returns an absolute short link of the form http://host/s/{code}/
// @Tags recipe
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} map[string]interface{} "Short link generated"
// @Failure 404 {object} map[string]interface{} "Recipe not found"
// @Router /recipes/{id}/get-link [get]
func (sc *ShortLinkController) GetShortLink(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid recipe ID",
			"error":   "ID must be a valid positive integer",
		})
		return
	}

	recipe, err := sc.recipeRepo.FindByID(uint(id))
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Recipe not found",
				"error":   "No recipe exists with the provided ID",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to generate short link",
			"error":   err.Error(),
		})
		return
	}

	code, err := shortlink.Encode(int64(recipe.ID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to generate short link",
			"error":   err.Error(),
		})
		return
	}

	if sc.cache != nil {
		if err := sc.cache.StoreShortLink(code, recipe.ID, shortLinkCacheTTL); err != nil {
			log.Printf("short link cache store failed: %v", err)
		}
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}

	c.JSON(http.StatusOK, gin.H{
		"short-link": fmt.Sprintf("%s://%s/s/%s/", scheme, c.Request.Host, code),
	})
}

// ResolveShortLink godoc
// @Summary Resolve a short link
// @Description Decode the base62 code and redirect to the canonical recipe page
// @Tags recipe
// @Param code path string true "Base62 short code"
// @Success 302 {string} string "Redirect to /recipes/{id}/"
// @Failure 404 {object} map[string]interface{} "Unknown or malformed short link"
// @Router /s/{code} [get]
func (sc *ShortLinkController) ResolveShortLink(c *gin.Context) {
	code := c.Param("code")

	recipeID, err := sc.resolve(code)
	if err != nil {
		// Malformed codes and codes pointing at nothing look the same to
		// the caller.
		if errors.Is(err, shortlink.ErrInvalidInput) ||
			errors.Is(err, shortlink.ErrInvalidEncoding) ||
			apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Short link not found",
				"error":   "Unknown or malformed short link",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to resolve short link",
			"error":   err.Error(),
		})
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/recipes/%d/", recipeID))
}

func (sc *ShortLinkController) resolve(code string) (uint, error) {
	if sc.cache != nil {
		recipeID, found, err := sc.cache.GetShortLink(code)
		if err != nil {
			log.Printf("short link cache lookup failed: %v", err)
		}
		if err == nil && found {
			// A cached code can outlive its recipe, so the hit is only a
			// hint. A miss in the store evicts the stale entry.
			if _, err := sc.recipeRepo.FindByID(recipeID); err != nil {
				if apperrors.IsNotFound(err) {
					if evictErr := sc.cache.DeleteShortLink(code); evictErr != nil {
						log.Printf("short link cache evict failed: %v", evictErr)
					}
				}
				return 0, err
			}
			return recipeID, nil
		}
	}

	n, err := shortlink.Decode(code)
	if err != nil {
		return 0, err
	}

	recipe, err := sc.recipeRepo.FindByID(uint(n))
	if err != nil {
		return 0, err
	}

	if sc.cache != nil {
		if err := sc.cache.StoreShortLink(code, recipe.ID, shortLinkCacheTTL); err != nil {
			log.Printf("short link cache store failed: %v", err)
		}
	}
	return recipe.ID, nil
}
