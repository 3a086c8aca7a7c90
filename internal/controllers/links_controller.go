package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/shortlinks/internal/controllers/middlewares"
	"github.com/fsdevblog/shortlinks/internal/models"
)

// LinksController JSON API управления ссылками владельца.
type LinksController struct {
	links LinkManager
}

func NewLinksController(links LinkManager) *LinksController {
	return &LinksController{links: links}
}

// List обрабатывает GET /api/links. Ссылки владельца, новые первыми.
//
// Ответы:
//   - 200 {"success":true,"data":[...]}
//   - 401 для анонимного посетителя
//   - 500 при ошибке хранилища
func (c *LinksController) List(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	links, err := c.links.ListByOwner(reqCtx, middlewares.OwnerID(ctx))
	if err != nil {
		if errorStatus(err) == http.StatusInternalServerError {
			_ = ctx.Error(err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": ErrListLinks.Error()})
			return
		}
		respondError(ctx, err)
		return
	}
	if links == nil {
		links = []models.Link{}
	}
	respondData(ctx, http.StatusOK, links)
}

// Create обрабатывает POST /api/links с телом {"originalUrl": "...", "shortCode": "..."}.
//
// Ответы:
//   - 201 {"success":true,"data":{...}}
//   - 400 тело не разбирается
//   - 401, 409, 422, 500 - {"error":"..."}
func (c *LinksController) Create(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	var in models.LinkInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		_ = ctx.Error(err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": ErrInvalidBody.Error()})
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	link, err := c.links.Create(reqCtx, ownerID, in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondData(ctx, http.StatusCreated, link)
}

// Update обрабатывает PUT /api/links/:id.
func (c *LinksController) Update(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}
	id, idErr := parseLinkID(ctx)
	if idErr != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": idErr.Error()})
		return
	}

	var in models.LinkInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		_ = ctx.Error(err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": ErrInvalidBody.Error()})
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	link, err := c.links.Update(reqCtx, ownerID, id, in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondData(ctx, http.StatusOK, link)
}

// Delete обрабатывает DELETE /api/links/:id. Успех - {"success":true}.
func (c *LinksController) Delete(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}
	id, idErr := parseLinkID(ctx)
	if idErr != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": idErr.Error()})
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	if err := c.links.Delete(reqCtx, ownerID, id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
