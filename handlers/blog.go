package handlers

import (
	"net/http"
	"time"

	blogRepo "motoclub/database/repository/blog"
	"motoclub/models"
	"motoclub/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// BlogHandler serves club stories: public reads, admin writes.
type BlogHandler struct {
	Repo blogRepo.BlogRepository
}

func NewBlogHandler(repo blogRepo.BlogRepository) *BlogHandler {
	return &BlogHandler{Repo: repo}
}

func (h *BlogHandler) List(c *gin.Context) {
	publishedOnly := c.Query("all") != "true"
	posts, err := h.Repo.List(c.Request.Context(), publishedOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, posts, "")
}

func (h *BlogHandler) GetBySlug(c *gin.Context) {
	b, err := h.Repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b, "")
}

type blogRequest struct {
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content" binding:"required"`
	Author     string `json:"author" binding:"required"`
	CoverImage string `json:"cover_image"`
	Published  *bool  `json:"published"`
}

func (h *BlogHandler) Create(c *gin.Context) {
	var req blogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	now := time.Now()
	b := &models.Blog{
		ID:         uuid.New().String(),
		Title:      req.Title,
		Slug:       slug.Make(req.Title),
		Content:    req.Content,
		Author:     req.Author,
		CoverImage: req.CoverImage,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.Published != nil {
		b.Published = *req.Published
	}
	if err := h.Repo.Create(c.Request.Context(), b); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, b, "Post created")
}

func (h *BlogHandler) Update(c *gin.Context) {
	b, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	var req blogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title != b.Title {
		b.Title = req.Title
		b.Slug = slug.Make(req.Title)
	}
	b.Content = req.Content
	b.Author = req.Author
	if req.CoverImage != "" {
		b.CoverImage = req.CoverImage
	}
	if req.Published != nil {
		b.Published = *req.Published
	}
	b.UpdatedAt = time.Now()
	if err := h.Repo.Update(c.Request.Context(), b); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b, "Post updated")
}

func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.Repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, nil, "Post deleted")
}
