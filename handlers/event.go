package handlers

import (
	"net/http"
	"time"

	eventRepo "motoclub/database/repository/event"
	"motoclub/models"
	"motoclub/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// EventHandler serves the public event catalogue and the admin CRUD.
type EventHandler struct {
	Repo eventRepo.EventRepository
}

func NewEventHandler(repo eventRepo.EventRepository) *EventHandler {
	return &EventHandler{Repo: repo}
}

// List returns active events to the public; admins can pass ?all=true.
func (h *EventHandler) List(c *gin.Context) {
	activeOnly := c.Query("all") != "true"
	events, err := h.Repo.List(c.Request.Context(), activeOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, events, "")
}

func (h *EventHandler) GetBySlug(c *gin.Context) {
	e, err := h.Repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, e, "")
}

type eventRequest struct {
	Title              string    `json:"title" binding:"required"`
	Description        string    `json:"description"`
	Venue              string    `json:"venue" binding:"required"`
	Price              float64   `json:"price" binding:"min=0"`
	MaxParticipants    int       `json:"max_participants" binding:"required,min=1"`
	StartTime          time.Time `json:"start_time" binding:"required"`
	EndTime            time.Time `json:"end_time"`
	RegistrationCutoff time.Time `json:"registration_cutoff"`
	CoverImage         string    `json:"cover_image"`
	IsActive           *bool     `json:"is_active"`
}

func (h *EventHandler) Create(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	now := time.Now()
	e := &models.Event{
		ID:                 uuid.New().String(),
		Title:              req.Title,
		Slug:               slug.Make(req.Title),
		Description:        req.Description,
		Venue:              req.Venue,
		Price:              req.Price,
		MaxParticipants:    req.MaxParticipants,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		RegistrationCutoff: req.RegistrationCutoff,
		CoverImage:         req.CoverImage,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}
	if err := h.Repo.Create(c.Request.Context(), e); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, e, "Event created")
}

func (h *EventHandler) Update(c *gin.Context) {
	e, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title != e.Title {
		e.Title = req.Title
		e.Slug = slug.Make(req.Title)
	}
	e.Description = req.Description
	e.Venue = req.Venue
	e.Price = req.Price
	e.MaxParticipants = req.MaxParticipants
	e.StartTime = req.StartTime
	e.EndTime = req.EndTime
	e.RegistrationCutoff = req.RegistrationCutoff
	if req.CoverImage != "" {
		e.CoverImage = req.CoverImage
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}
	e.UpdatedAt = time.Now()
	if err := h.Repo.Update(c.Request.Context(), e); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, e, "Event updated")
}

func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.Repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, nil, "Event deleted")
}
