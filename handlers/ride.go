package handlers

import (
	"net/http"
	"time"

	rideRepo "motoclub/database/repository/ride"
	"motoclub/models"
	"motoclub/services/migration"
	"motoclub/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// RideHandler serves the upcoming/completed ride catalogue, the admin
// CRUD and the manual migration trigger.
type RideHandler struct {
	Repo    rideRepo.RideRepository
	Sweeper *migration.Sweeper
}

func NewRideHandler(repo rideRepo.RideRepository, sweeper *migration.Sweeper) *RideHandler {
	return &RideHandler{Repo: repo, Sweeper: sweeper}
}

func (h *RideHandler) ListUpcoming(c *gin.Context) {
	activeOnly := c.Query("all") != "true"
	rides, err := h.Repo.List(c.Request.Context(), activeOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rides, "")
}

func (h *RideHandler) GetBySlug(c *gin.Context) {
	r, err := h.Repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, r, "")
}

func (h *RideHandler) ListCompleted(c *gin.Context) {
	rides, err := h.Repo.ListCompleted(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rides, "")
}

func (h *RideHandler) GetCompleted(c *gin.Context) {
	r, err := h.Repo.GetCompletedByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, r, "")
}

type rideRequest struct {
	Title              string           `json:"title" binding:"required"`
	Description        string           `json:"description"`
	Route              models.RideRoute `json:"route" binding:"required"`
	Price              float64          `json:"price" binding:"min=0"`
	MaxCapacity        int              `json:"max_capacity" binding:"required,min=1"`
	StartTime          time.Time        `json:"start_time" binding:"required"`
	EndTime            time.Time        `json:"end_time"`
	RegistrationCutoff time.Time        `json:"registration_cutoff"`
	CoverImage         string           `json:"cover_image"`
	IsActive           *bool            `json:"is_active"`
}

func (h *RideHandler) Create(c *gin.Context) {
	var req rideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	now := time.Now()
	r := &models.UpcomingRide{
		ID:                 uuid.New().String(),
		Title:              req.Title,
		Slug:               slug.Make(req.Title),
		Description:        req.Description,
		Route:              req.Route,
		Price:              req.Price,
		MaxCapacity:        req.MaxCapacity,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		RegistrationCutoff: req.RegistrationCutoff,
		CoverImage:         req.CoverImage,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if req.IsActive != nil {
		r.IsActive = *req.IsActive
	}
	if err := h.Repo.Create(c.Request.Context(), r); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, r, "Ride created")
}

func (h *RideHandler) Update(c *gin.Context) {
	r, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	var req rideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title != r.Title {
		r.Title = req.Title
		r.Slug = slug.Make(req.Title)
	}
	r.Description = req.Description
	r.Route = req.Route
	r.Price = req.Price
	r.MaxCapacity = req.MaxCapacity
	r.StartTime = req.StartTime
	r.EndTime = req.EndTime
	r.RegistrationCutoff = req.RegistrationCutoff
	if req.CoverImage != "" {
		r.CoverImage = req.CoverImage
	}
	if req.IsActive != nil {
		r.IsActive = *req.IsActive
	}
	r.UpdatedAt = time.Now()
	if err := h.Repo.Update(c.Request.Context(), r); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, r, "Ride updated")
}

func (h *RideHandler) Delete(c *gin.Context) {
	if err := h.Repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, nil, "Ride deleted")
}

// TriggerMigration runs the expired-ride sweep on demand. Same code path
// as the scheduled run, so a double trigger cannot double-migrate.
func (h *RideHandler) TriggerMigration(c *gin.Context) {
	report, err := h.Sweeper.Run(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, report, "Migration sweep complete")
}
