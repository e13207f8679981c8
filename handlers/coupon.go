package handlers

import (
	"net/http"
	"strings"
	"time"

	couponRepo "motoclub/database/repository/coupon"
	"motoclub/models"
	"motoclub/services/coupon"
	"motoclub/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CouponHandler serves the public discount preview and the admin CRUD.
type CouponHandler struct {
	Svc  coupon.Service
	Repo couponRepo.CouponRepository
}

func NewCouponHandler(svc coupon.Service, repo couponRepo.CouponRepository) *CouponHandler {
	return &CouponHandler{Svc: svc, Repo: repo}
}

// Preview validates a code against a prospective order without
// consuming a use. The checkout screen calls this on code entry.
func (h *CouponHandler) Preview(c *gin.Context) {
	var req struct {
		Code        string  `json:"code" binding:"required"`
		Amount      float64 `json:"amount" binding:"required,gt=0"`
		BookingType string  `json:"booking_type" binding:"required,oneof=individual group"`
		GroupSize   int     `json:"group_size"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	groupSize := req.GroupSize
	if groupSize < 1 {
		groupSize = 1
	}
	cp, discount, err := h.Svc.Apply(c.Request.Context(), strings.ToUpper(req.Code), req.Amount, groupSize, req.BookingType)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"code":     cp.Code,
		"discount": discount,
		"payable":  req.Amount - discount,
	}, "Coupon applied")
}

type couponRequest struct {
	Code           string    `json:"code" binding:"required"`
	DiscountType   string    `json:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue  float64   `json:"discount_value" binding:"required,gt=0"`
	MaxDiscount    float64   `json:"max_discount"`
	MinOrderAmount float64   `json:"min_order_amount"`
	AppliesTo      string    `json:"applies_to" binding:"omitempty,oneof=all individual group"`
	MinGroupSize   int       `json:"min_group_size"`
	MaxGroupSize   int       `json:"max_group_size"`
	ExpiresAt      time.Time `json:"expires_at"`
	UsageLimit     int       `json:"usage_limit"`
	IsActive       *bool     `json:"is_active"`
}

func (h *CouponHandler) Create(c *gin.Context) {
	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	now := time.Now()
	cp := &models.Coupon{
		ID:             uuid.New().String(),
		Code:           strings.ToUpper(req.Code),
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue,
		MaxDiscount:    req.MaxDiscount,
		MinOrderAmount: req.MinOrderAmount,
		AppliesTo:      req.AppliesTo,
		MinGroupSize:   req.MinGroupSize,
		MaxGroupSize:   req.MaxGroupSize,
		ExpiresAt:      req.ExpiresAt,
		UsageLimit:     req.UsageLimit,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if cp.AppliesTo == "" {
		cp.AppliesTo = models.AppliesAll
	}
	if req.IsActive != nil {
		cp.IsActive = *req.IsActive
	}
	if err := h.Repo.Create(c.Request.Context(), cp); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, cp, "Coupon created")
}

func (h *CouponHandler) Update(c *gin.Context) {
	cp, err := h.Repo.GetByCode(c.Request.Context(), strings.ToUpper(c.Param("code")))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	cp.DiscountType = req.DiscountType
	cp.DiscountValue = req.DiscountValue
	cp.MaxDiscount = req.MaxDiscount
	cp.MinOrderAmount = req.MinOrderAmount
	if req.AppliesTo != "" {
		cp.AppliesTo = req.AppliesTo
	}
	cp.MinGroupSize = req.MinGroupSize
	cp.MaxGroupSize = req.MaxGroupSize
	cp.ExpiresAt = req.ExpiresAt
	cp.UsageLimit = req.UsageLimit
	if req.IsActive != nil {
		cp.IsActive = *req.IsActive
	}
	cp.UpdatedAt = time.Now()
	if err := h.Repo.Update(c.Request.Context(), cp); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, cp, "Coupon updated")
}

func (h *CouponHandler) List(c *gin.Context) {
	coupons, err := h.Repo.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, coupons, "")
}

func (h *CouponHandler) Delete(c *gin.Context) {
	if err := h.Repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, nil, "Coupon deleted")
}
