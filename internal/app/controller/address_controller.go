package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vendra/vendra-backend/internal/app/model"
	"github.com/vendra/vendra-backend/internal/app/service"
	apperrors "github.com/vendra/vendra-backend/internal/errors"
	"github.com/vendra/vendra-backend/internal/middleware"
)

type AddressController struct {
	addressService service.AddressService
}

func NewAddressController(addressService service.AddressService) *AddressController {
	return &AddressController{
		addressService: addressService,
	}
}

type AddressRequest struct {
	Label       string `json:"label"`
	Recipient   string `json:"recipient" binding:"required"`
	Phone       string `json:"phone"`
	Line1       string `json:"line1" binding:"required"`
	Line2       string `json:"line2"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
	CountryCode string `json:"country_code"`
	IsDefault   bool   `json:"is_default"`
}

func (r AddressRequest) toModel() *model.Address {
	return &model.Address{
		Label:       r.Label,
		Recipient:   r.Recipient,
		Phone:       r.Phone,
		Line1:       r.Line1,
		Line2:       r.Line2,
		City:        r.City,
		PostalCode:  r.PostalCode,
		CountryCode: r.CountryCode,
		IsDefault:   r.IsDefault,
	}
}

// ListAddresses returns the authenticated user's address book
// GET /api/v1/addresses
func (ctrl *AddressController) ListAddresses(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	addresses, err := ctrl.addressService.GetUserAddresses(userID)
	if err != nil {
		apperrors.InternalError(c, "Failed to fetch addresses")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"addresses": addresses,
		"count":     len(addresses),
	})
}

// CreateAddress adds an address to the user's address book
// POST /api/v1/addresses
func (ctrl *AddressController) CreateAddress(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	address := req.toModel()
	if err := ctrl.addressService.CreateAddress(userID, address); err != nil {
		apperrors.InternalError(c, "Failed to create address")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"address": address,
	})
}

// UpdateAddress updates one of the user's addresses
// PUT /api/v1/addresses/:id
func (ctrl *AddressController) UpdateAddress(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	addressID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	if err := ctrl.addressService.UpdateAddress(userID, addressID, req.toModel()); err != nil {
		respondAddressError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address updated",
	})
}

// DeleteAddress removes one of the user's addresses
// DELETE /api/v1/addresses/:id
func (ctrl *AddressController) DeleteAddress(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	addressID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.addressService.DeleteAddress(userID, addressID); err != nil {
		respondAddressError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetDefaultAddress marks an address as the user's default
// POST /api/v1/addresses/:id/default
func (ctrl *AddressController) SetDefaultAddress(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	addressID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.addressService.SetDefaultAddress(userID, addressID); err != nil {
		respondAddressError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Default address updated",
	})
}

func respondAddressError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrAddressNotFound):
		apperrors.NotFound(c, apperrors.AddressNotFound, "Address not found")
	case errors.Is(err, service.ErrUnauthorizedAccess):
		apperrors.Forbidden(c, "Address belongs to another user")
	default:
		log.Error("Address operation failed", err, nil)
		apperrors.InternalError(c, "Address operation failed")
	}
}
