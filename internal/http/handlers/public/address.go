package public

import (
	"errors"
	"strconv"

	"github.com/aurora-mall/internal/http/response"
	"github.com/aurora-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// AddressRequest 地址写入请求
type AddressRequest struct {
	Name      string `json:"name" binding:"required"`
	Street    string `json:"street" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country" binding:"required"`
	IsDefault bool   `json:"is_default"`
}

func (r AddressRequest) toInput() service.AddressInput {
	return service.AddressInput{
		Name:      r.Name,
		Street:    r.Street,
		City:      r.City,
		State:     r.State,
		ZipCode:   r.ZipCode,
		Country:   r.Country,
		IsDefault: r.IsDefault,
	}
}

// GetAddresses 获取地址列表
func (h *Handler) GetAddresses(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	addresses, err := h.AddressService.ListByUser(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "fetch addresses failed", err)
		return
	}
	response.Success(c, addresses)
}

// CreateAddress 新增地址
func (h *Handler) CreateAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	address, err := h.AddressService.Create(userID, req.toInput())
	if err != nil {
		respondAddressError(c, err)
		return
	}
	response.Success(c, address)
}

// UpdateAddress 更新地址
func (h *Handler) UpdateAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || addressID == 0 {
		respondError(c, response.CodeBadRequest, "invalid address id", nil)
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	address, err := h.AddressService.Update(userID, uint(addressID), req.toInput())
	if err != nil {
		respondAddressError(c, err)
		return
	}
	response.Success(c, address)
}

// DeleteAddress 删除地址
func (h *Handler) DeleteAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || addressID == 0 {
		respondError(c, response.CodeBadRequest, "invalid address id", nil)
		return
	}

	if err := h.AddressService.Delete(userID, uint(addressID)); err != nil {
		respondAddressError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondAddressError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidParams):
		respondError(c, response.CodeBadRequest, "name, street, city and country are required", nil)
	case errors.Is(err, service.ErrAddressNotFound):
		respondError(c, response.CodeNotFound, "address not found", nil)
	default:
		respondError(c, response.CodeInternal, "address operation failed", err)
	}
}
