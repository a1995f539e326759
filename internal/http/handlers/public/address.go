package public

import (
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/response"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// AddressRequest creates or updates a shipping address.
type AddressRequest struct {
	Recipient string `json:"recipient" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Line1     string `json:"line1" binding:"required"`
	Line2     string `json:"line2"`
	Suburb    string `json:"suburb" binding:"required"`
	State     string `json:"state" binding:"required"`
	Postcode  string `json:"postcode" binding:"required"`
	Country   string `json:"country"`
	IsDefault bool   `json:"is_default"`
}

// ListAddresses returns the user's addresses.
func (h *Handler) ListAddresses(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	addresses, err := h.AddressService.List(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "address list failed", err)
		return
	}
	response.Success(c, gin.H{"items": addresses})
}

// CreateAddress adds a shipping address.
func (h *Handler) CreateAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	address := req.toModel(uid, 0)
	if err := h.AddressService.Create(address); err != nil {
		respondError(c, response.CodeInternal, "address create failed", err)
		return
	}
	response.Success(c, address)
}

// UpdateAddress saves changes to an existing address.
func (h *Handler) UpdateAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid address id")
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	address := req.toModel(uid, addressID)
	if err := h.AddressService.Update(address); err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrAddressNotFound, code: response.CodeNotFound, msg: "address not found"},
		}, response.CodeInternal, "address update failed")
		return
	}
	response.Success(c, address)
}

// DeleteAddress removes an address.
func (h *Handler) DeleteAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid address id")
		return
	}
	if err := h.AddressService.Delete(addressID, uid); err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrAddressNotFound, code: response.CodeNotFound, msg: "address not found"},
		}, response.CodeInternal, "address delete failed")
		return
	}
	response.Success(c, nil)
}

func (r AddressRequest) toModel(userID, id uint) *models.Address {
	country := r.Country
	if country == "" {
		country = "AU"
	}
	return &models.Address{
		ID:        id,
		UserID:    userID,
		Recipient: r.Recipient,
		Phone:     r.Phone,
		Line1:     r.Line1,
		Line2:     r.Line2,
		Suburb:    r.Suburb,
		State:     r.State,
		Postcode:  r.Postcode,
		Country:   country,
		IsDefault: r.IsDefault,
	}
}
