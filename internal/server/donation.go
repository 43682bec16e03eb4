package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	donationdomain "github.com/smallbiznis/givehope/internal/donation/domain"
)

func (s *Server) CreateDonation(c *gin.Context) {
	var req donationdomain.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.donationSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetDonationByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.donationSvc.GetByID(c.Request.Context(), donationdomain.GetDonationRequest{
		ID: id,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func isDonationValidationError(err error) bool {
	switch err {
	case donationdomain.ErrInvalidFirstName,
		donationdomain.ErrInvalidLastName,
		donationdomain.ErrInvalidEmail,
		donationdomain.ErrInvalidAmount,
		donationdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
