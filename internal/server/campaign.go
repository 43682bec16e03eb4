package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	campaigndomain "github.com/smallbiznis/givehope/internal/campaign/domain"
	donationdomain "github.com/smallbiznis/givehope/internal/donation/domain"
)

func (s *Server) ListCampaigns(c *gin.Context) {
	resp, err := s.campaignSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetCampaignByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.campaignSvc.GetByID(c.Request.Context(), campaigndomain.GetCampaignRequest{
		ID: id,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListCampaignDonations(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.donationSvc.ListByCampaign(c.Request.Context(), donationdomain.ListByCampaignRequest{
		CampaignID: id,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func isCampaignValidationError(err error) bool {
	switch err {
	case campaigndomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
