package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	paymentdomain "github.com/smallbiznis/givehope/internal/payment/domain"
)

func (s *Server) InitiatePaymentOrder(c *gin.Context) {
	var req paymentdomain.InitiateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.paymentSvc.InitiateOrder(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) VerifyPayment(c *gin.Context) {
	var req paymentdomain.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// checkout return redirects carry the order id in the query string
		req.OrderID = c.Query("order_id")
	}
	req.OrderID = strings.TrimSpace(req.OrderID)

	resp, err := s.paymentSvc.Verify(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func isPaymentValidationError(err error) bool {
	switch err {
	case paymentdomain.ErrInvalidOrderID,
		paymentdomain.ErrInvalidPayload:
		return true
	default:
		return false
	}
}
