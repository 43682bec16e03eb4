package server

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/givehope/internal/campaign"
	campaigndomain "github.com/smallbiznis/givehope/internal/campaign/domain"
	"github.com/smallbiznis/givehope/internal/config"
	"github.com/smallbiznis/givehope/internal/donation"
	donationdomain "github.com/smallbiznis/givehope/internal/donation/domain"
	"github.com/smallbiznis/givehope/internal/gateway/cashfree"
	"github.com/smallbiznis/givehope/internal/observability"
	obsmiddleware "github.com/smallbiznis/givehope/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/givehope/internal/observability/metrics"
	obstracing "github.com/smallbiznis/givehope/internal/observability/tracing"
	"github.com/smallbiznis/givehope/internal/payment"
	paymentdomain "github.com/smallbiznis/givehope/internal/payment/domain"
	"github.com/smallbiznis/givehope/internal/ratelimit"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	config.Module,
	fx.Provide(registerGin),
	cashfree.Module,
	campaign.Module,
	donation.Module,
	payment.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine) {
	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	campaignSvc campaigndomain.Service
	donationSvc donationdomain.Service
	paymentSvc  paymentdomain.Service
	webhookSvc  paymentdomain.WebhookService
	limiter     *ratelimit.PublicIntakeLimiter
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	CampaignSvc campaigndomain.Service
	DonationSvc donationdomain.Service
	PaymentSvc  paymentdomain.Service
	WebhookSvc  paymentdomain.WebhookService
	Limiter     *ratelimit.PublicIntakeLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		db:          p.DB,
		log:         p.Log.Named("http.server"),
		genID:       p.GenID,
		campaignSvc: p.CampaignSvc,
		donationSvc: p.DonationSvc,
		paymentSvc:  p.PaymentSvc,
		webhookSvc:  p.WebhookSvc,
		limiter:     p.Limiter,
	}

	svc.registerAPIRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Campaigns --------
	api.GET("/campaigns", s.ListCampaigns)
	api.GET("/campaigns/:id", s.GetCampaignByID)
	api.GET("/campaigns/:id/donations", s.ListCampaignDonations)

	// -------- Donations --------
	api.POST("/donations", s.DonationRateLimit(), s.CreateDonation)
	api.GET("/donations/:id", s.GetDonationByID)

	// -------- Payments --------
	api.POST("/payments", s.InitiatePaymentOrder)
	api.POST("/payment/verify", s.VerifyRateLimit(), s.VerifyPayment)
	api.POST("/cashfree/webhook", s.HandleCashfreeWebhook)
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		// static assets (vite)
		if fileExists("./public", c.Request.URL.Path) {
			c.File("./public" + c.Request.URL.Path)
			return
		}

		// SPA fallback
		c.File("./public/index.html")
	})
}

func fileExists(publicDir, reqPath string) bool {
	clean := filepath.Clean(reqPath)

	// prevent path traversal
	if clean == "." || clean == "/" || clean == ".." {
		return false
	}

	fullPath := filepath.Join(publicDir, clean)

	info, err := os.Stat(fullPath)
	if err != nil {
		return false
	}

	return !info.IsDir()
}
