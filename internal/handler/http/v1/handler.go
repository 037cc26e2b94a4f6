package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/alatem/alatem/internal/config"
	"github.com/alatem/alatem/internal/models"
	"github.com/alatem/alatem/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	registrationService service.RegistrationService
	alertService        service.AlertService
	reportService       service.ReportService
	statsService        service.StatsService
	logger              *logrus.Logger
	validate            *validator.Validate
	cfg                 *config.Config
}

func NewHandler(
	registrationService service.RegistrationService,
	alertService service.AlertService,
	reportService service.ReportService,
	statsService service.StatsService,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		registrationService: registrationService,
		alertService:        alertService,
		reportService:       reportService,
		statsService:        statsService,
		logger:              logger,
		validate:            validator.New(),
		cfg:                 cfg,
	}
}

// @Summary Register a resident
// @Description Register a resident and send an OTP code to their phone. Re-registering the same phone resets verification.
// @Tags Registration
// @Accept json
// @Produce json
// @Param registration body RegisterRequest true "Registration request"
// @Success 200 {object} RegisterResponse
// @Failure 400 {object} map[string]interface{} "Invalid request body or validation error"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /register [post]
func (h *Handler) register(c *gin.Context) {
	var input RegisterRequest
	log := h.logger.WithField("method", "register")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if _, err := models.NormalizePhone(input.Phone); err != nil {
		log.WithError(err).Warn("Invalid phone number")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid phone number"})
		return
	}
	if !models.ValidArea(input.Area) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unknown area"})
		return
	}

	user := DTOToUserModel(input)
	debugOTP, err := h.registrationService.Register(c.Request.Context(), user)
	if err != nil {
		log.WithError(err).Error("Failed to register user in service")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, RegisterResponse{
		Success:  true,
		UserID:   user.ID,
		DebugOTP: debugOTP,
	})
}

// @Summary Verify a phone number
// @Description Confirm a registration with the OTP code delivered by SMS.
// @Tags Registration
// @Accept json
// @Produce json
// @Param verification body VerifyRequest true "Verification request"
// @Success 200 {object} VerifyResponse
// @Failure 400 {object} map[string]interface{} "Invalid or expired code"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /verify [post]
func (h *Handler) verify(c *gin.Context) {
	var input VerifyRequest
	log := h.logger.WithField("method", "verify")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"verified": false, "error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"verified": false, "error": err.Error()})
		return
	}

	if _, err := models.NormalizePhone(input.Phone); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"verified": false, "error": "invalid phone number"})
		return
	}

	err := h.registrationService.Verify(c.Request.Context(), input.Phone, input.Code)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, VerifyResponse{Verified: true})
	case errors.Is(err, service.ErrOTPNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"verified": false, "error": "code expired or not found"})
	case errors.Is(err, service.ErrOTPInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"verified": false, "error": "invalid code"})
	case errors.Is(err, service.ErrOTPTooManyAttempts):
		c.JSON(http.StatusBadRequest, gin.H{"verified": false, "error": "too many attempts, request a new code"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"verified": false, "error": "user not found"})
	default:
		log.WithError(err).Error("Failed to verify user in service")
		c.JSON(http.StatusInternalServerError, gin.H{"verified": false, "error": "internal server error"})
	}
}

// @Summary Get alert history for an area
// @Description Get sent alerts for an area, newest first.
// @Tags Alerts
// @Accept json
// @Produce json
// @Param area query string true "Area code"
// @Param limit query int false "Maximum number of alerts" default(50)
// @Param type query string false "Filter by alert type"
// @Success 200 {object} HistoryResponse
// @Failure 400 {object} map[string]interface{} "Unknown area"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /alerts/history [get]
func (h *Handler) alertHistory(c *gin.Context) {
	log := h.logger.WithField("method", "alertHistory")

	area := c.Query("area")
	if !models.ValidArea(area) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unknown area"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	alertType := c.Query("type")

	alerts, err := h.alertService.History(c.Request.Context(), area, alertType, limit)
	if err != nil {
		log.WithError(err).Error("Failed to fetch alert history from service")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, HistoryResponse{
		Success: true,
		Area:    area,
		Count:   len(alerts),
		Alerts:  ModelsToAlertResponses(alerts),
	})
}

// @Summary Get recent alerts
// @Description Get alerts sent over the last hours, optionally filtered by area.
// @Tags Alerts
// @Accept json
// @Produce json
// @Param hours query int false "Look-back window in hours" default(24)
// @Param area query string false "Area code"
// @Success 200 {array} AlertResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/recent [get]
func (h *Handler) alertsRecent(c *gin.Context) {
	log := h.logger.WithField("method", "alertsRecent")

	hours, _ := strconv.Atoi(c.DefaultQuery("hours", "24"))
	area := c.Query("area")
	if area != "" && !models.ValidArea(area) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown area"})
		return
	}

	alerts, err := h.alertService.Recent(c.Request.Context(), hours, area)
	if err != nil {
		log.WithError(err).Error("Failed to fetch recent alerts from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToAlertResponses(alerts))
}

// @Summary Get alert summary
// @Description Get aggregate counters over all sent alerts.
// @Tags Alerts
// @Accept json
// @Produce json
// @Success 200 {object} SummaryResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/summary [get]
func (h *Handler) alertsSummary(c *gin.Context) {
	log := h.logger.WithField("method", "alertsSummary")

	summary, err := h.alertService.Summary(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to fetch alert summary from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelToSummaryResponse(summary))
}

// @Summary Broadcast an alert
// @Description Send an alert to all verified residents of an area. Requires API key.
// @Tags Broadcast
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param broadcast body BroadcastRequest true "Broadcast request"
// @Success 200 {object} BroadcastResponse
// @Failure 400 {object} map[string]interface{} "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /broadcast [post]
func (h *Handler) broadcast(c *gin.Context) {
	var input BroadcastRequest
	log := h.logger.WithField("method", "broadcast")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if !models.ValidArea(input.Area) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unknown area"})
		return
	}
	switch input.AlertType {
	case models.AlertTypeHealth:
		if !models.ValidHealthCondition(input.Condition) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unknown health condition"})
			return
		}
	case models.AlertTypeSafety:
		if !models.ValidCrimeType(input.CrimeType) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unknown crime type"})
			return
		}
	case models.AlertTypeCustom:
		if input.Message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "custom alert requires a message"})
			return
		}
	}

	broadcastInput := DTOToBroadcastInput(input)
	broadcastInput.TriggeredBy = "staff"

	alert, err := h.alertService.Broadcast(c.Request.Context(), broadcastInput)
	if err != nil {
		log.WithError(err).Error("Failed to broadcast alert in service")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, BroadcastResponse{
		Success: true,
		Alert:   ModelToAlertResponse(alert),
	})
}

// @Summary List broadcast areas
// @Description List all known areas with their verified resident counts. Requires API key.
// @Tags Broadcast
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} AreaResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /broadcast/areas [get]
func (h *Handler) broadcastAreas(c *gin.Context) {
	log := h.logger.WithField("method", "broadcastAreas")

	stats, err := h.alertService.AreaStats(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to fetch area stats from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, AreaStatsToResponses(stats))
}

// @Summary Submit a health report
// @Description Record observed disease cases in an area. May trigger an automatic outbreak alert. Requires API key.
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param report body HealthReportRequest true "Health report request"
// @Success 200 {object} ReportResponse
// @Failure 400 {object} map[string]interface{} "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /reports/health [post]
func (h *Handler) reportHealth(c *gin.Context) {
	var input HealthReportRequest
	log := h.logger.WithField("method", "reportHealth")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if !models.ValidArea(input.Area) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unknown area"})
		return
	}
	if !models.ValidHealthCondition(input.Condition) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unknown health condition"})
		return
	}

	report := &models.HealthReport{
		Area:       input.Area,
		Condition:  input.Condition,
		Cases:      input.Cases,
		ReportedBy: input.ReportedBy,
	}
	alert, err := h.reportService.SubmitHealthReport(c.Request.Context(), report)
	if err != nil {
		log.WithError(err).Error("Failed to submit health report in service")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
		return
	}

	response := ReportResponse{Success: true}
	if alert != nil {
		response.AlertTriggered = true
		response.Alert = ModelToAlertResponse(alert)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Submit a crime report
// @Description Record a security incident observed in an area. Requires API key.
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param report body CrimeReportRequest true "Crime report request"
// @Success 200 {object} ReportResponse
// @Failure 400 {object} map[string]interface{} "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /reports/crime [post]
func (h *Handler) reportCrime(c *gin.Context) {
	var input CrimeReportRequest
	log := h.logger.WithField("method", "reportCrime")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if !models.ValidArea(input.Area) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unknown area"})
		return
	}
	if !models.ValidCrimeType(input.CrimeType) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unknown crime type"})
		return
	}

	report := &models.CrimeReport{
		Area:       input.Area,
		CrimeType:  input.CrimeType,
		ReportedBy: input.ReportedBy,
	}
	if err := h.reportService.SubmitCrimeReport(c.Request.Context(), report); err != nil {
		log.WithError(err).Error("Failed to submit crime report in service")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ReportResponse{Success: true})
}

// @Summary Get system statistics
// @Description Get user, report and alert counters. Requires API key.
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	stats, err := h.statsService.GetStats(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get stats from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelToStatsResponse(stats))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
