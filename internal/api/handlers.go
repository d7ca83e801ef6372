package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oncorisk-client/internal/domain"
	"github.com/oncorisk-client/internal/form"
)

// analyzeRequest is the gateway's submission body: raw (string/bool) feature
// values keyed by schema field key, exactly as a form would hold them.
type analyzeRequest struct {
	Condition domain.ConditionType `json:"condition" binding:"required"`
	Features  map[string]any       `json:"features" binding:"required"`
	Threshold *float64             `json:"threshold"`
}

// handleListConditions lists the registered condition tags.
func (s *Server) handleListConditions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"conditions": s.registry.Conditions()})
}

// handleGetSchema returns the field descriptors for one condition, for
// schema-driven form rendering.
func (s *Server) handleGetSchema(c *gin.Context) {
	condition := domain.ConditionType(c.Param("condition"))
	schema, err := s.registry.Get(condition)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"condition": schema.Condition,
		"fields":    schema.Fields,
	})
}

// handleAnalyze runs the full pipeline for one submission: start a session,
// load the raw features, validate, build, submit, interpret. Each request
// gets its own flow, so concurrent submissions never share a record.
func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flow := s.analysis.NewFlow()
	if _, err := flow.StartSession(req.Condition); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	for key, value := range req.Features {
		if err := flow.SetField(key, value); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	threshold := s.analysis.DefaultThreshold()
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	result, err := flow.Analyze(c.Request.Context(), threshold)
	if err != nil {
		s.writeAnalyzeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// handleExtract accepts a multipart report upload, runs server-side
// extraction for the given condition and returns the merged record so the
// caller can autofill its form. The gateway keeps no form state between
// calls: a client with a partly filled form sends its current values in the
// optional "features" field (a JSON object) and gets the full merged record
// back to round-trip.
func (s *Server) handleExtract(c *gin.Context) {
	condition := domain.ConditionType(c.PostForm("type"))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	flow := s.analysis.NewFlow()
	session, err := flow.StartSession(condition)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if raw := c.PostForm("features"); raw != "" {
		var features map[string]any
		if err := json.Unmarshal([]byte(raw), &features); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "features must be a JSON object"})
			return
		}
		for key, value := range features {
			if err := flow.SetField(key, value); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	var profile *domain.UserProfile
	if uid := c.PostForm("uid"); uid != "" && s.profiles != nil {
		profile, err = s.profiles.GetProfile(c.Request.Context(), uid)
		if err != nil {
			s.logger.WithError(err).WithField("uid", uid).Warn("Profile lookup failed")
			profile = nil
		}
	}

	summary, err := flow.ExtractDocument(c.Request.Context(), fileHeader.Filename, file, profile)
	if err != nil {
		s.writeAnalyzeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"merged_fields":   summary.MergedFields,
		"doctor_notified": summary.DoctorNotified,
		"record":          recordSnapshot(session),
	})
}

// recordSnapshot serialises a session's record in schema field order.
func recordSnapshot(session *form.Session) map[string]any {
	snapshot := make(map[string]any, len(session.Schema().Fields))
	for _, key := range session.Schema().Keys() {
		if v, ok := session.Record().Value(key); ok {
			snapshot[key] = v
		}
	}
	return snapshot
}

// writeAnalyzeError maps pipeline errors onto HTTP statuses. Server error
// bodies are surfaced verbatim for diagnosis.
func (s *Server) writeAnalyzeError(c *gin.Context, err error) {
	var (
		validationErrs domain.ValidationErrors
		thresholdErr   *domain.ThresholdError
		serverErr      *domain.ServerError
		transportErr   *domain.TransportError
		malformedErr   *domain.MalformedResponseError
	)

	switch {
	case errors.As(err, &validationErrs):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validationErrs})
	case errors.As(err, &thresholdErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": thresholdErr.Error()})
	case errors.As(err, &serverErr):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":       "upstream error",
			"status_code": serverErr.StatusCode,
			"body":        serverErr.Body,
		})
	case errors.As(err, &transportErr):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "could not reach the analysis service"})
	case errors.As(err, &malformedErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": malformedErr.Error()})
	case errors.Is(err, domain.ErrExtractionFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnknownCondition):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrStaleSession):
		c.JSON(http.StatusConflict, gin.H{"error": "form session is no longer active"})
	default:
		s.logger.WithError(err).Error("Unhandled pipeline error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
