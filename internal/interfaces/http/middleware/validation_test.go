package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hris/backend/internal/interfaces/http/dto"
)

type validationTestPayload struct {
	Email     string `json:"email" binding:"required,email"`
	Name      string `json:"name" binding:"required,min=2,max=50"`
	Status    string `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	Headcount int    `json:"headcount" binding:"omitempty,gte=0"`
}

func TestSetupValidator_UsesJSONFieldNames(t *testing.T) {
	SetupValidator()

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var payload validationTestPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"email":"not-an-email","name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	// Field names come from the json tags, not the Go struct fields
	assert.Contains(t, rec.Body.String(), `"email"`)
	assert.Contains(t, rec.Body.String(), `"name"`)
	assert.NotContains(t, rec.Body.String(), "Email")
}

func TestFormatValidationErrors(t *testing.T) {
	SetupValidator()

	v := validator.New()
	err := v.Struct(struct {
		Email string `validate:"required,email"`
		Age   int    `validate:"gte=18"`
	}{Email: "bad", Age: 10})
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-123")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 2)
}

func TestFormatValidationErrors_NonValidatorError(t *testing.T) {
	resp := FormatValidationErrors(assert.AnError, "")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Empty(t, resp.Error.Details)
}

func TestHandleValidationError_RequestIDFromContext(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.POST("/test", func(c *gin.Context) {
		var payload validationTestPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "trace-me")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "trace-me")
}

func TestGetValidationMessage(t *testing.T) {
	v := validator.New()

	messageFor := func(s interface{}) string {
		err := v.Struct(s)
		require.Error(t, err)
		errs, ok := err.(validator.ValidationErrors)
		require.True(t, ok)
		return getValidationMessage(errs[0])
	}

	assert.Equal(t, "This field is required", messageFor(struct {
		F string `validate:"required"`
	}{}))

	assert.Equal(t, "Invalid email format", messageFor(struct {
		F string `validate:"email"`
	}{F: "nope"}))

	assert.Equal(t, "Must be at least 5 characters", messageFor(struct {
		F string `validate:"min=5"`
	}{F: "ab"}))

	assert.Equal(t, "Must be at least 5", messageFor(struct {
		F int `validate:"min=5"`
	}{F: 2}))

	assert.Equal(t, "Must be one of: A B", messageFor(struct {
		F string `validate:"oneof=A B"`
	}{F: "C"}))

	assert.Equal(t, "Invalid UUID format", messageFor(struct {
		F string `validate:"uuid"`
	}{F: "nope"}))

	assert.Equal(t, "Invalid value", messageFor(struct {
		F string `validate:"ip"`
	}{F: "nope"}))
}
