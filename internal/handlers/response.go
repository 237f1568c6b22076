package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"laptop-storefront/internal/models"
)

// Estructuras para respuestas
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Field  string            `json:"field,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

const (
	CodeNotFound          = "NOT_FOUND"
	CodeValidation        = "VALIDATION_ERROR"
	CodeCapacity          = "CAPACITY_REACHED"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeRemoteFailure     = "REMOTE_FAILURE"
)

// respondError traduce los errores de dominio a status HTTP.
// Cualquier otro error es una falla remota: se registra y se responde 500 sin detalles.
func respondError(c *gin.Context, log logrus.FieldLogger, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: verr.Message, Code: CodeValidation, Field: verr.Field})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "resource not found", Code: CodeNotFound})
	case errors.Is(err, models.ErrCapacityReached):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: CodeCapacity})
	case errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: CodeInvalidTransition})
	default:
		_ = c.Error(err)
		log.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		}).Error("request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "the operation could not be completed, please retry",
			Code:  CodeRemoteFailure,
		})
	}
}

// bindJSON decodifica y valida el body con los tags binding.
// Retorna false si ya respondió 400.
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		c.JSON(http.StatusBadRequest, bindingError(err))
		return false
	}
	return true
}

func bindingError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ErrorResponse{Error: "invalid request body: " + err.Error(), Code: CodeValidation}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[jsonName(fe.Field())] = fieldMessage(fe)
	}
	return ErrorResponse{Error: "validation failed", Code: CodeValidation, Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	name := jsonName(fe.Field())
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email address"
	case "min":
		return name + " must be at least " + fe.Param()
	case "max":
		return name + " must be at most " + fe.Param()
	case "oneof":
		return name + " must be one of: " + fe.Param()
	}
	return name + " is invalid"
}

// UseJSONFieldNames hace que los errores de validación usen el nombre JSON del campo
func UseJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// jsonName pasa CustomerName a customerName
func jsonName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// respondBulk responde 200 si todo salió bien y 207 si algo falló
func respondBulk(c *gin.Context, result models.BulkResult) {
	status := http.StatusOK
	if result.Failed > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, result)
}

// BulkRequest es el body de las operaciones masivas
type BulkRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,max=100"`
}

type BulkStatusRequest struct {
	IDs    []string            `json:"ids" binding:"required,min=1,max=100"`
	Status models.ReviewStatus `json:"status" binding:"required"`
}
