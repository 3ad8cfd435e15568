package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fiterunited/fineract-template/internal/apperrors"
	"github.com/fiterunited/fineract-template/internal/dto"
	"github.com/fiterunited/fineract-template/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondWithError maps a service error onto the HTTP status of its kind.
// Uncategorised failures are logged and answered with the fallback message.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		logger.Warn("Validation error", slog.String("error", err.Error()))
		resp := dto.ErrorResponse{Error: err.Error(), Code: "validation.msg.validation.errors.exist"}
		var verr *apperrors.ValidationError
		if errors.As(err, &verr) {
			for _, fe := range verr.Errors {
				resp.Errors = append(resp.Errors, dto.ErrorResponseItem{
					ParameterName:                fe.Parameter,
					UserMessageGlobalisationCode: fe.Code,
					DefaultUserMessage:           fe.Message,
				})
			}
		}
		c.JSON(http.StatusBadRequest, resp)
	case apperrors.KindNotFound:
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case apperrors.KindDomainRule:
		logger.Warn("Domain rule violated", slog.String("error", err.Error()))
		resp := dto.ErrorResponse{Error: err.Error()}
		var rerr *apperrors.DomainRuleError
		if errors.As(err, &rerr) {
			resp.Code = rerr.Code
		}
		c.JSON(http.StatusForbidden, resp)
	case apperrors.KindDuplicateKey:
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		resp := dto.ErrorResponse{Error: err.Error()}
		var derr *apperrors.DuplicateKeyError
		if errors.As(err, &derr) {
			resp.Code = derr.Code
		}
		c.JSON(http.StatusConflict, resp)
	case apperrors.KindUnknownIntegrity:
		logger.Error("Unknown data integrity issue", slog.String("error", err.Error()))
		resp := dto.ErrorResponse{Error: err.Error()}
		var ierr *apperrors.IntegrityError
		if errors.As(err, &ierr) {
			resp.Code = ierr.Code
		}
		c.JSON(http.StatusInternalServerError, resp)
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fallback})
	}
}

// parseIDParam reads a positive int64 path parameter.
func parseIDParam(c *gin.Context, logger *slog.Logger, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		logger.Warn("Invalid path parameter", slog.String("param", name), slog.String("value", raw))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid " + name + ": " + raw})
		return 0, false
	}
	return id, true
}

// requireUserID reads the authenticated user id set by the auth middleware.
func requireUserID(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
