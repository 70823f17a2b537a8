package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"progress-hub/backend/internal/dto"
	"progress-hub/backend/internal/service"
	apperr "progress-hub/backend/pkg/errors"
	"progress-hub/backend/pkg/response"
	"progress-hub/backend/pkg/storage"
)

// 资源不存在时的业务错误码
var notFoundCodes = map[string]int{
	"trainer":         21001,
	"training_plan":   21002,
	"workout":         21003,
	"exercise":        21004,
	"course":          22101,
	"module":          22102,
	"lesson":          22103,
	"prerequisite":    22104,
	"enrollment":      22201,
	"lesson_progress": 22202,
	"course_progress": 22203,
}

// handleServiceError 将 Service 层错误映射为统一响应
func handleServiceError(c *gin.Context, err error) {
	var (
		ve *apperr.ValidationError
		nf *apperr.NotFoundError
		pn *apperr.PrerequisiteNotMetError
	)

	switch {
	case errors.As(err, &ve):
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", ve.Error())
	case errors.As(err, &nf):
		code, ok := notFoundCodes[nf.Resource]
		if !ok {
			code = 10004
		}
		response.NotFound(c, code, nf.Error())
	case errors.As(err, &pn):
		response.ErrorWithData(c, http.StatusBadRequest, 22001, "先修条件未满足", dto.UnmetPrerequisite{
			PrerequisiteID: pn.PrerequisiteID,
			Type:           pn.Type,
			Description:    pn.Description,
		})
	case errors.Is(err, apperr.ErrForbidden):
		response.Forbidden(c, 10003, "无权操作该资源")
	case errors.Is(err, storage.ErrStorageDisabled):
		response.ServiceUnavailable(c, 23001, "对象存储未启用")
	case errors.Is(err, service.ErrRefreshTokenInvalid):
		response.Unauthorized(c, 11001, "Refresh Token 无效或已过期")
	case errors.Is(err, service.ErrTokenRevoked):
		response.Unauthorized(c, 11002, "Token 已被吊销")
	case errors.Is(err, service.ErrExportNoData):
		response.NotFound(c, 24001, "没有可导出的数据")
	default:
		response.InternalError(c)
	}
}
