package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/phone-reserve/internal/httperr"
	"github.com/BruksfildServices01/phone-reserve/internal/imaging"
)

type errorInfo struct {
	status  int
	message string
}

var businessErrors = map[string]errorInfo{
	"store_not_found":         {http.StatusNotFound, "매장을 찾을 수 없습니다."},
	"product_not_found":       {http.StatusNotFound, "상품을 찾을 수 없습니다."},
	"reservation_not_found":   {http.StatusNotFound, "예약을 찾을 수 없습니다."},
	"product_unavailable":     {http.StatusConflict, "현재 예약할 수 없는 상품입니다."},
	"invalid_date":            {http.StatusBadRequest, "날짜 형식이 올바르지 않습니다."},
	"date_out_of_range":       {http.StatusBadRequest, "예약 가능한 날짜가 아닙니다."},
	"outside_operating_hours": {http.StatusBadRequest, "영업시간 외의 시간입니다."},
	"slot_in_past":            {http.StatusBadRequest, "이미 지난 시간입니다."},
	"slot_taken":              {http.StatusConflict, "방금 다른 고객이 예약한 시간입니다"},
	"invalid_state":           {http.StatusConflict, "현재 상태에서는 처리할 수 없습니다."},
	"action_not_allowed":      {http.StatusForbidden, "허용되지 않은 요청입니다."},
	"invalid_status":          {http.StatusBadRequest, "상태 값이 올바르지 않습니다."},
}

// writeError maps use case errors onto the JSON error envelope. Anything
// that is not a known business error is logged and reported as a 500.
func writeError(c *gin.Context, err error) {
	if code, ok := httperr.BusinessCode(err); ok {
		if info, ok := businessErrors[code]; ok {
			httperr.Write(c, info.status, code, info.message)
			return
		}
		httperr.BadRequest(c, code, "요청을 처리할 수 없습니다.")
		return
	}

	switch {
	case errors.Is(err, imaging.ErrUnsupported):
		httperr.BadRequest(c, "unsupported_image", "JPG, PNG, WEBP 이미지만 업로드할 수 있습니다.")
		return
	case errors.Is(err, imaging.ErrTooLarge):
		httperr.Write(c, http.StatusRequestEntityTooLarge, "image_too_large", "이미지 용량이 너무 큽니다.")
		return
	}

	zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	httperr.Internal(c, "internal_error", "일시적인 오류가 발생했습니다. 잠시 후 다시 시도해 주세요.")
}

func invalidRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error_code": "invalid_request",
		"message":    "입력값을 확인해 주세요.",
		"details":    err.Error(),
	})
}

// paramID reads a positive numeric path parameter.
func paramID(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		httperr.BadRequest(c, "invalid_id", "잘못된 ID입니다.")
		return 0, false
	}
	return uint(n), true
}

func pageParams(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	return page, limit, (page - 1) * limit
}
