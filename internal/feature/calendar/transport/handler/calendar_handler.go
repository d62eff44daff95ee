// Package handler はcalendarフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"saju_backend/internal/feature/calendar/domain/entity"
	"saju_backend/internal/feature/calendar/transport/http/dto"
	"saju_backend/internal/platform/logger"
	"saju_backend/internal/shared/apierror"
)

// CalendarUsecase は暦アダプターのインターフェースを定義します。
type CalendarUsecase interface {
	Lookup(ctx context.Context, date time.Time) entity.CalendarDay
	Clear(ctx context.Context) error
}

// CalendarHandler は暦情報のHTTPリクエストを処理します。
type CalendarHandler struct {
	uc CalendarUsecase
}

// NewCalendarHandler は指定されたusecaseでCalendarHandlerの新しいインスタンスを生成します。
func NewCalendarHandler(uc CalendarUsecase) *CalendarHandler {
	return &CalendarHandler{uc: uc}
}

// GetDay は太陽暦の日付に対応する暦情報を返します。
//
// エンドポイント例:
// GET /v1/calendar/2024-02-10
func (h *CalendarHandler) GetDay(c *gin.Context) {
	date, err := time.ParseInLocation(entity.DateLayout, c.Param("date"), entity.Zone)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.ErrorResponse{Error: "date must be YYYY-MM-DD"})
		return
	}
	c.JSON(http.StatusOK, ToCalendarDayResponse(h.uc.Lookup(c.Request.Context(), date)))
}

// ClearCache はプロバイダー結果のキャッシュを破棄します。
//
// エンドポイント例:
// DELETE /v1/calendar/cache
func (h *CalendarHandler) ClearCache(c *gin.Context) {
	if err := h.uc.Clear(c.Request.Context()); err != nil {
		logger.FromContext(c.Request.Context()).Error("calendar cache clear failed", "error", err)
		c.JSON(http.StatusInternalServerError, apierror.ErrorResponse{Error: "failed to clear cache"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ToCalendarDayResponse は暦情報をレスポンスDTOに変換します。
func ToCalendarDayResponse(d entity.CalendarDay) dto.CalendarDayResponse {
	res := dto.CalendarDayResponse{
		Date:       d.Key(),
		LunarMonth: d.LunarMonth,
		LunarDay:   d.LunarDay,
		LeapMonth:  d.LeapMonth,
		SolarTerm:  toTerm(d.SolarTerm),
		MonthTerm:  toTerm(d.MonthTerm),
		Source:     string(d.Source),
	}
	if d.MonthOverride != nil {
		res.MonthOverride = d.MonthOverride.String()
	}
	if d.DayLabel != nil {
		res.DayLabel = d.DayLabel.String()
	}
	return res
}

func toTerm(e *entity.SolarTermEvent) *dto.SolarTermResponse {
	if e == nil {
		return nil
	}
	return &dto.SolarTermResponse{
		Name:   e.Term.String(),
		Hanja:  e.Term.Hanja(),
		Hangul: e.Term.Hangul(),
		At:     e.At.In(entity.Zone).Format(time.RFC3339),
	}
}
