// Package handler はchartフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	calentity "saju_backend/internal/feature/calendar/domain/entity"
	"saju_backend/internal/feature/chart/domain"
	"saju_backend/internal/feature/chart/domain/entity"
	"saju_backend/internal/feature/chart/transport/http/dto"
	"saju_backend/internal/platform/logger"
	"saju_backend/internal/shared/apierror"
)

// ChartUsecase は命式算出のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ChartUsecase interface {
	ComputeChart(ctx context.Context, birth time.Time, hour int, opts entity.ResolutionOptions) (entity.Chart, error)
	ComputeChartNow(ctx context.Context, loc *time.Location, opts entity.ResolutionOptions) (entity.Chart, error)
}

// ChartHandler は命式算出のHTTPリクエストを処理します。
type ChartHandler struct {
	uc ChartUsecase
}

// NewChartHandler は指定されたusecaseでChartHandlerの新しいインスタンスを生成します。
func NewChartHandler(uc ChartUsecase) *ChartHandler {
	return &ChartHandler{uc: uc}
}

// Compute は出生情報を受け取り、命式をJSONで返します。
//
// エンドポイント例:
// POST /v1/charts {"birth_date":"2024-02-10","hour":12,"gender":"male"}
func (h *ChartHandler) Compute(c *gin.Context) {
	var req dto.ChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.ErrorResponse{Error: "invalid request"})
		return
	}

	opts, loc, err := toOptions(req.ChartOptionsRequest)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.ErrorResponse{Error: err.Error()})
		return
	}
	birth, err := time.ParseInLocation(calentity.DateLayout, req.BirthDate, loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.ErrorResponse{Error: "birth_date must be YYYY-MM-DD"})
		return
	}
	birth = birth.Add(time.Duration(req.Minute) * time.Minute)

	chart, err := h.uc.ComputeChart(c.Request.Context(), birth, *req.Hour, opts)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ToChartResponse(chart))
}

// Now は現在時刻の命式を返します。Compute と同じ補正オプションをクエリで受け取ります。
//
// エンドポイント例:
// GET /v1/charts/now?gender=female&longitude=126.978&latitude=37.5665
func (h *ChartHandler) Now(c *gin.Context) {
	var req dto.ChartOptionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.ErrorResponse{Error: "invalid query"})
		return
	}
	opts, loc, err := toOptions(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.ErrorResponse{Error: err.Error()})
		return
	}
	chart, err := h.uc.ComputeChartNow(c.Request.Context(), loc, opts)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ToChartResponse(chart))
}

// fail は入力エラーを400、それ以外を500に対応付けます。
func (h *ChartHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, apierror.ErrorResponse{Error: err.Error()})
		return
	}
	logger.FromContext(c.Request.Context()).Error("chart computation failed", "error", err)
	c.JSON(http.StatusInternalServerError, apierror.ErrorResponse{Error: "internal server error"})
}

// toOptions はリクエストのオプションを検証し、出生地の時計とともに返します。
func toOptions(req dto.ChartOptionsRequest) (entity.ResolutionOptions, *time.Location, error) {
	g, ok := entity.ParseGender(req.Gender)
	if !ok {
		return entity.ResolutionOptions{}, nil, errors.New("gender must be male or female")
	}
	loc := calentity.Zone
	if req.TimeZone != "" {
		l, err := time.LoadLocation(req.TimeZone)
		if err != nil {
			return entity.ResolutionOptions{}, nil, fmt.Errorf("unknown time_zone %q", req.TimeZone)
		}
		loc = l
	}
	opts := entity.ResolutionOptions{
		Gender:            g,
		UseLocalTime:      req.UseLocalTime,
		UseDaylightSaving: req.UseDaylightSaving,
		UseSolarTerms:     req.UseSolarTerms,
		ReferenceMeridian: req.ReferenceMeridian,
	}
	switch {
	case req.Longitude != nil && req.Latitude != nil:
		opts.Location = &entity.Location{Longitude: *req.Longitude, Latitude: *req.Latitude}
	case req.Longitude != nil || req.Latitude != nil:
		return entity.ResolutionOptions{}, nil, errors.New("longitude and latitude must be given together")
	}
	return opts, loc, nil
}

// ToChartResponse は命式をレスポンスDTOに変換します。
func ToChartResponse(c entity.Chart) dto.ChartResponse {
	res := dto.ChartResponse{
		Pillars: dto.PillarsResponse{
			Year:  toPillar(c.Year),
			Month: toPillar(c.Month),
			Day:   toPillar(c.Day),
			Hour:  toPillar(c.Hour),
		},
		DayMasterElement:  c.DayMasterElement.String(),
		DayMasterPolarity: c.DayMasterPolarity.String(),
		MonthElement:      c.MonthElement.String(),
		MonthLayer:        c.MonthLayer.String(),
		Confidence:        c.Confidence.String(),
		CalendarSource:    c.CalendarSource,
		NormalizedTime:    c.NormalizedTime.Format(time.RFC3339),
		Relations:         make([]dto.RelationResponse, 0, len(c.Relations)),
		ElementCounts:     make(map[string]int, entity.ElementCount),
	}
	for _, r := range c.Relations {
		res.Relations = append(res.Relations, dto.RelationResponse{
			Position: r.Position.String(),
			Symbol:   r.Symbol.Hanja(),
			Hidden:   r.Hidden,
			Category: r.Category.String(),
		})
	}
	for e, n := range c.ElementCounts {
		res.ElementCounts[entity.Element(e).String()] = n
	}
	if c.Luck != nil {
		luck := &dto.LuckResponse{Forward: c.Luck.Forward, StartAge: c.Luck.StartAge}
		for _, lp := range c.Luck.Pillars {
			luck.Pillars = append(luck.Pillars, dto.LuckPillarResponse{StartAge: lp.StartAge, Pillar: toPillar(lp.Pillar)})
		}
		res.Luck = luck
	}
	return res
}

func toPillar(p entity.Pillar) dto.PillarResponse {
	symbols := p.Hidden()
	hidden := make([]string, 0, len(symbols))
	for _, s := range symbols {
		hidden = append(hidden, s.Hanja())
	}
	return dto.PillarResponse{
		Hanja:    p.String(),
		Hangul:   p.Hangul(),
		Ten:      p.Ten.Hanja(),
		Twelve:   p.Twelve.Hanja(),
		Element:  p.Element().String(),
		Polarity: p.Polarity().String(),
		Hidden:   hidden,
	}
}
