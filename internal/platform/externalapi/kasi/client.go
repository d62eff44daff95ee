package kasi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"saju_backend/internal/feature/calendar/domain"
	"saju_backend/internal/feature/calendar/domain/entity"
	"saju_backend/internal/feature/calendar/usecase"
	chartentity "saju_backend/internal/feature/chart/domain/entity"
	"saju_backend/internal/platform/externalapi/kasi/dto"
)

// resultOK はAPIヘッダーの正常終了コードです。
const resultOK = "00"

// LunarClient はKASI陰暦APIから暦情報を取得するLunarProvider実装です。
type LunarClient struct {
	cfg    Config
	client *http.Client
}

// LunarClientがLunarProviderを実装していることをコンパイル時に検証します。
var _ usecase.LunarProvider = (*LunarClient)(nil)

// NewLunarClient は指定された設定とHTTPクライアントでLunarClientの新しいインスタンスを生成します。
func NewLunarClient(cfg Config, client *http.Client) *LunarClient {
	return &LunarClient{cfg: cfg, client: client}
}

// FetchDay はKASI APIから太陽暦の日付に対応する陰暦情報を取得し、CalendarDayとして返します。
// 該当データがない場合は domain.ErrNotFound を返します。
func (c *LunarClient) FetchDay(ctx context.Context, date time.Time) (entity.CalendarDay, error) {
	day := entity.DayStart(date)

	q := url.Values{}
	q.Set("solYear", strconv.Itoa(day.Year()))
	q.Set("solMonth", fmt.Sprintf("%02d", int(day.Month())))
	q.Set("solDay", fmt.Sprintf("%02d", day.Day()))
	q.Set("ServiceKey", c.cfg.ServiceKey)
	q.Set("_type", "json")

	u := fmt.Sprintf("%s/getLunCalInfo?%s", strings.TrimRight(c.cfg.BaseURL, "/"), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.CalendarDay{}, fmt.Errorf("%w: %v", domain.ErrProviderError, err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		// タイムアウトの判定は呼び出し元で行うため、ラップして返す
		return entity.CalendarDay{}, fmt.Errorf("kasi request: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode == http.StatusNotFound {
		return entity.CalendarDay{}, fmt.Errorf("kasi %s: %w", day.Format(entity.DateLayout), domain.ErrNotFound)
	}
	if res.StatusCode >= 400 {
		return entity.CalendarDay{}, fmt.Errorf("%w: kasi http %d", domain.ErrProviderError, res.StatusCode)
	}

	var body dto.LunarResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return entity.CalendarDay{}, fmt.Errorf("%w: decode: %v", domain.ErrProviderError, err)
	}
	if code := body.Response.Header.ResultCode; code != resultOK {
		return entity.CalendarDay{}, fmt.Errorf("%w: kasi %s %s", domain.ErrProviderError, code, body.Response.Header.ResultMsg)
	}

	items, err := body.Items()
	if err != nil {
		return entity.CalendarDay{}, fmt.Errorf("%w: %v", domain.ErrProviderError, err)
	}
	if len(items) == 0 {
		return entity.CalendarDay{}, fmt.Errorf("kasi %s: %w", day.Format(entity.DateLayout), domain.ErrNotFound)
	}

	return toCalendarDay(day, items[0])
}

// toCalendarDay はレスポンスの1件をドメインエンティティに変換します。
func toCalendarDay(day time.Time, item dto.LunarItem) (entity.CalendarDay, error) {
	month, err := strconv.Atoi(string(item.LunMonth))
	if err != nil || month < 1 || month > 12 {
		return entity.CalendarDay{}, fmt.Errorf("%w: parse lunMonth %q", domain.ErrProviderError, item.LunMonth)
	}
	d, err := strconv.Atoi(string(item.LunDay))
	if err != nil || d < 1 || d > 30 {
		return entity.CalendarDay{}, fmt.Errorf("%w: parse lunDay %q", domain.ErrProviderError, item.LunDay)
	}

	out := entity.CalendarDay{
		Date:       day,
		LunarMonth: month,
		LunarDay:   d,
		LeapMonth:  strings.TrimSpace(string(item.LunLeapmonth)) == "윤",
		Source:     entity.SourceProvider,
	}

	if label := strings.TrimSpace(string(item.LunIljin)); label != "" {
		p, err := chartentity.ParsePillar(label)
		if err != nil {
			slog.Warn("ignoring unparseable day label", "date", day.Format(entity.DateLayout), "label", label, "error", err)
		} else {
			out.DayLabel = &p
		}
	}

	if name := strings.TrimSpace(string(item.DateName)); name != "" {
		if term, ok := entity.ParseSolarTerm(name); ok {
			out.SolarTerm = &entity.SolarTermEvent{Term: term, At: day}
		}
	}
	return out, nil
}
