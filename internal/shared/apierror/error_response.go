// Package apierror はHTTPエラーレスポンスの共通形式を定義します。
package apierror

// ErrorResponse はエラー時のレスポンスボディです。
type ErrorResponse struct {
	Error string `json:"error"`
}
