// Package dto defines data transfer objects for the KASI lunar calendar API responses.
package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LunarResponse represents the JSON envelope of the getLunCalInfo endpoint.
type LunarResponse struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			Items      json.RawMessage `json:"items"`
			TotalCount int             `json:"totalCount"`
		} `json:"body"`
	} `json:"response"`
}

// LunarItem is one day of the response.
type LunarItem struct {
	SolYear      Text `json:"solYear"`
	SolMonth     Text `json:"solMonth"`
	SolDay       Text `json:"solDay"`
	LunYear      Text `json:"lunYear"`
	LunMonth     Text `json:"lunMonth"`
	LunDay       Text `json:"lunDay"`
	LunLeapmonth Text `json:"lunLeapmonth"` // "평" or "윤"
	LunSecha     Text `json:"lunSecha"`     // year label, e.g. "갑진(甲辰)"
	LunWolgeon   Text `json:"lunWolgeon"`   // month label
	LunIljin     Text `json:"lunIljin"`     // day label
	DateName     Text `json:"dateName,omitempty"`
}

// Items returns the items of the body. The API sends an empty string when nothing matched,
// a single object for one match and an array otherwise.
func (r LunarResponse) Items() ([]LunarItem, error) {
	raw := bytes.TrimSpace(r.Response.Body.Items)
	if len(raw) == 0 || bytes.Equal(raw, []byte(`""`)) || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var wrapper struct {
		Item json.RawMessage `json:"item"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	item := bytes.TrimSpace(wrapper.Item)
	if len(item) == 0 {
		return nil, nil
	}

	if item[0] == '[' {
		var out []LunarItem
		if err := json.Unmarshal(item, &out); err != nil {
			return nil, fmt.Errorf("decode item list: %w", err)
		}
		return out, nil
	}
	var one LunarItem
	if err := json.Unmarshal(item, &one); err != nil {
		return nil, fmt.Errorf("decode item: %w", err)
	}
	return []LunarItem{one}, nil
}

// Text accepts both JSON strings and numbers.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	if string(b) == "null" {
		*t = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}
