// File: internal/dto/datetime.go
package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateTimeLayout 不帶時區時以 UTC 解讀
const DateTimeLayout = "2006-01-02 15:04"

var dateTimeLayouts = []string{
	time.RFC3339,
	DateTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// DateTime 接受 RFC3339 或 YYYY-MM-DD HH:MM，輸出 RFC3339
type DateTime struct {
	time.Time
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("datetime must be a string in format YYYY-MM-DD HH:MM")
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("datetime must be in format YYYY-MM-DD HH:MM")
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.UTC().Format(time.RFC3339))
}
