package handler

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/KasumiMercury/primind-deadline/internal/domain"
)

// instant accepts either an RFC3339 string or a stored
// {"seconds", "nanoseconds"} pair.
type instant struct {
	time.Time
}

func (i *instant) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidTimestamp, err)
		}
		i.Time = parsed
		return nil
	}

	var ts domain.Timestamp
	if err := json.Unmarshal(data, &ts); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidTimestamp, err)
	}
	parsed, err := ts.Time()
	if err != nil {
		return err
	}
	i.Time = parsed
	return nil
}

func (i *instant) value() time.Time {
	if i == nil {
		return time.Time{}
	}
	return i.Time
}
