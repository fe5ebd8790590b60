package domain

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"
)

// Timestamp is the raw seconds/nanoseconds pair documents are stored with.
type Timestamp struct {
	Seconds     int64 `json:"seconds"`
	Nanoseconds int32 `json:"nanoseconds"`
}

// Time converts the pair into an instant. Nanoseconds must lie in
// [0, 1e9) and the instant must fall within years 1 through 9999.
func (t Timestamp) Time() (time.Time, error) {
	pb := &timestamppb.Timestamp{Seconds: t.Seconds, Nanos: t.Nanoseconds}
	if err := pb.CheckValid(); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
	}
	return pb.AsTime(), nil
}

func (t Timestamp) IsZero() bool {
	return t.Seconds == 0 && t.Nanoseconds == 0
}

func TimestampFromTime(t time.Time) Timestamp {
	pb := timestamppb.New(t)
	return Timestamp{Seconds: pb.GetSeconds(), Nanoseconds: pb.GetNanos()}
}
