// Package normalize cleans the free-text numeric fields the remote catalog
// returns ("unknown", "1,000,000", "n/a") into nullable Go values.
package normalize

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wilsonmoraes/starships-backend/internal/domain"
	"github.com/wilsonmoraes/starships-backend/internal/logger"
	"github.com/wilsonmoraes/starships-backend/internal/metrics"
)

// Float parses raw as a float64. Empty, whitespace and "unknown" yield nil.
// A value that still fails to parse yields nil and a parse warning.
func Float(ctx context.Context, field, raw string) *float64 {
	s, ok := clean(raw)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		warn(ctx, field, raw)
		return nil
	}
	return &f
}

// Int parses raw as an int64 with the same rules as Float.
func Int(ctx context.Context, field, raw string) *int64 {
	s, ok := clean(raw)
	if !ok {
		return nil
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		warn(ctx, field, raw)
		return nil
	}
	return &i
}

// Text maps an empty string to nil and keeps everything else verbatim.
func Text(raw string) *string {
	if raw == "" {
		return nil
	}
	return &raw
}

// Timestamp parses an RFC 3339 timestamp (fractional seconds allowed) into UTC.
func Timestamp(field, raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q: %v", domain.ErrInvalidRecord, field, raw, err)
	}
	return t.UTC(), nil
}

func clean(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, UnknownValue) {
		return "", false
	}
	return strings.ReplaceAll(s, ThousandsSeparator, ""), true
}

func warn(ctx context.Context, field, raw string) {
	metrics.SyncParseWarningsTotal.WithLabelValues(field).Inc()
	logger.FromContext(ctx).Warn(LogMsgParseWarning, "field", field, "raw", raw)
}
