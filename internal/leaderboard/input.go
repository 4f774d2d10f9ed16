package leaderboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const defaultName = "UNKNOWN"

// SubmitRequest holds the raw submission fields. They stay untyped because
// clients send numbers, numeric strings and nulls interchangeably.
type SubmitRequest struct {
	Name  any `json:"name"`
	Score any `json:"score"`
	Level any `json:"level"`
}

// ParseSubmitRequest decodes a JSON object body. An empty body is an empty
// request.
func ParseSubmitRequest(body []byte) (SubmitRequest, error) {
	var req SubmitRequest
	if len(bytes.TrimSpace(body)) == 0 {
		return req, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		return req, ErrInvalidFormat
	}
	return req, nil
}

// Entry validates the request and builds the entry to merge. Absent or
// falsy fields take their defaults: name UNKNOWN, score 0, level 1.
func (r SubmitRequest) Entry(now time.Time) (Entry, error) {
	score, err := coerceInt(r.Score, 0)
	if err != nil {
		return Entry{}, err
	}
	level, err := coerceInt(r.Level, 1)
	if err != nil {
		return Entry{}, err
	}

	if score < MinScore || score > MaxScore {
		return Entry{}, ErrScoreOutOfRange
	}
	if level < 1 {
		level = 1
	}

	return Entry{
		Name:  SanitizeName(rawName(r.Name)),
		Score: score,
		Level: level,
		Date:  NewTimestamp(now),
	}, nil
}

// SanitizeName keeps letters, digits, spaces and hyphens, cuts to
// MaxNameLength runes and upper-cases the result.
func SanitizeName(raw string) string {
	var b strings.Builder
	n := 0
	for _, r := range raw {
		if n == MaxNameLength {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' {
			b.WriteRune(r)
			n++
		}
	}
	return strings.ToUpper(b.String())
}

func rawName(v any) string {
	switch x := v.(type) {
	case string:
		if x != "" {
			return x
		}
	case json.Number:
		if f, err := x.Float64(); err == nil && f != 0 {
			return x.String()
		}
	case bool:
		if x {
			return "TRUE"
		}
	}
	return defaultName
}

func coerceInt(v any, def int) (int, error) {
	switch x := v.(type) {
	case nil:
		return def, nil
	case bool:
		if x {
			return 1, nil
		}
		return def, nil
	case json.Number:
		if i, err := strconv.ParseInt(x.String(), 10, 64); err == nil {
			return orDefault(int(i), def), nil
		}
		f, err := x.Float64()
		if err != nil {
			return 0, ErrInvalidFormat
		}
		return orDefault(truncate(f), def), nil
	case string:
		s := strings.TrimSpace(x)
		if x == "" {
			return def, nil
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, ErrInvalidFormat
		}
		// ParseInt saturates on overflow, which the range check rejects.
		return int(i), nil
	default:
		return 0, ErrInvalidFormat
	}
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func truncate(f float64) int {
	switch {
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(math.Trunc(f))
}
