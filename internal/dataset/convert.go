package dataset

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}

func toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return t, nil
	case json.Number:
		return t.Float64()
	case string:
		t = strings.TrimSpace(t)
		if t == "" {
			return 0, nil
		}
		return strconv.ParseFloat(t, 64)
	default:
		return 0, errors.New("not a float")
	}
}

func toInt(v any) (int, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return int(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i), nil
		}
		f, err := t.Float64()
		return int(f), err
	case string:
		t = strings.TrimSpace(t)
		if t == "" {
			return 0, nil
		}
		if i, err := strconv.Atoi(t); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(t, 64)
		return int(f), err
	default:
		return 0, errors.New("not an int")
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatInt(i int) string {
	if i == 0 {
		return ""
	}
	return strconv.Itoa(i)
}
