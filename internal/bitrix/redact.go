package bitrix

import (
	"net/url"
	"strings"
)

// Ключи, значения которых маскируются в логах и журнале событий.
// Это контракт безопасности логирования, не граница безопасности.
var sensitiveKeys = map[string]struct{}{
	"token":             {},
	"access_token":      {},
	"refresh_token":     {},
	"application_token": {},
	"client_secret":     {},
	"api_secret_token":  {},
	"auth":              {},
}

func maskValue(v string) string {
	if len(v) <= 8 {
		return "***"
	}
	return v[:4] + "…" + v[len(v)-4:]
}

// Redact рекурсивно маскирует чувствительные значения в картах и срезах.
// Возвращает копию, вход не модифицируется.
func Redact(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			if _, sensitive := sensitiveKeys[strings.ToLower(k)]; sensitive {
				if s, ok := child.(string); ok {
					out[k] = maskValue(s)
					continue
				}
			}
			out[k] = Redact(child)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(val))
		for k, child := range val {
			if _, sensitive := sensitiveKeys[strings.ToLower(k)]; sensitive {
				out[k] = maskValue(child)
			} else {
				out[k] = child
			}
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = Redact(child)
		}
		return out
	default:
		return v
	}
}

// RedactValues маскирует чувствительные параметры запроса для отладочного
// лога. Для многозначных параметров берется первое значение.
func RedactValues(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	for k, vals := range values {
		if len(vals) == 0 {
			continue
		}
		if _, sensitive := sensitiveKeys[strings.ToLower(k)]; sensitive {
			out[k] = maskValue(vals[0])
		} else {
			out[k] = vals[0]
		}
	}
	return out
}

// MaskToken маскирует одиночный токен для подстановки в лог-сообщение.
func MaskToken(v string) string {
	return maskValue(v)
}
