package bitrix

import (
	"net/url"
	"strings"
)

// ParseForm восстанавливает вложенную структуру из плоской формы Битрикса,
// где вложенность закодирована скобками в ключах:
//
//	data[PARAMS][CHAT_ID]=55  ->  {"data": {"PARAMS": {"CHAT_ID": "55"}}}
//
// Ключи с общим префиксом пути сливаются в одну подкарту; порядок ключей
// значения не имеет. При конфликте скаляра и подкарты на одном пути
// подкарта побеждает независимо от порядка обхода формы.
func ParseForm(form url.Values) map[string]any {
	out := make(map[string]any)
	for key, vals := range form {
		if len(vals) == 0 {
			continue
		}
		segments := strings.Split(strings.ReplaceAll(key, "]", ""), "[")
		node := out
		for _, seg := range segments[:len(segments)-1] {
			child, ok := node[seg].(map[string]any)
			if !ok {
				// скалярное значение по этому пути вытесняется подкартой
				child = make(map[string]any)
				node[seg] = child
			}
			node = child
		}
		leaf := segments[len(segments)-1]
		if _, isMap := node[leaf].(map[string]any); isMap {
			// уже построенную подкарту скаляр не затирает
			continue
		}
		node[leaf] = vals[0]
	}
	return out
}

// str достает строку по пути ключей, "" если путь отсутствует.
func str(tree map[string]any, path ...string) string {
	var cur any = tree
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur = m[key]
	}
	s, _ := cur.(string)
	return s
}

// sub достает подкарту по пути ключей, nil если путь отсутствует.
func sub(tree map[string]any, path ...string) map[string]any {
	var cur any = tree
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[key]
	}
	m, _ := cur.(map[string]any)
	return m
}
