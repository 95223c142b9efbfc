package bitrix

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseForm_ReconstructsNestedTree(t *testing.T) {
	t.Parallel()

	form := url.Values{}
	form.Set("event", "ONIMBOTJOINCHAT")
	form.Set("data[PARAMS][CHAT_ID]", "55")
	form.Set("data[USER][ID]", "9")
	form.Set("data[USER][NAME]", "Иван")
	form.Set("auth[application_token]", "tok123")

	tree := ParseForm(form)

	assert.Equal(t, "ONIMBOTJOINCHAT", tree["event"])

	data, ok := tree["data"].(map[string]any)
	require.True(t, ok, "data должен стать подкартой")

	params, ok := data["PARAMS"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "55", params["CHAT_ID"])

	user, ok := data["USER"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "9", user["ID"])
	assert.Equal(t, "Иван", user["NAME"])

	auth, ok := tree["auth"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "tok123", auth["application_token"])
}

func TestParseForm_MergesSharedPrefixes(t *testing.T) {
	t.Parallel()

	form := url.Values{}
	form.Set("data[PARAMS][CHAT_ID]", "55")
	form.Set("data[PARAMS][MESSAGE]", "hello")
	form.Set("data[USER][ID]", "9")

	tree := ParseForm(form)

	data := tree["data"].(map[string]any)
	params := data["PARAMS"].(map[string]any)
	assert.Equal(t, "55", params["CHAT_ID"])
	assert.Equal(t, "hello", params["MESSAGE"], "ключи с общим префиксом сливаются в одну подкарту")
	assert.Contains(t, data, "USER")
}

func TestParseForm_FlatKeys(t *testing.T) {
	t.Parallel()

	form := url.Values{}
	form.Set("event", "ONAPPINSTALL")
	form.Set("ts", "1700000000")

	tree := ParseForm(form)
	assert.Equal(t, "ONAPPINSTALL", tree["event"])
	assert.Equal(t, "1700000000", tree["ts"])
}

func TestParseForm_SubmapWinsOverScalar(t *testing.T) {
	t.Parallel()

	// url.Values обходится в случайном порядке, поэтому прогоняем
	// несколько раз: подкарта должна побеждать при любом порядке.
	for i := 0; i < 20; i++ {
		form := url.Values{}
		form.Set("auth", "scalar")
		form.Set("auth[application_token]", "tok123")
		form.Set("auth[domain]", "example.bitrix24.ru")

		tree := ParseForm(form)

		auth, ok := tree["auth"].(map[string]any)
		require.True(t, ok, "подкарта не должна затираться скаляром по тому же пути")
		assert.Equal(t, "tok123", auth["application_token"])
		assert.Equal(t, "example.bitrix24.ru", auth["domain"])
	}
}

func TestParseForm_EmptyValues(t *testing.T) {
	t.Parallel()

	tree := ParseForm(url.Values{"empty": {}})
	assert.NotContains(t, tree, "empty")
}
