package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"b24relay/internal/logger"
	"b24relay/internal/services"
)

func TestSoftDisableMiddleware(t *testing.T) {
	t.Parallel()

	state := services.NewBotState(t.TempDir())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/bot/", SoftDisableMiddleware(state), func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// включен по умолчанию
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bot/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// выключен: пустой 204, обработчик не вызывается
	require.NoError(t, state.Disable())
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bot/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	// обратно включен
	require.NoError(t, state.Enable())
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bot/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

// Без t.Parallel: тест подменяет stdout, чтобы перехватить вывод
// глобального логгера.
func TestLoggingMiddleware_RedactsQueryParams(t *testing.T) {
	old := os.Stdout
	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = pw
	logger.Init("development")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware(), LoggingMiddleware())
	r.GET("/api/dialogs", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dialogs?token=supersecretvalue&date=2024-01-10", nil))

	require.NoError(t, pw.Close())
	os.Stdout = old
	logger.Init("development")
	captured, err := io.ReadAll(pr)
	require.NoError(t, err)

	out := string(captured)
	assert.Contains(t, out, "HTTP Request Params", "параметры запроса логируются на уровне debug")
	assert.NotContains(t, out, "supersecretvalue", "токен не должен попасть в лог в открытом виде")
	assert.Contains(t, out, "supe…alue", "токен логируется в маскированном виде")
	assert.Contains(t, out, "2024-01-10", "обычные параметры логируются как есть")
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
