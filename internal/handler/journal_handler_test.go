package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/linyuan/tradenote/internal/config"
	"github.com/linyuan/tradenote/internal/models"
	"github.com/linyuan/tradenote/internal/service"
	"github.com/linyuan/tradenote/pkg/nostd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestJournalHandler(t *testing.T) *JournalHandler {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.TradeRecord{}, models.AnalyticsSnapshot{}))

	svc := service.NewJournalService(db, &config.Config{}, zap.NewNop(), nil)
	return NewJournalHandler(svc, zap.NewNop())
}

func newTestContext(t *testing.T, method, target, body string) echo.Context {
	t.Helper()

	e := echo.New()
	cv := nostd.CustomValidator{Validator: validator.New()}
	require.NoError(t, cv.TransInit())
	e.Validator = &cv

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

// 校验失败返回 echo.HTTPError，交给统一错误中间件渲染 code/message 结构
func TestJournalHandler_CreatePlan_ValidationError(t *testing.T) {
	h := newTestJournalHandler(t)
	c := newTestContext(t, http.MethodPost, "/api/journal/records", `{"stock_code":"600519"}`)

	err := h.CreatePlan(c)
	require.Error(t, err)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestJournalHandler_Settle_ValidationError(t *testing.T) {
	h := newTestJournalHandler(t)
	c := newTestContext(t, http.MethodPost, "/api/journal/records/x/settle", `{"actual_quantity":-1}`)
	c.SetParamNames("id")
	c.SetParamValues("x")

	err := h.Settle(c)
	require.Error(t, err)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
