package internal

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-orz/orz"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/linyuan/tradenote/internal/config"
	"github.com/linyuan/tradenote/internal/handler"
	"github.com/linyuan/tradenote/internal/models"
	"github.com/linyuan/tradenote/internal/service"
	"github.com/linyuan/tradenote/internal/telegram"
	"github.com/linyuan/tradenote/pkg/nostd"
	"github.com/linyuan/tradenote/web"
	"go.uber.org/zap"
)

func Run(configPath string) error {
	app := NewTradeNoteApp()

	framework, err := orz.NewFramework(
		orz.WithConfig(configPath),
		orz.WithLoggerFromConfig(),
		orz.WithDatabase(),
		orz.WithHTTP(),
		orz.WithApplication(app),
	)
	if err != nil {
		return err
	}

	return framework.Run()
}

func NewTradeNoteApp() orz.Application {
	return &TradeNoteApp{}
}

var _ orz.Application = (*TradeNoteApp)(nil)

type AppComponents struct {
	JournalHandler   *handler.JournalHandler
	AnalyticsHandler *handler.AnalyticsHandler

	JournalService   *service.JournalService
	AnalyticsService *service.AnalyticsService

	tg *telegram.Telegram
}

type TradeNoteApp struct {
	components *AppComponents
	conf       *config.Config
}

// GetComponents 获取应用组件
func (r *TradeNoteApp) GetComponents() *AppComponents {
	return r.components
}

func (r *TradeNoteApp) Configure(app *orz.App) error {
	logger := app.Logger()
	e := app.GetEcho()
	db := app.GetDatabase()

	var conf config.Config
	err := app.GetConfig().App.Unmarshal(&conf)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %v", err)
	}

	components, err := InitializeApp(logger, db, &conf)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %v", err)
	}
	r.components = components
	r.conf = &conf

	if err := db.AutoMigrate(
		models.TradeRecord{}, models.AnalyticsSnapshot{},
	); err != nil {
		logger.Fatal("database auto migrate failed", zap.Error(err))
	}

	if err := r.Init(logger); err != nil {
		logger.Fatal("app init failed", zap.Error(err))
	}

	e.HidePort = true
	e.HideBanner = true

	e.Use(middleware.Gzip())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		Skipper:      middleware.DefaultSkipper,
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			sugar := logger.Sugar()
			sugar.Error(fmt.Sprintf("[PANIC RECOVER] %v %s\n", err, stack))
			return err
		},
	}))
	e.Use(WithErrorHandler(logger))
	customValidator := nostd.CustomValidator{Validator: validator.New()}
	if err := customValidator.TransInit(); err != nil {
		logger.Sugar().Fatal("failed to init custom validator", zap.Error(err))
	}
	e.Validator = &customValidator

	e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Skipper: func(c echo.Context) bool {
			path := c.Request().RequestURI
			if strings.HasPrefix(path, "/api") {
				return true
			}
			return false
		},
		Root:       "",
		Index:      "index.html",
		HTML5:      true,
		Browse:     false,
		IgnoreBase: false,
		Filesystem: http.FS(web.Assets()),
	}))

	api := e.Group("/api")
	{
		if r.components.JournalHandler != nil {
			r.components.JournalHandler.RegisterRoutes(api)
		}
		if r.components.AnalyticsHandler != nil {
			r.components.AnalyticsHandler.RegisterRoutes(api)
		}
	}

	return nil
}

func (r *TradeNoteApp) Init(logger *zap.Logger) error {
	logger.Info("=================================================")
	logger.Info("TradeNote Trading Journal Starting...")
	logger.Info("=================================================")

	components := r.GetComponents()
	if components == nil {
		return fmt.Errorf("components not initialized")
	}

	if components.tg != nil {
		components.tg.Start()
		logger.Info("telegram notifier started")
	}

	if err := components.AnalyticsService.StartSnapshotJob(); err != nil {
		return fmt.Errorf("failed to start snapshot job: %w", err)
	}

	return nil
}
