package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// リクエスト完了ログをzerologで出す。
func RequestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				//echoのエラーハンドラへ流す前にstatusを確定させる
				c.Error(err)
			}

			ev := logger.Info()
			if c.Response().Status >= 500 {
				ev = logger.Error()
			}

			//認証済みならuser_idも付ける
			userID := ""
			if v, ok := c.Get(CtxUserIDKey).(string); ok {
				userID = v
			}

			ev.
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", c.Response().Status).
				Str("user_id", userID).
				Str("remote_ip", c.RealIP()).
				Dur("latency", time.Since(start)).
				Msg("request completed")

			return nil
		}
	}
}
