package middleware

import (
	"log"
	"time"

	"resetclub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

func LoggingMiddleware(logger *log.Logger, colors bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		method := c.Method()

		var statusColor, methodColor, resetColor string
		if colors {
			statusColor, methodColor, resetColor = utils.StatusColor(status), utils.MethodColor(method), "\033[0m"
		}

		line := []interface{}{
			c.IP(),
			methodColor, method, resetColor,
			c.Path(),
			statusColor, status, resetColor,
			time.Since(start),
		}
		if err != nil {
			logger.Printf("%s %s%s%s %s %s%d%s %v error=%v", append(line, err)...)
		} else {
			logger.Printf("%s %s%s%s %s %s%d%s %v", line...)
		}

		return err
	}
}
