package handler

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/coverage-analytics/internal/domain"
	"github.com/coverage-analytics/internal/pkg/errors"
	"github.com/coverage-analytics/internal/pkg/validator"
	"github.com/coverage-analytics/internal/usecase/dto"
)

// vaccineParam reads and validates the ?vaccine= query parameter.
func vaccineParam(c *fiber.Ctx) (domain.Vaccine, error) {
	req := dto.VaccineRequest{Vaccine: c.Query("vaccine")}
	if err := validator.Validate(&req); err != nil {
		return "", err
	}
	return domain.ParseVaccine(req.Vaccine)
}

// parseBody decodes a JSON body and validates it.
func parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return errors.InvalidInput("invalid request body")
	}
	return validator.Validate(req)
}

// pathParam returns a decoded, non-empty route parameter.
func pathParam(c *fiber.Ctx, name string) (string, error) {
	raw := c.Params(name)
	value, err := url.PathUnescape(raw)
	if err != nil {
		return "", errors.InvalidInput("invalid %s: %q", name, raw)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errors.InvalidInput("%s is required", name)
	}
	return value, nil
}
