package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mechanic-shop/internal/api/dto"
	"github.com/spec-kit/mechanic-shop/pkg/util"
)

// decodeBody parses a JSON request body, rejecting fields the target shape
// does not declare so server-assigned fields cannot ride in on a payload.
func decodeBody(c *fiber.Ctx, dst any) error {
	fe, err := dto.DecodeStrict(c.Body(), dst)
	if err != nil {
		return util.NewBadRequest("invalid JSON payload")
	}
	if !fe.Empty() {
		return validationErr(fe)
	}
	return nil
}

// parseID extracts a positive integer route parameter.
func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, util.NewBadRequest(fmt.Sprintf("invalid %s parameter", name))
	}
	return id, nil
}

// pageParams normalizes page/per_page query values.
func pageParams(c *fiber.Ctx) dto.PageParams {
	return dto.NormalizePageParams(c.QueryInt("page", 1), c.QueryInt("per_page", 10))
}

// validationErr converts aggregated field errors into the 400 taxonomy.
func validationErr(fe dto.FieldErrors) error {
	return util.NewValidationError("validation failed", fe)
}
