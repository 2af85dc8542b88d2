package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sbworks/marketplace/internal/core/domain"
	"github.com/sbworks/marketplace/internal/core/ports"
)

type CompanyHandler struct {
	companyService ports.CompanyService
}

func NewCompanyHandler(companyService ports.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

type companyPageResponse struct {
	Data  []domain.Company `json:"data"`
	Count int64            `json:"count"`
}

// List returns one page of the company directory.
//
// @Summary      List companies
// @Tags         companies
// @Produce      json
// @Param        search    query     string  false  "Substring of name or description"
// @Param        industry  query     string  false  "Industry, or all"
// @Param        size      query     string  false  "Company size, or all"
// @Param        offset    query     int     false  "Rows to skip"
// @Param        limit     query     int     false  "Page size (default 6, max 50)"
// @Success      200  {object}  companyPageResponse
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /companies [get]
func (h *CompanyHandler) List(c echo.Context) error {
	offset, err := intQuery(c, "offset")
	if err != nil {
		return err
	}
	limit, err := intQuery(c, "limit")
	if err != nil {
		return err
	}

	page, err := h.companyService.GetCompanies(c.Request().Context(), ports.CompanyFilter{
		Search:   c.QueryParam("search"),
		Industry: c.QueryParam("industry"),
		Size:     c.QueryParam("size"),
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, companyPageResponse{Data: page.Data, Count: page.Count})
}

func intQuery(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return n, nil
}
