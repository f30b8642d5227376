package handler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shift-scheduler/internal/model"
	"github.com/iliyamo/shift-scheduler/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves spreadsheet exports.
type ExportHandler struct {
	Export *service.ExportService
	Logger *slog.Logger
	Now    func() time.Time
}

// Shifts handles GET /v1/export/shifts.xlsx?year_month=YYYY-MM.  The
// current month is used when year_month is missing.
func (h *ExportHandler) Shifts(c echo.Context) error {
	var first model.Date
	if ym := c.QueryParam("year_month"); ym != "" {
		var err error
		if first, err = service.ParseYearMonth(ym); err != nil {
			return respondError(c, h.Logger, err)
		}
	} else {
		now := time.Now
		if h.Now != nil {
			now = h.Now
		}
		t := now().UTC()
		first = model.NewDate(t.Year(), t.Month(), 1)
	}

	var buf bytes.Buffer
	if err := h.Export.WriteMonth(c.Request().Context(), first, &buf); err != nil {
		return respondError(c, h.Logger, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="shifts-%s.xlsx"`, first.Format("2006-01")))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}
