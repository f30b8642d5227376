package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shift-scheduler/internal/model"
	"github.com/iliyamo/shift-scheduler/internal/repository"
	"github.com/iliyamo/shift-scheduler/internal/service"
)

func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, &service.ValidationError{Field: name, Message: "must be a positive integer"}
	}
	return id, nil
}

func queryDate(c echo.Context, name string) (*model.Date, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	d, err := model.ParseDate(v)
	if err != nil {
		return nil, &service.ValidationError{Field: name, Message: "must be YYYY-MM-DD"}
	}
	return &d, nil
}

func queryDateTime(c echo.Context, name string) (*model.DateTime, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	t, err := model.ParseDateTime(v)
	if err != nil {
		return nil, &service.ValidationError{Field: name, Message: "must be YYYY-MM-DDTHH:MM:SS"}
	}
	return &t, nil
}

// shiftFilter reads the list filters from the query string.
func shiftFilter(c echo.Context) (repository.ShiftFilter, error) {
	var f repository.ShiftFilter
	var err error

	if f.StartDate, err = queryDate(c, "start_date"); err != nil {
		return f, err
	}
	if f.EndDate, err = queryDate(c, "end_date"); err != nil {
		return f, err
	}
	if v := c.QueryParam("employee_id"); v != "" {
		id, perr := strconv.ParseUint(v, 10, 64)
		if perr != nil {
			return f, &service.ValidationError{Field: "employee_id", Message: "must be a positive integer"}
		}
		f.EmployeeID = &id
	}

	times := []struct {
		name string
		dst  **model.DateTime
	}{
		{"start_datetime_from", &f.StartFrom},
		{"start_datetime_to", &f.StartTo},
		{"end_datetime_from", &f.EndFrom},
		{"end_datetime_to", &f.EndTo},
	}
	for _, t := range times {
		if *t.dst, err = queryDateTime(c, t.name); err != nil {
			return f, err
		}
	}
	return f, nil
}
