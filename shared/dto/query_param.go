package dto

import (
	"farmstay/shared/constant"
	"net/http"
	"slices"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest populates QueryParams from the HTTP request.
// With defaultRequest set, missing page and limit fall back to the defaults and
// limit is capped at constant.MaxValueLimit.
//
//	q := dto.QueryParams{}
//	q.FromRequest(req, true)
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	queryParams := r.URL.Query()

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		if pageInt, err := strconv.Atoi(page); err == nil && pageInt > 0 {
			q.Page = pageInt
		}
	}

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		if limitInt, err := strconv.Atoi(limit); err == nil && limitInt > 0 {
			q.Limit = limitInt
		}
	}

	if sortBy := queryParams.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if sortDir := strings.ToUpper(queryParams.Get(constant.RequestParamSortDir)); sortDir == SortDirAsc || sortDir == SortDirDesc {
		q.SortDir = sortDir
	}

	if defaultRequest {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}

		q.Limit = min(q.Limit, constant.MaxValueLimit)
	}
}

// Sortable restricts SortBy to the allowed columns so it can be placed in ORDER BY.
// Unknown columns fall back to fallback (or created_at), prefixed with table when given.
func (q *QueryParams) Sortable(table, fallback string, allowed ...string) {
	if fallback == "" {
		fallback = constant.DefaultValueSortBy
	}

	column := q.SortBy
	if !slices.Contains(allowed, column) {
		column = fallback
	}

	if table != "" {
		column = table + "." + column
	}

	q.SortBy = column

	if q.SortDir == "" {
		q.SortDir = constant.DefaultValueSortDir
	}
}
