package job

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	domainJob "jobboard/internal/domain/job"
	"jobboard/pkg/utils"
)

// locationAll is the "All Locations" option sent by the UI.
const locationAll = "all"

// ParseSearchParams turns raw query parameters into a job query. Empty or
// whitespace-only parameters are treated as absent.
func ParseSearchParams(values url.Values) (*domainJob.Query, error) {
	get := func(key string) string {
		return strings.TrimSpace(values.Get(key))
	}

	query := &domainJob.Query{
		Category:        domainJob.Category(get("category")),
		JobType:         domainJob.JobType(get("job_type")),
		ExperienceLevel: domainJob.ExperienceLevel(get("experience_level")),
		WorkMode:        domainJob.WorkMode(get("work_mode")),
		Keyword:         get("keyword"),
		Ordering:        domainJob.ParseOrdering(values.Get("ordering")),
	}

	if location := get("location"); !strings.EqualFold(location, locationAll) {
		query.Location = location
	}

	var err error
	if query.MinSalary, err = parseSalary("min_salary", get("min_salary")); err != nil {
		return nil, err
	}
	if query.MaxSalary, err = parseSalary("max_salary", get("max_salary")); err != nil {
		return nil, err
	}

	page, err := parseInt("page", get("page"))
	if err != nil {
		return nil, err
	}
	if page > utils.MaxPage {
		return nil, &domainJob.InvalidQueryParameterError{Field: "page", Value: get("page")}
	}
	pageSize, err := parseInt("page_size", get("page_size"))
	if err != nil {
		return nil, err
	}
	query.Page, query.PageSize = utils.NormalizePage(page, pageSize)

	return query, nil
}

func parseSalary(field, raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, &domainJob.InvalidQueryParameterError{Field: field, Value: raw}
	}
	return &v, nil
}

func parseInt(field, raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &domainJob.InvalidQueryParameterError{Field: field, Value: raw}
	}
	return v, nil
}
