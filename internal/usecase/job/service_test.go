package job

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"testing"
	"time"

	"jobboard/internal/domain/cache"
	domainJob "jobboard/internal/domain/job"
	infraCache "jobboard/internal/infrastructure/cache"
	"jobboard/internal/infrastructure/database/memory"
	appErrors "jobboard/pkg/errors"
	"jobboard/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEvent struct {
	event string
	data  interface{}
}

type recordingPublisher struct {
	events []recordedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event string, data interface{}) error {
	p.events = append(p.events, recordedEvent{event: event, data: data})
	return p.err
}

func salary(v float64) *float64 { return &v }

type fixture struct {
	service   *Service
	repo      *memory.JobRepository
	cache     *infraCache.MemoryCache
	publisher *recordingPublisher
	jobs      map[string]*domainJob.Job
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := memory.NewJobRepository()
	c := infraCache.NewMemoryCache()
	pub := &recordingPublisher{}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seed := []*domainJob.Job{
		{Title: "Backend Engineer", Company: "TCS", Location: "Hyderabad", Category: domainJob.CategoryIT,
			JobType: domainJob.JobTypeFullTime, ExperienceLevel: domainJob.ExperienceMid,
			WorkMode: domainJob.WorkModeRemote, MinSalary: salary(50000), MaxSalary: salary(90000),
			Description: "Build APIs", IsActive: true},
		{Title: "Data Analyst", Company: "Infosys", Location: "Pune", Category: domainJob.CategoryIT,
			JobType: domainJob.JobTypeFullTime, ExperienceLevel: domainJob.ExperienceEntry,
			WorkMode: domainJob.WorkModeOffice, MinSalary: salary(30000), MaxSalary: salary(45000),
			Description: "Work with the analytics team at hq", IsActive: true},
		{Title: "Brand Manager", Company: "Acme", Location: "Remote, India", Category: domainJob.CategoryMarketing,
			JobType: domainJob.JobTypeContract, ExperienceLevel: domainJob.ExperienceSenior,
			WorkMode: domainJob.WorkModeRemote,
			Description: "Partner with our contacts at Bigtcsgroup", IsActive: true},
		{Title: "Retired Listing", Company: "TCS", Location: "Hyderabad", Category: domainJob.CategoryIT,
			JobType: domainJob.JobTypeFullTime, ExperienceLevel: domainJob.ExperienceMid,
			WorkMode: domainJob.WorkModeRemote, MinSalary: salary(60000), MaxSalary: salary(80000),
			Description: "Closed", IsActive: false},
	}
	names := []string{"backend", "analyst", "brand", "retired"}

	jobs := make(map[string]*domainJob.Job)
	for i, j := range seed {
		j.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Create(context.Background(), j))
		jobs[names[i]] = j
	}

	return &fixture{
		service:   NewService(repo, c, pub),
		repo:      repo,
		cache:     c,
		publisher: pub,
		jobs:      jobs,
	}
}

func (f *fixture) search(t *testing.T, raw string) []uuid.UUID {
	t.Helper()
	values, err := url.ParseQuery(raw)
	require.NoError(t, err)
	resp, err := f.service.Search(context.Background(), values)
	require.NoError(t, err)
	ids := make([]uuid.UUID, len(resp.Jobs))
	for i, j := range resp.Jobs {
		ids[i] = j.ID
	}
	return ids
}

func TestSearch_EmptyQueryReturnsActiveNewestFirst(t *testing.T) {
	f := newFixture(t)

	ids := f.search(t, "")

	assert.Equal(t, []uuid.UUID{
		f.jobs["brand"].ID,
		f.jobs["analyst"].ID,
		f.jobs["backend"].ID,
	}, ids)
}

func TestSearch_InactiveNeverReturned(t *testing.T) {
	f := newFixture(t)
	retired := f.jobs["retired"].ID

	queries := []string{
		"",
		"category=it",
		"keyword=retired",
		"company=TCS&keyword=tcs",
		"min_salary=55000",
		"location=hyderabad&work_mode=remote",
	}
	for _, q := range queries {
		assert.NotContains(t, f.search(t, q), retired, q)
	}
}

func TestSearch_FiltersAreConjunctive(t *testing.T) {
	f := newFixture(t)

	byCategory := f.search(t, "category=it")
	byMode := f.search(t, "work_mode=remote")
	both := f.search(t, "category=it&work_mode=remote")

	var intersection []uuid.UUID
	for _, id := range byCategory {
		for _, other := range byMode {
			if id == other {
				intersection = append(intersection, id)
			}
		}
	}

	assert.ElementsMatch(t, intersection, both)
	assert.Equal(t, []uuid.UUID{f.jobs["backend"].ID}, both)
}

func TestSearch_LocationAllIsIgnored(t *testing.T) {
	f := newFixture(t)

	omitted := f.search(t, "")
	for _, v := range []string{"All", "all", "ALL", " aLl "} {
		assert.Equal(t, omitted, f.search(t, url.Values{"location": {v}}.Encode()), v)
	}

	assert.Equal(t, []uuid.UUID{f.jobs["backend"].ID}, f.search(t, "location=hyder"))
}

func TestSearch_KeywordIsCaseInsensitiveSubstring(t *testing.T) {
	f := newFixture(t)

	ids := f.search(t, "keyword=tcs")

	assert.ElementsMatch(t, []uuid.UUID{f.jobs["backend"].ID, f.jobs["brand"].ID}, ids)
}

func TestSearch_UnknownOrderingFallsBackToDefault(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, f.search(t, ""), f.search(t, "ordering=description"))
	assert.Equal(t, f.search(t, ""), f.search(t, "ordering=-password,;drop"))
}

// A missing salary sorts as the largest value: last ascending, first
// descending, matching the postgres default for NULLs.
func TestSearch_OrderingBySalaryTreatsMissingAsLargest(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, []uuid.UUID{
		f.jobs["analyst"].ID,
		f.jobs["backend"].ID,
		f.jobs["brand"].ID,
	}, f.search(t, "ordering=min_salary"))

	assert.Equal(t, []uuid.UUID{
		f.jobs["brand"].ID,
		f.jobs["backend"].ID,
		f.jobs["analyst"].ID,
	}, f.search(t, "ordering=-min_salary"))
}

// Salary filters compare like-for-like fields, so a job whose range merely
// overlaps the requested bound is excluded.
func TestSearch_SalaryBoundsCompareSameField(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, []uuid.UUID{f.jobs["backend"].ID}, f.search(t, "min_salary=40000"))
	assert.Equal(t, []uuid.UUID{f.jobs["analyst"].ID}, f.search(t, "max_salary=50000"))
	assert.Empty(t, f.search(t, "min_salary=35000&max_salary=60000"))
}

func TestSearch_InvalidSalaryIsReported(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Search(context.Background(), url.Values{"min_salary": {"abc"}})

	var invalid *domainJob.InvalidQueryParameterError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "min_salary", invalid.Field)
	assert.Equal(t, "abc", invalid.Value)
}

func TestSearch_Pagination(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.Search(context.Background(), url.Values{"page": {"2"}, "page_size": {"2"}})
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, 2, resp.TotalPages)
	require.Len(t, resp.Jobs, 1)
	assert.Equal(t, f.jobs["backend"].ID, resp.Jobs[0].ID)
}

func TestSearch_PageBeyondResultsIsEmpty(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.Search(context.Background(), url.Values{
		"page":      {strconv.Itoa(utils.MaxPage)},
		"page_size": {strconv.Itoa(utils.MaxPageSize)},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.Total)
	assert.Empty(t, resp.Jobs)
}

func TestSearch_HugePageIsRejected(t *testing.T) {
	f := newFixture(t)

	for _, page := range []string{strconv.Itoa(utils.MaxPage + 1), "576460752303423489"} {
		var resp *SearchResponse
		var err error
		assert.NotPanics(t, func() {
			resp, err = f.service.Search(context.Background(), url.Values{"page": {page}})
		})
		assert.Nil(t, resp)

		var invalid *domainJob.InvalidQueryParameterError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "page", invalid.Field)
		assert.Equal(t, page, invalid.Value)
	}
}

func TestGetJob_InactiveIsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.GetJob(context.Background(), f.jobs["retired"].ID)
	assert.ErrorIs(t, err, domainJob.ErrJobNotFound)

	resp, err := f.service.GetJob(context.Background(), f.jobs["backend"].ID)
	require.NoError(t, err)
	assert.Equal(t, "TCS", resp.Company)
	assert.NotNil(t, resp.Skills)
}

func TestStats_CachedUntilListingChanges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stats, err := f.service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &domainJob.Stats{TotalJobs: 3, Categories: 2, Companies: 3}, stats)

	_, err = f.cache.Get(ctx, StatsCacheKey)
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteJob(ctx, f.jobs["brand"].ID))
	_, err = f.cache.Get(ctx, StatsCacheKey)
	assert.True(t, errors.Is(err, cache.ErrCacheMiss))

	stats, err = f.service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalJobs)
	assert.Equal(t, int64(1), stats.Categories)
}

func validCreateRequest() *CreateJobRequest {
	return &CreateJobRequest{
		Title:           "Platform Engineer",
		Company:         "Globex",
		Location:        "Bengaluru",
		Category:        "engineering",
		JobType:         "full-time",
		ExperienceLevel: "senior",
		WorkMode:        "hybrid",
		MinSalary:       salary(100000),
		MaxSalary:       salary(150000),
		Description:     "Run the platform",
		Skills:          []string{"Go", "Kubernetes"},
	}
}

func TestCreateJob_PublishesAndIsSearchable(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.CreateJob(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.True(t, resp.IsActive)

	assert.Contains(t, f.search(t, "category=engineering"), resp.ID)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "job.created", f.publisher.events[0].event)
}

func TestCreateJob_PublishFailureIsIgnored(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("broker down")

	_, err := f.service.CreateJob(context.Background(), validCreateRequest())
	assert.NoError(t, err)
}

func TestCreateJob_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		mutate func(*CreateJobRequest)
	}{
		{"blank title", func(r *CreateJobRequest) { r.Title = "   " }},
		{"unknown category", func(r *CreateJobRequest) { r.Category = "astrology" }},
		{"unknown work mode", func(r *CreateJobRequest) { r.WorkMode = "moon" }},
		{"negative salary", func(r *CreateJobRequest) { r.MinSalary = salary(-1) }},
		{"inverted range", func(r *CreateJobRequest) { r.MinSalary, r.MaxSalary = salary(10), salary(5) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)

			_, err := f.service.CreateJob(context.Background(), req)

			var appErr *appErrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, appErrors.CodeValidation, appErr.Code)
		})
	}
}

func TestUpdateJob_CanReactivate(t *testing.T) {
	f := newFixture(t)
	retired := f.jobs["retired"]

	active := true
	req := &UpdateJobRequest{CreateJobRequest: *validCreateRequest(), IsActive: &active}
	resp, err := f.service.UpdateJob(context.Background(), retired.ID, req)
	require.NoError(t, err)

	assert.Equal(t, "Platform Engineer", resp.Title)
	assert.Equal(t, retired.CreatedAt, resp.CreatedAt)
	assert.Contains(t, f.search(t, ""), retired.ID)
}

func TestUpdateJob_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.UpdateJob(context.Background(), uuid.New(), &UpdateJobRequest{CreateJobRequest: *validCreateRequest()})
	assert.ErrorIs(t, err, domainJob.ErrJobNotFound)
}
