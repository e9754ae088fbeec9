package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-hiring-sync/internal/audit"
	"go-hiring-sync/internal/domain"
	"go-hiring-sync/internal/gateway"
	"go-hiring-sync/internal/repository/memory"
	"go-hiring-sync/internal/usecase"
	"go-hiring-sync/pkg/apperror"
	"go-hiring-sync/pkg/metacodec"
	"go-hiring-sync/pkg/security/antivirus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store *memory.TableStore
	svc   *usecase.HiringService
	admin *domain.User
}

func newFixture(t *testing.T, tweak ...func(*usecase.Deps)) *fixture {
	t.Helper()
	store := memory.NewTableStore()
	store.SetClock(func() time.Time { return now })
	recorder := audit.NewRecorder(store, nil, audit.WithClock(func() time.Time { return now }))

	deps := usecase.Deps{
		Gateway:  gateway.New(store, recorder, nil),
		Audit:    recorder,
		Metadata: metacodec.NotesWriter{},
		Clock:    func() time.Time { return now },
	}
	for _, fn := range tweak {
		fn(&deps)
	}
	svc := usecase.NewHiringService(deps)

	admin, err := svc.CreateUser(context.Background(), domain.User{Name: "Admin", Email: "admin@acme.io", Role: domain.RoleAdmin}, "")
	require.NoError(t, err)
	return &fixture{store: store, svc: svc, admin: admin}
}

func (f *fixture) job(t *testing.T, title string) *domain.Job {
	t.Helper()
	job, err := f.svc.CreateJob(context.Background(), domain.Job{Title: title, Status: domain.JobStatusPublished}, f.admin.ID)
	require.NoError(t, err)
	return job
}

func (f *fixture) candidate(t *testing.T, name, jobID string) *domain.Candidate {
	t.Helper()
	c, err := f.svc.CreateCandidate(context.Background(), domain.Candidate{Name: name, JobID: jobID}, f.admin.ID)
	require.NoError(t, err)
	return c
}

func (f *fixture) applicants(t *testing.T, jobID string) int {
	t.Helper()
	job, err := f.svc.GetJob(jobID)
	require.NoError(t, err)
	return job.Applicants
}

func TestHiringScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	auditBefore := len(f.store.Rows("audit_log"))

	job, err := f.svc.CreateJob(ctx, domain.Job{Title: "Backend Engineer", Status: domain.JobStatusDraft, Applicants: 7}, f.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, job.Applicants)
	assert.Equal(t, f.admin.ID, job.CreatedBy)

	published := domain.JobStatusPublished
	job, err = f.svc.UpdateJob(ctx, job.ID, domain.JobPatch{Status: &published}, f.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusPublished, job.Status)

	c := f.candidate(t, "Ada Lovelace", job.ID)
	assert.Equal(t, "Backend Engineer", c.JobTitle)
	assert.Equal(t, domain.StageApplied, c.Stage)
	assert.Equal(t, 1, f.applicants(t, job.ID))

	for _, fb := range []domain.Feedback{
		{InterviewID: "i-1", CandidateID: c.ID, Ratings: map[string]int{"technical": 4}, Recommendation: domain.RecommendHire},
		{InterviewID: "i-2", CandidateID: c.ID, Ratings: map[string]int{"technical": 3}, Recommendation: domain.RecommendHold},
	} {
		_, err := f.svc.CreateFeedback(ctx, fb, f.admin.ID)
		require.NoError(t, err)
	}

	agg, err := f.svc.GetAggregateFeedback(c.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.5, agg.AverageRatings["technical"])
	assert.Equal(t, 2, agg.TotalFeedback)
	assert.Equal(t, domain.RecommendationVotes{Hire: 1, Hold: 1}, agg.Recommendations)
	assert.Equal(t, domain.RecommendHire, agg.OverallRecommendation)

	require.NoError(t, f.svc.DeleteCandidate(ctx, c.ID, f.admin.ID))
	assert.Equal(t, 0, f.applicants(t, job.ID))

	// job create, publish, candidate + counter, two feedback, delete + counter
	assert.Len(t, f.store.Rows("audit_log"), auditBefore+8)
}

func TestApplicantCounter(t *testing.T) {
	ctx := context.Background()

	t.Run("Should leave the counter unchanged after create then delete", func(t *testing.T) {
		f := newFixture(t)
		job := f.job(t, "Designer")
		f.candidate(t, "Existing", job.ID)
		before := f.applicants(t, job.ID)

		c := f.candidate(t, "Temp", job.ID)
		require.NoError(t, f.svc.DeleteCandidate(ctx, c.ID, f.admin.ID))

		assert.Equal(t, before, f.applicants(t, job.ID))
	})

	t.Run("Should clamp the counter at zero", func(t *testing.T) {
		f := newFixture(t)
		job := f.job(t, "Designer")
		c := f.candidate(t, "Temp", job.ID)
		zero := 0
		_, err := f.svc.UpdateJob(ctx, job.ID, domain.JobPatch{Applicants: &zero}, f.admin.ID)
		require.NoError(t, err)

		require.NoError(t, f.svc.DeleteCandidate(ctx, c.ID, f.admin.ID))
		assert.Equal(t, 0, f.applicants(t, job.ID))
	})

	t.Run("Should keep the candidate when the counter write fails", func(t *testing.T) {
		f := newFixture(t)
		job := f.job(t, "Designer")
		f.store.Fail(memory.OpUpdate, "jobs", errors.New("timeout"))

		c, err := f.svc.CreateCandidate(ctx, domain.Candidate{Name: "Drift", JobID: job.ID}, f.admin.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, 0, f.applicants(t, job.ID))

		f.store.Recover()
		fixed, err := f.svc.ReconcileApplicantCounts(ctx, f.admin.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, fixed)
		assert.Equal(t, 1, f.applicants(t, job.ID))
	})

	t.Run("Should not write when the counter is already right", func(t *testing.T) {
		f := newFixture(t)
		job := f.job(t, "Designer")
		f.candidate(t, "A", job.ID)
		auditBefore := len(f.store.Rows("audit_log"))

		got, err := f.svc.RecomputeApplicantCount(ctx, job.ID, f.admin.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Applicants)
		assert.Len(t, f.store.Rows("audit_log"), auditBefore)
	})
}

func TestDeleteGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("Should block deleting a candidate with active interviews", func(t *testing.T) {
		f := newFixture(t)
		job := f.job(t, "Designer")
		c := f.candidate(t, "Ada", job.ID)
		iv, err := f.svc.CreateInterview(ctx, domain.Interview{CandidateID: c.ID, ScheduledAt: now.Add(24 * time.Hour)}, f.admin.ID)
		require.NoError(t, err)

		err = f.svc.DeleteCandidate(ctx, c.ID, f.admin.ID)
		var violation *apperror.ReferentialViolation
		require.ErrorAs(t, err, &violation)
		assert.Equal(t, []string{iv.ID}, violation.BlockerIDs())
		assert.Contains(t, violation.Message, "1 active interview(s)")

		completed := domain.InterviewCompleted
		_, err = f.svc.UpdateInterview(ctx, iv.ID, domain.InterviewPatch{Status: &completed}, f.admin.ID)
		require.NoError(t, err)
		assert.NoError(t, f.svc.DeleteCandidate(ctx, c.ID, f.admin.ID))
	})

	t.Run("Should refuse to delete the acting user", func(t *testing.T) {
		f := newFixture(t)
		err := f.svc.DeleteUser(ctx, f.admin.ID, f.admin.ID)
		var violation *apperror.ReferentialViolation
		require.ErrorAs(t, err, &violation)
		assert.Equal(t, "You can't delete your own account", violation.Message)
	})

	t.Run("Should block deleting an author of open jobs", func(t *testing.T) {
		f := newFixture(t)
		hr, err := f.svc.CreateUser(ctx, domain.User{Name: "HR", Email: "hr@acme.io", Role: domain.RoleHR}, f.admin.ID)
		require.NoError(t, err)
		job, err := f.svc.CreateJob(ctx, domain.Job{Title: "QA", Status: domain.JobStatusPublished}, hr.ID)
		require.NoError(t, err)

		err = f.svc.DeleteUser(ctx, hr.ID, f.admin.ID)
		var violation *apperror.ReferentialViolation
		require.ErrorAs(t, err, &violation)
		assert.Equal(t, []string{job.ID}, violation.BlockerIDs())

		archived := domain.JobStatusArchived
		_, err = f.svc.UpdateJob(ctx, job.ID, domain.JobPatch{Status: &archived}, f.admin.ID)
		require.NoError(t, err)
		assert.NoError(t, f.svc.DeleteUser(ctx, hr.ID, f.admin.ID))
	})

	t.Run("Should block deleting a panelist of upcoming interviews", func(t *testing.T) {
		f := newFixture(t)
		panelist, err := f.svc.CreateUser(ctx, domain.User{Name: "Iris", Email: "iris@acme.io", Role: domain.RoleInterviewer}, f.admin.ID)
		require.NoError(t, err)
		c := f.candidate(t, "Ada", f.job(t, "QA").ID)
		_, err = f.svc.CreateInterview(ctx, domain.Interview{
			CandidateID:  c.ID,
			ScheduledAt:  now.Add(time.Hour),
			Interviewers: []string{panelist.ID},
		}, f.admin.ID)
		require.NoError(t, err)

		err = f.svc.DeleteUser(ctx, panelist.ID, f.admin.ID)
		var violation *apperror.ReferentialViolation
		require.ErrorAs(t, err, &violation)
		assert.Contains(t, violation.Message, "1 upcoming interviews")
		assert.Len(t, f.svc.ListUsers(), 2)
	})
}

func TestAggregateFeedback(t *testing.T) {
	records := []domain.Feedback{
		{Ratings: map[string]int{"technical": 5, "communication": 4}, Recommendation: domain.RecommendReject},
		{Ratings: map[string]int{"technical": 4}, Recommendation: domain.RecommendHold},
		{Ratings: map[string]int{"technical": 4, "communication": 3}, Recommendation: domain.RecommendHold},
	}

	t.Run("Should average each criterion over all feedback records", func(t *testing.T) {
		agg, err := usecase.AggregateFeedback("c1", records)
		require.NoError(t, err)
		assert.Equal(t, 4.3, agg.AverageRatings["technical"])
		assert.Equal(t, 2.3, agg.AverageRatings["communication"])
		assert.Equal(t, 3, agg.TotalFeedback)
		assert.Equal(t, domain.RecommendHold, agg.OverallRecommendation)
	})

	t.Run("Should count a skipped criterion as zero", func(t *testing.T) {
		agg, err := usecase.AggregateFeedback("c1", []domain.Feedback{
			{Ratings: map[string]int{"technical": 5, "communication": 4}},
			{Ratings: map[string]int{"technical": 4}},
		})
		require.NoError(t, err)
		assert.Equal(t, 4.5, agg.AverageRatings["technical"])
		assert.Equal(t, 2.0, agg.AverageRatings["communication"])
	})

	t.Run("Should not depend on record order", func(t *testing.T) {
		a, _ := usecase.AggregateFeedback("c1", records)
		b, _ := usecase.AggregateFeedback("c1", []domain.Feedback{records[2], records[0], records[1]})
		assert.Equal(t, a, b)
	})

	t.Run("Should break ties toward hire then hold", func(t *testing.T) {
		vote := func(recs ...string) string {
			var fb []domain.Feedback
			for _, r := range recs {
				fb = append(fb, domain.Feedback{Recommendation: r})
			}
			agg, err := usecase.AggregateFeedback("c1", fb)
			require.NoError(t, err)
			return agg.OverallRecommendation
		}
		assert.Equal(t, domain.RecommendHire, vote("hire", "reject"))
		assert.Equal(t, domain.RecommendHire, vote("hire", "hold", "reject"))
		assert.Equal(t, domain.RecommendHold, vote("hold", "reject"))
		assert.Equal(t, domain.RecommendReject, vote("reject", "reject", "hold"))
	})

	t.Run("Should report no data instead of zeros", func(t *testing.T) {
		_, err := usecase.AggregateFeedback("c1", nil)
		assert.ErrorIs(t, err, domain.ErrNoFeedback)
	})
}

func TestInterviewMetadata(t *testing.T) {
	ctx := context.Background()

	t.Run("Should pack mode and panel into notes and keep them in memory", func(t *testing.T) {
		f := newFixture(t)
		c := f.candidate(t, "Ada", f.job(t, "QA").ID)

		iv, err := f.svc.CreateInterview(ctx, domain.Interview{
			CandidateID:  c.ID,
			PanelType:    "technical",
			ScheduledAt:  now.Add(48 * time.Hour),
			Mode:         domain.ModeOnline,
			Interviewers: []string{f.admin.ID},
			Notes:        "Bring portfolio",
		}, f.admin.ID)
		require.NoError(t, err)

		assert.Equal(t, domain.ModeOnline, iv.Mode)
		assert.Equal(t, []string{f.admin.ID}, iv.Interviewers)
		assert.Equal(t, "Bring portfolio", iv.Notes)
		assert.Equal(t, "Ada", iv.CandidateName)
		assert.Equal(t, domain.DefaultInterviewDuration, iv.Duration)

		row := f.store.Rows("interviews")[0]
		assert.NotContains(t, row, "mode")
		assert.Contains(t, row["notes"], metacodec.Sentinel)
		assert.Equal(t, "technical", row["type"])
	})

	t.Run("Should keep packed fields across partial updates", func(t *testing.T) {
		f := newFixture(t)
		c := f.candidate(t, "Ada", f.job(t, "QA").ID)
		iv, err := f.svc.CreateInterview(ctx, domain.Interview{
			CandidateID: c.ID, ScheduledAt: now.Add(time.Hour), Mode: domain.ModeOffline, Notes: "Room 4",
		}, f.admin.ID)
		require.NoError(t, err)

		note := "Room 5"
		updated, err := f.svc.UpdateInterview(ctx, iv.ID, domain.InterviewPatch{Notes: &note}, f.admin.ID)
		require.NoError(t, err)
		assert.Equal(t, "Room 5", updated.Notes)
		assert.Equal(t, domain.ModeOffline, updated.Mode)

		cancelled := domain.InterviewCancelled
		updated, err = f.svc.UpdateInterview(ctx, iv.ID, domain.InterviewPatch{Status: &cancelled}, f.admin.ID)
		require.NoError(t, err)
		assert.Equal(t, "Room 5", updated.Notes)

		require.NoError(t, f.svc.Refresh(ctx))
		reloaded, err := f.svc.GetInterview(iv.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ModeOffline, reloaded.Mode)
		assert.Equal(t, "Room 5", reloaded.Notes)
		assert.True(t, reloaded.ScheduledAt.Equal(now.Add(time.Hour)))
	})

	t.Run("Should use the metadata column in column mode", func(t *testing.T) {
		f := newFixture(t, func(d *usecase.Deps) { d.Metadata = metacodec.ColumnWriter{} })
		c := f.candidate(t, "Ada", f.job(t, "QA").ID)
		_, err := f.svc.CreateInterview(ctx, domain.Interview{
			CandidateID: c.ID, ScheduledAt: now.Add(time.Hour), Mode: domain.ModeOnline, Notes: "plain",
		}, f.admin.ID)
		require.NoError(t, err)

		row := f.store.Rows("interviews")[0]
		assert.Equal(t, "plain", row["notes"])
		assert.Equal(t, "online", row["metadata"].(map[string]any)["mode"])

		require.NoError(t, f.svc.Refresh(ctx))
		assert.Equal(t, domain.ModeOnline, f.svc.ListInterviews()[0].Mode)
	})

	t.Run("Should list upcoming scheduled interviews nearest first", func(t *testing.T) {
		f := newFixture(t)
		c := f.candidate(t, "Ada", f.job(t, "QA").ID)
		for _, at := range []time.Duration{72 * time.Hour, -time.Hour, 2 * time.Hour} {
			_, err := f.svc.CreateInterview(ctx, domain.Interview{CandidateID: c.ID, ScheduledAt: now.Add(at)}, f.admin.ID)
			require.NoError(t, err)
		}

		upcoming := f.svc.GetUpcomingInterviews(now)
		require.Len(t, upcoming, 2)
		assert.True(t, upcoming[0].ScheduledAt.Equal(now.Add(2*time.Hour)))
		assert.Len(t, f.svc.GetInterviewsByInterviewer("nobody"), 0)
	})
}

func TestFailureHandling(t *testing.T) {
	ctx := context.Background()

	t.Run("Should succeed when only the audit write fails", func(t *testing.T) {
		f := newFixture(t)
		f.store.Fail(memory.OpInsert, "audit_log", errors.New("audit table down"))

		job, err := f.svc.CreateJob(ctx, domain.Job{Title: "SRE", Status: domain.JobStatusDraft}, f.admin.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, job.ID)
		assert.Len(t, f.svc.ListJobs(), 1)
	})

	t.Run("Should leave the cache untouched when the store write fails", func(t *testing.T) {
		f := newFixture(t)
		f.store.Fail(memory.OpInsert, "jobs", errors.New("constraint violation"))

		_, err := f.svc.CreateJob(ctx, domain.Job{Title: "SRE", Status: domain.JobStatusDraft}, f.admin.ID)
		var remote *apperror.RemoteStoreError
		require.ErrorAs(t, err, &remote)
		assert.Empty(t, f.svc.ListJobs())
	})

	t.Run("Should reject invalid input before any write", func(t *testing.T) {
		f := newFixture(t)
		job := f.job(t, "SRE")
		_, err := f.svc.CreateFeedback(ctx, domain.Feedback{
			InterviewID: "i", CandidateID: "c", Recommendation: domain.RecommendHire,
			Ratings: map[string]int{"technical": 6},
		}, f.admin.ID)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)

		_, err = f.svc.MoveCandidateToStage(ctx, f.candidate(t, "Ada", job.ID).ID, "lost", f.admin.ID)
		assert.ErrorAs(t, err, &appErr)
		assert.Empty(t, f.svc.ListFeedback())
	})

	t.Run("Should move candidates between any stages", func(t *testing.T) {
		f := newFixture(t)
		c := f.candidate(t, "Ada", f.job(t, "SRE").ID)
		for _, stage := range []string{domain.StageHired, domain.StageApplied, domain.StageOffer} {
			moved, err := f.svc.MoveCandidateToStage(ctx, c.ID, stage, f.admin.ID)
			require.NoError(t, err)
			assert.Equal(t, stage, moved.Stage)
		}
		assert.Len(t, f.svc.GetCandidatesByStage(domain.StageOffer), 1)
		assert.Len(t, f.svc.OfferEligibleCandidates(), 1)
	})
}

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, bucket, path, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) PublicURL(bucket, path string) string {
	return "https://cdn.test/" + bucket + "/" + path
}

func TestUploadResume(t *testing.T) {
	ctx := context.Background()
	pdf := []byte("%PDF-1.4 resume")

	t.Run("Should upload and record the attachment", func(t *testing.T) {
		blobs := new(MockBlobStore)
		f := newFixture(t, func(d *usecase.Deps) { d.Blobs = blobs })
		c := f.candidate(t, "Ada", f.job(t, "QA").ID)
		path := usecase.ResumePath(c.ID, "my cv.pdf", now)
		blobs.On("Upload", ctx, "resumes", path, pdf, "application/pdf").Return(path, nil)

		updated, err := f.svc.UploadResume(ctx, c.ID, domain.ResumeFile{Name: "my cv.pdf", Data: pdf}, f.admin.ID)
		require.NoError(t, err)

		assert.Equal(t, "candidates/"+c.ID+"/1748772000000_my_cv.pdf", path)
		require.NotNil(t, updated.ResumeURL)
		assert.Equal(t, "https://cdn.test/resumes/"+path, *updated.ResumeURL)
		assert.Equal(t, "my cv.pdf", *updated.ResumeName)
		assert.Equal(t, int64(len(pdf)), *updated.ResumeSize)
		assert.True(t, updated.ResumeUploadedAt.Equal(now))
		blobs.AssertExpectations(t)
	})

	t.Run("Should reject unsupported files without uploading", func(t *testing.T) {
		blobs := new(MockBlobStore)
		f := newFixture(t, func(d *usecase.Deps) { d.Blobs = blobs })
		c := f.candidate(t, "Ada", f.job(t, "QA").ID)

		_, err := f.svc.UploadResume(ctx, c.ID, domain.ResumeFile{Name: "cv.exe", Data: []byte("MZ")}, f.admin.ID)
		assert.Error(t, err)
		blobs.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should refuse infected resumes", func(t *testing.T) {
		blobs := new(MockBlobStore)
		f := newFixture(t, func(d *usecase.Deps) {
			d.Blobs = blobs
			d.Scanner = stubScanner{verdict: antivirus.Verdict{Infected: true, Threat: "Eicar-Signature"}}
		})
		c := f.candidate(t, "Ada", f.job(t, "QA").ID)

		_, err := f.svc.UploadResume(ctx, c.ID, domain.ResumeFile{Name: "cv.pdf", Data: pdf}, f.admin.ID)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 422, appErr.Code)
		blobs.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should fail closed when the scan errors", func(t *testing.T) {
		blobs := new(MockBlobStore)
		f := newFixture(t, func(d *usecase.Deps) {
			d.Blobs = blobs
			d.Scanner = antivirus.Chain{}
		})
		c := f.candidate(t, "Ada", f.job(t, "QA").ID)

		_, err := f.svc.UploadResume(ctx, c.ID, domain.ResumeFile{Name: "cv.pdf", Data: pdf}, f.admin.ID)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 503, appErr.Code)
		assert.ErrorIs(t, err, antivirus.ErrNoScanner)
	})
}

type stubScanner struct{ verdict antivirus.Verdict }

func (s stubScanner) Scan(context.Context, string, []byte) antivirus.Verdict { return s.verdict }
func (stubScanner) Name() string { return "stub" }
func (stubScanner) Available(context.Context) bool { return true }

func TestAnalyticsSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	job := f.job(t, "QA")
	_, err := f.svc.CreateJob(ctx, domain.Job{Title: "Old", Status: domain.JobStatusArchived}, f.admin.ID)
	require.NoError(t, err)

	recent := f.candidate(t, "Recent", job.ID)
	_, err = f.svc.CreateCandidate(ctx, domain.Candidate{Name: "Old", JobID: job.ID, AppliedAt: now.AddDate(0, 0, -45)}, f.admin.ID)
	require.NoError(t, err)
	_, err = f.svc.MoveCandidateToStage(ctx, recent.ID, domain.StageOffer, f.admin.ID)
	require.NoError(t, err)

	_, err = f.svc.CreateInterview(ctx, domain.Interview{CandidateID: recent.ID, ScheduledAt: now.Add(time.Hour)}, f.admin.ID)
	require.NoError(t, err)
	_, err = f.svc.CreateOffer(ctx, domain.Offer{CandidateID: recent.ID, BaseSalary: 90000, Status: domain.OfferSent}, f.admin.ID)
	require.NoError(t, err)

	snap := f.svc.GetAnalyticsSnapshot(now)
	assert.Equal(t, 2, snap.TotalJobs)
	assert.Equal(t, 1, snap.ActiveJobs)
	assert.Equal(t, 2, snap.TotalCandidates)
	assert.Equal(t, 1, snap.CandidatesByStage[domain.StageOffer])
	assert.Equal(t, 1, snap.CandidatesByStage[domain.StageApplied])
	assert.Equal(t, 0, snap.CandidatesByStage[domain.StageHired])
	assert.Equal(t, 1, snap.UpcomingInterviews)
	assert.Equal(t, 1, snap.PendingOffers)
	assert.Equal(t, 1, snap.RecentCandidates)
	assert.Equal(t, 1, snap.JobsByStatus[domain.JobStatusArchived])
	assert.Empty(t, f.svc.OfferEligibleCandidates())

	later := f.svc.GetAnalyticsSnapshot(now.Add(2 * time.Hour))
	assert.Equal(t, 0, later.UpcomingInterviews)
}

func TestRefreshAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	job := f.job(t, "QA")
	f.candidate(t, "Ada", job.ID)

	other := usecase.NewHiringService(usecase.Deps{
		Gateway: gateway.New(f.store, audit.NewRecorder(f.store, nil), nil),
		Audit:   audit.NewRecorder(f.store, nil),
	})
	require.NoError(t, other.Refresh(ctx))
	assert.Len(t, other.ListCandidates(), 1)
	assert.Len(t, other.GetCandidatesByJob(job.ID), 1)
	assert.Equal(t, 1, other.ListJobs()[0].Applicants)

	require.NoError(t, other.RecordLogin(ctx, f.admin.ID, ""))
	entries, err := other.GetAuditLog(ctx, domain.AuditFilter{Action: domain.ActionLogin})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "User switch: Unknown -> Admin", entries[0].Details)
	assert.Equal(t, f.admin.ID, entries[0].UserID)
}
