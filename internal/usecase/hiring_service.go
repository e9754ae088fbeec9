package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-hiring-sync/internal/domain"
	"go-hiring-sync/pkg/apperror"
	"go-hiring-sync/pkg/metacodec"
	"go-hiring-sync/pkg/security/antivirus"
	"go-hiring-sync/pkg/validation"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// AuditLog is the recorder surface the service exposes to callers.
type AuditLog interface {
	domain.AuditRecorder
	Export(ctx context.Context, filter domain.AuditFilter, format string) ([]byte, string, error)
}

// Deps wires a HiringService. Blobs may be nil when uploads are disabled and
// Scanner nil when resumes are stored unscanned.
type Deps struct {
	Gateway      domain.EntityGateway
	Audit        AuditLog
	Blobs        domain.BlobStore
	Scanner      antivirus.Scanner
	Metadata     metacodec.Writer
	Validate     *validator.Validate
	Log          *zap.Logger
	Clock        func() time.Time
	ResumeBucket string
}

// HiringService holds one cached collection per entity type. The cache is
// changed only after the gateway acknowledged a write. mu guards the slices
// and is never held across a gateway call, so concurrent writes to the same
// entity are last-write-wins.
type HiringService struct {
	gw           domain.EntityGateway
	audit        AuditLog
	blobs        domain.BlobStore
	scanner      antivirus.Scanner
	meta         metacodec.Writer
	validate     *validator.Validate
	log          *zap.Logger
	now          func() time.Time
	resumeBucket string

	mu         sync.RWMutex
	users      []domain.User
	jobs       []domain.Job
	candidates []domain.Candidate
	interviews []domain.Interview
	feedback   []domain.Feedback
	offers     []domain.Offer
}

const DefaultResumeBucket = "resumes"

var (
	_ domain.UserUsecase      = (*HiringService)(nil)
	_ domain.JobUsecase       = (*HiringService)(nil)
	_ domain.CandidateUsecase = (*HiringService)(nil)
	_ domain.InterviewUsecase = (*HiringService)(nil)
	_ domain.FeedbackUsecase  = (*HiringService)(nil)
	_ domain.OfferUsecase     = (*HiringService)(nil)
	_ domain.AnalyticsUsecase = (*HiringService)(nil)
	_ domain.AuditUsecase     = (*HiringService)(nil)
)

func NewHiringService(d Deps) *HiringService {
	s := &HiringService{
		gw:           d.Gateway,
		audit:        d.Audit,
		blobs:        d.Blobs,
		scanner:      d.Scanner,
		meta:         d.Metadata,
		validate:     d.Validate,
		log:          d.Log,
		now:          d.Clock,
		resumeBucket: d.ResumeBucket,
	}
	if s.meta == nil {
		s.meta = metacodec.NotesWriter{}
	}
	if s.validate == nil {
		s.validate = validation.New()
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.resumeBucket == "" {
		s.resumeBucket = DefaultResumeBucket
	}
	return s
}

// Refresh reloads every collection. The cache is replaced only when all
// loads succeed.
func (s *HiringService) Refresh(ctx context.Context) error {
	loaded := make(map[domain.EntityType][]domain.Record, len(domain.SyncedEntities))
	for _, entity := range domain.SyncedEntities {
		recs, err := s.gw.List(ctx, entity)
		if err != nil {
			return fmt.Errorf("load %s: %w", entity, err)
		}
		loaded[entity] = recs
	}

	users, err := domain.FromRecords[domain.User](loaded[domain.EntityUsers])
	if err != nil {
		return err
	}
	jobs, err := domain.FromRecords[domain.Job](loaded[domain.EntityJobs])
	if err != nil {
		return err
	}
	candidates, err := domain.FromRecords[domain.Candidate](loaded[domain.EntityCandidates])
	if err != nil {
		return err
	}
	interviews, err := domain.FromRecords[domain.Interview](loaded[domain.EntityInterviews])
	if err != nil {
		return err
	}
	feedback, err := domain.FromRecords[domain.Feedback](loaded[domain.EntityFeedback])
	if err != nil {
		return err
	}
	offers, err := domain.FromRecords[domain.Offer](loaded[domain.EntityOffers])
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.users, s.jobs, s.candidates = users, jobs, candidates
	s.interviews, s.feedback, s.offers = interviews, feedback, offers
	s.mu.Unlock()

	s.log.Info("hiring data loaded",
		zap.Int("users", len(users)),
		zap.Int("jobs", len(jobs)),
		zap.Int("candidates", len(candidates)),
		zap.Int("interviews", len(interviews)),
		zap.Int("feedback", len(feedback)),
		zap.Int("offers", len(offers)),
	)
	return nil
}

func (s *HiringService) check(v any) error {
	if err := s.validate.Struct(v); err != nil {
		if msgs := validation.FormatValidationErrors(err); len(msgs) > 0 {
			return apperror.New(400, msgs[0], err)
		}
		return apperror.BadRequest(err.Error())
	}
	return nil
}

func notFound(entity domain.EntityType, id string) error {
	return apperror.New(404, fmt.Sprintf("%s %s not found", entity, id), domain.ErrNotFound)
}

// create sends v through the gateway and decodes the acknowledged row into T.
func create[T any](ctx context.Context, gw domain.EntityGateway, entity domain.EntityType, v any, actorID string) (T, error) {
	var out T
	rec, err := domain.ToRecord(v)
	if err != nil {
		return out, err
	}
	saved, err := gw.Create(ctx, entity, rec, actorID)
	if err != nil {
		return out, err
	}
	err = domain.FromRecord(saved, &out)
	return out, err
}

// update sends a patch struct (or record) through the gateway.
func update[T any](ctx context.Context, gw domain.EntityGateway, entity domain.EntityType, id string, patch any, actorID string) (T, error) {
	var out T
	rec, ok := patch.(domain.Record)
	if !ok {
		var err error
		if rec, err = domain.ToRecord(patch); err != nil {
			return out, err
		}
	}
	saved, err := gw.Update(ctx, entity, id, rec, actorID)
	if err != nil {
		return out, err
	}
	err = domain.FromRecord(saved, &out)
	return out, err
}

// cache helpers; callers hold s.mu

func find[T any](items []T, match func(T) bool) (T, bool) {
	for _, it := range items {
		if match(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func filter[T any](items []T, match func(T) bool) []T {
	out := make([]T, 0)
	for _, it := range items {
		if match(it) {
			out = append(out, it)
		}
	}
	return out
}

// replace swaps the item with the same id, or prepends it when absent.
func replace[T any](items []T, item T, id func(T) string) []T {
	key := id(item)
	for i := range items {
		if id(items[i]) == key {
			out := append([]T(nil), items...)
			out[i] = item
			return out
		}
	}
	return append([]T{item}, items...)
}

func remove[T any](items []T, key string, id func(T) string) []T {
	return filter(items, func(it T) bool { return id(it) != key })
}

func clone[T any](items []T) []T {
	return append(make([]T, 0, len(items)), items...)
}
