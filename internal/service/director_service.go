package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/multicampussa/laams-director-api/internal/dto"
	"github.com/multicampussa/laams-director-api/internal/models"
	appErrors "github.com/multicampussa/laams-director-api/pkg/errors"
)

// Korean reasons carried inside invalid-argument failures. Clients render
// these verbatim.
const (
	msgExamNotFound       = "존재하지 않는 시험입니다."
	msgExamineeNotFound   = "존재하지 않는 응시자입니다."
	msgDirectorNotFound   = "존재하지 않는 감독관입니다."
	msgExamScopeDenied    = "담당 센터의 시험이 아닙니다."
	msgDocumentFinalized  = "이미 서류 제출 여부가 확정된 응시자입니다."
	msgDocumentInvalid    = "올바르지 않은 서류 상태입니다."
	msgAssignmentFull     = "시험 배정 인원이 가득 찼습니다."
	msgNoExamToday        = "오늘 배정된 시험이 없습니다."
	msgNotOwnAttendance   = "본인의 센터 도착 인증만 등록할 수 있습니다."
	msgCompensationNotSet = "보상 신청 내용이 올바르지 않습니다."
)

type examStore interface {
	FindByNo(ctx context.Context, examNo int64) (*models.Exam, error)
	CalendarForDirector(ctx context.Context, directorNo int64, period dto.CalendarPeriod) ([]dto.ExamCalendarItem, error)
	UnappliedAndUnapproved(ctx context.Context, directorNo, centerNo int64, period dto.CalendarPeriod) ([]dto.ExamCalendarItem, error)
	PossibleToApply(ctx context.Context, directorNo, centerNo int64, period dto.CalendarPeriod) ([]dto.ExamCalendarItem, error)
	AssignedDirectorNames(ctx context.Context, examNo int64) ([]string, error)
}

type examExamineeStore interface {
	ListByExam(ctx context.Context, examNo int64) ([]models.ExamExaminee, error)
	FindByExamAndExaminee(ctx context.Context, examNo, examineeNo int64) (*models.ExamExaminee, error)
	Status(ctx context.Context, examNo int64) (*dto.ExamStatus, error)
	MarkAttendance(ctx context.Context, examNo, examineeNo int64, at time.Time) (int64, error)
	UpdateDocument(ctx context.Context, examNo, examineeNo int64, status models.DocumentStatus) error
	ApplyCompensation(ctx context.Context, examNo, examineeNo int64, compensationType, reason string) error
	UpdateImage(ctx context.Context, examNo, examineeNo int64, imageURL, imageReason string) error
}

type assignmentStore interface {
	Find(ctx context.Context, examNo, directorNo int64) (*models.ExamDirector, error)
	Create(ctx context.Context, examNo, directorNo int64) error
	CountActive(ctx context.Context, examNo int64) (int, error)
	HasApproved(ctx context.Context, examNo, directorNo int64) (bool, error)
	TodayApprovedExam(ctx context.Context, directorNo int64, day time.Time) (*models.Exam, error)
}

type directorStore interface {
	FindByLoginID(ctx context.Context, loginID string) (*models.Director, error)
	FindByNo(ctx context.Context, no int64) (*models.Director, error)
}

type directorAttendanceStore interface {
	Create(ctx context.Context, record *models.DirectorAttendance) error
}

type calendarCache interface {
	Enabled() bool
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, pattern string) error
}

// DirectorService implements the proctor-facing business operations.
// Every entry point re-validates the caller's authority: the HTTP role gate
// is necessary but not sufficient.
type DirectorService struct {
	exams       examStore
	examinees   examExamineeStore
	assignments assignmentStore
	directors   directorStore
	checkins    directorAttendanceStore
	cache       calendarCache
	validator   *validator.Validate
	logger      *zap.Logger
	now         func() time.Time
}

// NewDirectorService constructs a DirectorService.
func NewDirectorService(
	exams examStore,
	examinees examExamineeStore,
	assignments assignmentStore,
	directors directorStore,
	checkins directorAttendanceStore,
	cache calendarCache,
	validate *validator.Validate,
	logger *zap.Logger,
) *DirectorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectorService{
		exams:       exams,
		examinees:   examinees,
		assignments: assignments,
		directors:   directors,
		checkins:    checkins,
		cache:       cache,
		validator:   validate,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *DirectorService) requireDirector(claims *models.DirectorClaims) error {
	if claims == nil || !claims.IsDirector() {
		return appErrors.ErrUnauthorized
	}
	return nil
}

// caller resolves the director row behind the token's id claim.
func (s *DirectorService) caller(ctx context.Context, claims *models.DirectorClaims) (*models.Director, error) {
	director, err := s.directors.FindByLoginID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.InvalidArgument(msgDirectorNotFound)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve director")
	}
	return director, nil
}

// ensureExamAccess loads the exam and verifies the caller can touch it:
// same center, or an approved assignment on that exam.
func (s *DirectorService) ensureExamAccess(ctx context.Context, examNo int64, claims *models.DirectorClaims) (*models.Exam, error) {
	exam, err := s.exams.FindByNo(ctx, examNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.InvalidArgument(msgExamNotFound)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam")
	}

	director, err := s.caller(ctx, claims)
	if err != nil {
		return nil, err
	}

	if exam.CenterNo == director.CenterNo {
		return exam, nil
	}

	approved, err := s.assignments.HasApproved(ctx, examNo, director.No)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify assignment")
	}
	if !approved {
		return nil, appErrors.InvalidArgument(msgExamScopeDenied)
	}
	return exam, nil
}

// ExamCalendar returns exams visible to the director in the period. Whole
// month aggregates are cached; single-day views go straight to the store.
func (s *DirectorService) ExamCalendar(ctx context.Context, directorNo int64, period dto.CalendarPeriod, claims *models.DirectorClaims) ([]dto.ExamCalendarItem, error) {
	if err := s.requireDirector(claims); err != nil {
		return nil, err
	}

	cacheKey := CalendarKey(directorNo, period.Year, period.Month)
	if period.Day == 0 && s.cache != nil && s.cache.Enabled() {
		var cached []dto.ExamCalendarItem
		if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
			return cached, nil
		}
	}

	items, err := s.exams.CalendarForDirector(ctx, directorNo, period)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list exams")
	}

	if period.Day == 0 && s.cache != nil && s.cache.Enabled() {
		if err := s.cache.Set(ctx, cacheKey, items, 0); err != nil {
			s.logger.Warn("failed to cache calendar", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return items, nil
}

// ExamInformation aggregates the exam detail view.
func (s *DirectorService) ExamInformation(ctx context.Context, examNo int64, claims *models.DirectorClaims) (*dto.ExamInformation, error) {
	if err := s.requireDirector(claims); err != nil {
		return nil, err
	}
	exam, err := s.ensureExamAccess(ctx, examNo, claims)
	if err != nil {
		return nil, err
	}

	status, err := s.examinees.Status(ctx, examNo)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate examinees")
	}
	directors, err := s.exams.AssignedDirectorNames(ctx, examNo)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list directors")
	}

	return &dto.ExamInformation{
		ExamNo:        exam.No,
		Name:          exam.Name,
		ExamDate:      exam.Date,
		CenterNo:      exam.CenterNo,
		Capacity:      exam.Capacity,
		TotalExaminee: status.TotalExaminee,
		Directors:     directors,
	}, nil
}

// ExamExamineeList returns the roster for an exam.
func (s *DirectorService) ExamExamineeList(ctx context.Context, examNo int64, claims *models.DirectorClaims) ([]dto.ExamExamineeItem, error) {
	if err := s.requireDirector(claims); err != nil {
		return nil, err
	}
	if _, err := s.ensureExamAccess(ctx, examNo, claims); err != nil {
		return nil, err
	}

	rows, err := s.examinees.ListByExam(ctx, examNo)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list examinees")
	}

	items := make([]dto.ExamExamineeItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.ExamExamineeItem{
			ExamineeNo:   row.ExamineeNo,
			ExamineeName: row.ExamineeName,
			ExamineeCode: row.ExamineeCode,
			Attendance:   row.Attendance,
			Document:     row.Document,
		})
	}
	return items, nil
}

func (s *DirectorService) enrollment(ctx context.Context, examNo, examineeNo int64) (*models.ExamExaminee, error) {
	row, err := s.examinees.FindByExamAndExaminee(ctx, examNo, examineeNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.InvalidArgument(msgExamineeNotFound)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load examinee")
	}
	return row, nil
}

// ExamExaminee returns the per-candidate detail view.
func (s *DirectorService) ExamExaminee(ctx context.Context, examNo, examineeNo int64, claims *models.DirectorClaims) (*dto.ExamExamineeDetail, error) {
	if err := s.requireDirector(claims); err != nil {
		return nil, err
	}
	if _, err := s.ensureExamAccess(ctx, examNo, claims); err != nil {
		return nil, err
	}

	row, err := s.enrollment(ctx, examNo, examineeNo)
	if err != nil {
		return nil, err
	}

	return &dto.ExamExamineeDetail{
		ExamineeNo:         row.ExamineeNo,
		ExamineeName:       row.ExamineeName,
		ExamineeCode:       row.ExamineeCode,
		Attendance:         row.Attendance,
		AttendanceTime:     row.AttendanceTime,
		Document:           row.Document,
		Compensation:       row.Compensation,
		CompensationType:   row.CompensationType,
		CompensationReason: row.CompensationReason,
		ImageURL:           row.ImageURL,
		ImageReason:        row.ImageReason,
	}, nil
}

// ExamStatus summarises attendance and document progress for an exam.
func (s *DirectorService) ExamStatus(ctx context.Context, examNo int64, claims *models.DirectorClaims) (*dto.ExamStatus, error) {
	if err := s.requireDirector(claims); err != nil {
		return nil, err
	}
	if _, err := s.ensureExamAccess(ctx, examNo, claims); err != nil {
		return nil, err
	}

	status, err := s.examinees.Status(ctx, examNo)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate status")
	}
	return status, nil
}

// CheckAttendance flips attendance to present, stamping the server time on
// the first call. Re-invocation returns the stored row unchanged.
func (s *DirectorService) CheckAttendance(ctx context.Context, examNo, examineeNo int64, claims *models.DirectorClaims) (*dto.CheckAttendance, error) {
	if err := s.requireDirector(claims); err != nil {
		return nil, err
	}
	if _, err := s.ensureExamAccess(ctx, examNo, claims); err != nil {
		return nil, err
	}
	if _, err := s.enrollment(ctx, examNo, examineeNo); err != nil {
		return nil, err
	}

	affected, err := s.examinees.MarkAttendance(ctx, examNo, examineeNo, s.now())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark attendance")
	}
	if affected == 0 {
		s.logger.Debug("attendance already checked",
			zap.Int64("examNo", examNo), zap.Int64("examineeNo", examineeNo))
	}

	row, err := s.enrollment(ctx, examNo, examineeNo)
	if err != nil {
		return nil, err
	}
	return &dto.CheckAttendance{
		ExamineeNo:     row.ExamineeNo,
		ExamineeName:   row.ExamineeName,
		Attendance:     row.Attendance,
		AttendanceTime: row.AttendanceTime,
	}, nil
}

// CheckDocument sets the document submission state. The state machine only
// moves forward: awaiting may become submitted or missing, both final.
func (s *DirectorService) CheckDocument(ctx context.Context, examNo, examineeNo int64, req dto.DocumentRequest, claims *models.DirectorClaims) (*dto.CheckDocument, error) {
	if err := s.requireDirector(claims); err != nil {
		return nil, err
	}
	if !req.Document.Valid() {
		return nil, appErrors.InvalidArgument(msgDocumentInvalid)
	}
	if _, err := s.ensureExamAccess(ctx, examNo, claims); err != nil {
		return nil, err
	}

	row, err := s.enrollment(ctx, examNo, examineeNo)
	if err != nil {
		return nil, err
	}

	if req.Document != row.Document {
		if row.Document.Terminal() {
			return nil, appErrors.InvalidArgument(msgDocumentFinalized)
		}
		if err := s.examinees.UpdateDocument(ctx, examNo, examineeNo, req.Document); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update document")
		}
		row.Document = req.Document
	}

	return &dto.CheckDocument{
		ExamineeNo:   row.ExamineeNo,
		ExamineeName: row.ExamineeName,
		Document:     row.Document,
	}, nil
}

// RequestExamAssignment creates a requested assignment row. Re-requests by
// the same director are a no-op, and capacity is never over-filled.
func (s *DirectorService) RequestExamAssignment(ctx context.Context, examNo int64, claims *models.DirectorClaims) error {
	if err := s.requireDirector(claims); err != nil {
		return err
	}

	director, err := s.caller(ctx, claims)
	if err != nil {
		return err
	}

	exam, err := s.exams.FindByNo(ctx, examNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.InvalidArgument(msgExamNotFound)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam")
	}

	if exam.CenterNo != claims.CenterNo {
		return appErrors.InvalidArgument(msgExamScopeDenied)
	}

	if _, err := s.assignments.Find(ctx, examNo, director.No); err == nil {
		// Idempotent: the row already exists, report success without inserting.
		return nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check assignment")
	}

	active, err := s.assignments.CountActive(ctx, examNo)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count assignments")
	}
	if active >= exam.Capacity {
		return appErrors.InvalidArgument(msgAssignmentFull)
	}

	if err := s.assignments.Create(ctx, examNo, director.No); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}

	if s.cache != nil && s.cache.Enabled() {
		pattern := CalendarPattern(director.No)
		if err := s.cache.Invalidate(ctx, pattern); err != nil {
			s.logger.Warn("failed to invalidate calendar cache", zap.String("pattern", pattern), zap.Error(err))
		}
	}
	return nil
}

// ApplyCompensation records a compensation claim for an examinee.
func (s *DirectorService) ApplyCompensation(ctx context.Context, examNo, examineeNo int64, req dto.CompensationApplyRequest, claims *models.DirectorClaims) error {
	if err := s.requireDirector(claims); err != nil {
		return err
	}
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInvalidArgument.Code, appErrors.ErrInvalidArgument.Status, msgCompensationNotSet)
	}
	if _, err := s.ensureExamAccess(ctx, examNo, claims); err != nil {
		return err
	}
	if _, err := s.enrollment(ctx, examNo, examineeNo); err != nil {
		return err
	}

	if err := s.examinees.ApplyCompensation(ctx, examNo, examineeNo, req.CompensationType, req.CompensationReason); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to apply compensation")
	}
	return nil
}

// SaveExamineeImage persists the URL of the most recent upload for the
// enrollment row, together with the reason the image was taken.
func (s *DirectorService) SaveExamineeImage(ctx context.Context, examNo, examineeNo int64, imageURL, imageReason string, claims *models.DirectorClaims) error {
	if err := s.requireDirector(claims); err != nil {
		return err
	}
	if _, err := s.enrollment(ctx, examNo, examineeNo); err != nil {
		return err
	}
	if err := s.examinees.UpdateImage(ctx, examNo, examineeNo, imageURL, imageReason); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save image url")
	}
	return nil
}

func (s *DirectorService) recordCheckIn(ctx context.Context, examNo int64, director *models.Director, req dto.DirectorAttendanceRequest) (*dto.DirectorAttendanceResponse, error) {
	record := &models.DirectorAttendance{
		ExamNo:     examNo,
		DirectorNo: director.No,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Device:     req.Device,
		CheckedAt:  s.now(),
	}
	if err := s.checkins.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record check-in")
	}
	return &dto.DirectorAttendanceResponse{
		ExamNo:     record.ExamNo,
		DirectorNo: record.DirectorNo,
		Latitude:   record.Latitude,
		Longitude:  record.Longitude,
		Device:     record.Device,
		CheckedAt:  record.CheckedAt,
	}, nil
}

// AttendanceDirector records a center arrival check-in for a specific exam.
func (s *DirectorService) AttendanceDirector(ctx context.Context, examNo, directorNo int64, req dto.DirectorAttendanceRequest, claims *models.DirectorClaims) (*dto.DirectorAttendanceResponse, error) {
	if err := s.requireDirector(claims); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidArgument.Code, appErrors.ErrInvalidArgument.Status, "센터 도착 인증 정보가 올바르지 않습니다.")
	}

	director, err := s.caller(ctx, claims)
	if err != nil {
		return nil, err
	}
	if director.No != directorNo {
		return nil, appErrors.InvalidArgument(msgNotOwnAttendance)
	}
	if _, err := s.ensureExamAccess(ctx, examNo, claims); err != nil {
		return nil, err
	}

	return s.recordCheckIn(ctx, examNo, director, req)
}

// AttendanceDirectorHome records a check-in against today's approved exam,
// resolved from the caller's assignments.
func (s *DirectorService) AttendanceDirectorHome(ctx context.Context, req dto.DirectorAttendanceRequest, claims *models.DirectorClaims) (*dto.DirectorAttendanceResponse, error) {
	if err := s.requireDirector(claims); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidArgument.Code, appErrors.ErrInvalidArgument.Status, "센터 도착 인증 정보가 올바르지 않습니다.")
	}

	director, err := s.caller(ctx, claims)
	if err != nil {
		return nil, err
	}

	exam, err := s.assignments.TodayApprovedExam(ctx, director.No, s.now())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.InvalidArgument(msgNoExamToday)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve today's exam")
	}

	return s.recordCheckIn(ctx, exam.No, director, req)
}

// UnappliedAndUnapprovedExamList lists center exams the caller has not
// applied to plus those applied but not yet approved.
func (s *DirectorService) UnappliedAndUnapprovedExamList(ctx context.Context, period dto.CalendarPeriod, claims *models.DirectorClaims) ([]dto.ExamCalendarItem, error) {
	if err := s.requireDirector(claims); err != nil {
		return nil, err
	}
	director, err := s.caller(ctx, claims)
	if err != nil {
		return nil, err
	}
	items, err := s.exams.UnappliedAndUnapproved(ctx, director.No, claims.CenterNo, period)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list exams")
	}
	return items, nil
}

// PossibleToApplyExamList lists center exams still open to the caller.
func (s *DirectorService) PossibleToApplyExamList(ctx context.Context, period dto.CalendarPeriod, claims *models.DirectorClaims) ([]dto.ExamCalendarItem, error) {
	if err := s.requireDirector(claims); err != nil {
		return nil, err
	}
	director, err := s.caller(ctx, claims)
	if err != nil {
		return nil, err
	}
	items, err := s.exams.PossibleToApply(ctx, director.No, claims.CenterNo, period)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list exams")
	}
	return items, nil
}
