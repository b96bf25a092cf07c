package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/dto"
	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"
	appErrors "github.com/ReeshabhSaini/CampusGrid-sub000/pkg/errors"
)

type hallCatalog interface {
	List(ctx context.Context) ([]models.LectureHall, error)
	Create(ctx context.Context, hall *models.LectureHall) error
}

type courseCatalog interface {
	List(ctx context.Context, branch string, semester int) ([]models.Course, error)
	Create(ctx context.Context, course *models.Course) error
}

// CatalogService manages lecture halls and courses.
type CatalogService struct {
	halls     hallCatalog
	courses   courseCatalog
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(halls hallCatalog, courses courseCatalog, validate *validator.Validate, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{halls: halls, courses: courses, validator: ensureValidator(validate), logger: logger}
}

// ListHalls returns all lecture halls.
func (s *CatalogService) ListHalls(ctx context.Context) ([]models.LectureHall, error) {
	halls, err := s.halls.List(ctx)
	if err != nil {
		s.logger.Error("list halls failed", zap.Error(err))
		return nil, storeFailure(err)
	}
	return halls, nil
}

// CreateHall registers a lecture hall with a unique name.
func (s *CatalogService) CreateHall(ctx context.Context, req dto.CreateHallRequest) (*models.LectureHall, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid lecture hall payload")
	}
	hall := &models.LectureHall{Name: strings.TrimSpace(req.Name)}
	if err := s.halls.Create(ctx, hall); err != nil {
		if isUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "lecture hall name already exists")
		}
		s.logger.Error("create hall failed", zap.Error(err))
		return nil, storeFailure(err)
	}
	return hall, nil
}

// ListCourses returns courses, optionally narrowed to a branch and semester.
func (s *CatalogService) ListCourses(ctx context.Context, branch string, semester int) ([]models.Course, error) {
	courses, err := s.courses.List(ctx, branch, semester)
	if err != nil {
		s.logger.Error("list courses failed", zap.Error(err))
		return nil, storeFailure(err)
	}
	return courses, nil
}

// CreateCourse registers a course with a unique code.
func (s *CatalogService) CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid course payload")
	}
	course := &models.Course{
		Code:     strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:     strings.TrimSpace(req.Name),
		Branch:   strings.TrimSpace(req.Branch),
		Semester: req.Semester,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		if isUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "course code already exists")
		}
		s.logger.Error("create course failed", zap.Error(err))
		return nil, storeFailure(err)
	}
	return course, nil
}
