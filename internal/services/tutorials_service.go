package services

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/tutorialhub/backend/internal/models"
)

// TutorialsRepository is the interface that wraps methods for tutorials collection data access
type TutorialsRepository interface {
	// Method Create inserts a new tutorial document into the collection.
	//
	// The repository assigns the id and timestamps; published is always false on creation.
	// If some error occurs during insertion, the error will be returned together with "nil" value.
	Create(ctx context.Context, req *models.CreateTutorialRequest) (*models.Tutorial, error)
	// Method GetAll retrieves all tutorials from the collection.
	//
	// "titleFilter" parameter, when non-empty, restricts the result to tutorials whose
	// title contains the given substring (case-insensitive).
	// If some error occurs during data retrieval, the error will be returned together with "nil" value.
	GetAll(ctx context.Context, titleFilter string) ([]models.Tutorial, error)
	// Method GetPublished retrieves all tutorials with published=true.
	//
	// If some error occurs during data retrieval, the error will be returned together with "nil" value.
	GetPublished(ctx context.Context) ([]models.Tutorial, error)
	// Method GetByID retrieves a tutorial by its id.
	//
	// A "tutorial not found" error is returned when no document has the given id.
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Tutorial, error)
	// Method Update merges the non-nil fields of "req" into an existing tutorial.
	//
	// The updated document is returned. A "tutorial not found" error is returned
	// when no document has the given id.
	Update(ctx context.Context, id primitive.ObjectID, req *models.UpdateTutorialRequest) (*models.Tutorial, error)
	// Method Delete removes a tutorial by its id.
	//
	// A "tutorial not found" error is returned when no document has the given id.
	Delete(ctx context.Context, id primitive.ObjectID) error
	// Method DeleteAll removes every tutorial and reports the removed count.
	DeleteAll(ctx context.Context) (int64, error)
}

type tutorialsService struct {
	repo   TutorialsRepository
	logger *zap.Logger
}

// NewTutorialsService creates a new tutorials service
func NewTutorialsService(repo TutorialsRepository, logger *zap.Logger) *tutorialsService {
	return &tutorialsService{
		repo:   repo,
		logger: logger,
	}
}

// Create validates and stores a new tutorial.
// Title is required; published starts as false regardless of the request.
func (s *tutorialsService) Create(ctx context.Context, req *models.CreateTutorialRequest) (*models.Tutorial, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}

	tutorial, err := s.repo.Create(ctx, req)
	if err != nil {
		s.logger.Error("failed to create tutorial", zap.Error(err))
		return nil, fmt.Errorf("failed to create tutorial: %w", err)
	}

	return tutorial, nil
}

// GetAll retrieves all tutorials, optionally filtered by title substring
func (s *tutorialsService) GetAll(ctx context.Context, titleFilter string) ([]models.Tutorial, error) {
	tutorials, err := s.repo.GetAll(ctx, titleFilter)
	if err != nil {
		s.logger.Error("failed to get tutorials", zap.Error(err))
		return nil, fmt.Errorf("failed to get tutorials: %w", err)
	}

	return tutorials, nil
}

// GetPublished retrieves all published tutorials
func (s *tutorialsService) GetPublished(ctx context.Context) ([]models.Tutorial, error) {
	tutorials, err := s.repo.GetPublished(ctx)
	if err != nil {
		s.logger.Error("failed to get published tutorials", zap.Error(err))
		return nil, fmt.Errorf("failed to get published tutorials: %w", err)
	}

	return tutorials, nil
}

// GetByID retrieves a tutorial by its id.
// A malformed id is reported as "tutorial not found": unknown and unparseable
// identifiers look the same to the caller.
func (s *tutorialsService) GetByID(ctx context.Context, idParam string) (*models.Tutorial, error) {
	id, err := s.parseID(idParam)
	if err != nil {
		return nil, err
	}

	tutorial, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get tutorial by id", zap.Error(err), zap.String("id", idParam))
		return nil, fmt.Errorf("failed to get tutorial: %w", err)
	}

	return tutorial, nil
}

// Update merges the supplied fields into an existing tutorial
func (s *tutorialsService) Update(ctx context.Context, idParam string, req *models.UpdateTutorialRequest) (*models.Tutorial, error) {
	id, err := s.parseID(idParam)
	if err != nil {
		return nil, err
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, fmt.Errorf("title cannot be empty")
	}

	tutorial, err := s.repo.Update(ctx, id, req)
	if err != nil {
		s.logger.Error("failed to update tutorial", zap.Error(err), zap.String("id", idParam))
		return nil, fmt.Errorf("failed to update tutorial: %w", err)
	}

	return tutorial, nil
}

// Delete removes a tutorial by its id
func (s *tutorialsService) Delete(ctx context.Context, idParam string) error {
	id, err := s.parseID(idParam)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete tutorial", zap.Error(err), zap.String("id", idParam))
		return fmt.Errorf("failed to delete tutorial: %w", err)
	}

	return nil
}

// DeleteAll removes every tutorial and reports the removed count
func (s *tutorialsService) DeleteAll(ctx context.Context) (int64, error) {
	count, err := s.repo.DeleteAll(ctx)
	if err != nil {
		s.logger.Error("failed to delete all tutorials", zap.Error(err))
		return 0, fmt.Errorf("failed to delete all tutorials: %w", err)
	}

	return count, nil
}

// parseID converts a path parameter into an ObjectID
func (s *tutorialsService) parseID(idParam string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("tutorial not found")
	}
	return id, nil
}
