package service

import (
	"bytes"
	"club-api/core/constants"
	"club-api/core/errors"
	"club-api/core/logger"
	"club-api/core/storage"
	"club-api/modules/coach/dto"
	"club-api/modules/coach/mapper"
	"club-api/modules/coach/repository"
	"context"
	stdErrors "errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ObjectStore is the part of core/storage the profile upload needs.
type ObjectStore interface {
	Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

type CoachService struct {
	repo  repository.CoachRepositoryInterface
	store ObjectStore
}

type CoachServiceInterface interface {
	GetProfile(ctx context.Context, coachID uuid.UUID) (*dto.ProfileResponse, *errors.AppError)
	UpdateProfilePicture(ctx context.Context, coachID uuid.UUID, filename string, size int64, body io.Reader) (*dto.ProfilePictureResponse, *errors.AppError)
}

func NewCoachService(repo repository.CoachRepositoryInterface, store ObjectStore) *CoachService {
	return &CoachService{repo: repo, store: store}
}

func (s *CoachService) GetProfile(ctx context.Context, coachID uuid.UUID) (*dto.ProfileResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	coach, err := s.repo.GetByID(ctx, coachID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get profile", err)
	}
	if coach == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Coach not found", nil)
	}
	teams, err := s.repo.Teams(ctx, coachID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get profile", err)
	}
	return mapper.ToProfileResponse(coach, teams), nil
}

// UpdateProfilePicture stores a new picture and then removes the previous one.
// The content type is sniffed from the bytes, not taken from the client.
func (s *CoachService) UpdateProfilePicture(ctx context.Context, coachID uuid.UUID, filename string, size int64, body io.Reader) (*dto.ProfilePictureResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if size > constants.MaxUploadSize {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "File must be 5MB or smaller", nil)
	}

	data, err := io.ReadAll(io.LimitReader(body, constants.MaxUploadSize+1))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidRequestData, "Unable to read uploaded file", err)
	}
	if len(data) > constants.MaxUploadSize {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "File must be 5MB or smaller", nil)
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Only image files are allowed", nil)
	}

	coach, err := s.repo.GetByID(ctx, coachID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get profile", err)
	}
	if coach == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Coach not found", nil)
	}

	url, err := s.store.Upload(ctx, constants.ProfilePictureDir, filename, contentType, bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUploadFailed, "Failed to upload profile picture", err)
	}
	if err := s.repo.UpdateProfilePicture(ctx, coachID, url); err != nil {
		if delErr := s.store.Delete(ctx, url); delErr != nil {
			logger.Error("CoachService:UpdateProfilePicture:Cleanup", delErr)
		}
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update profile picture", err)
	}

	if old := coach.ProfilePicture; old != nil && *old != "" && *old != url {
		if err := s.store.Delete(ctx, *old); err != nil && !stdErrors.Is(err, storage.ErrForeignObject) {
			logger.Warn("CoachService:UpdateProfilePicture:DeleteOld", "url", *old, "error", err)
		}
	}

	logger.Info("CoachService:UpdateProfilePicture:Done", "coach_id", coachID)
	return &dto.ProfilePictureResponse{ProfilePicture: url}, nil
}
