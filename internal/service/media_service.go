package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"progress-hub/backend/config"
	"progress-hub/backend/internal/dto"
	"progress-hub/backend/internal/model"
	"progress-hub/backend/internal/repository"
	apperr "progress-hub/backend/pkg/errors"
	"progress-hub/backend/pkg/storage"
)

// MediaService 训练动作视频与课时视频的上传、播放地址
type MediaService interface {
	ExerciseVideoUploadURL(ctx context.Context, exerciseID, contentType string) (*dto.VideoUploadURLResponse, error)
	SaveExerciseVideo(ctx context.Context, exerciseID string, req *dto.SaveExerciseVideoRequest) (*dto.ExerciseVideoResponse, error)
	GetExerciseVideo(ctx context.Context, exerciseID string) (*dto.ExerciseVideoResponse, error)

	LessonVideoUploadURL(ctx context.Context, lessonID, contentType string) (*dto.VideoUploadURLResponse, error)
	AttachLessonVideo(ctx context.Context, lessonID string, req *dto.AttachLessonVideoRequest) (*dto.LessonResponse, error)
	LessonVideoURL(ctx context.Context, lessonID string) (*dto.LessonVideoURLResponse, error)
}

type mediaService struct {
	repo    *repository.Repository
	storage storage.FileStorage
	expiry  time.Duration
	logger  *zap.Logger
}

// NewMediaService 创建 MediaService 实例
func NewMediaService(cfg *config.StorageConfig, repo *repository.Repository, store storage.FileStorage, logger *zap.Logger) MediaService {
	expiry := cfg.URLExpiry
	if expiry <= 0 {
		expiry = storage.DefaultPresignedURLExpiry
	}
	return &mediaService{repo: repo, storage: store, expiry: expiry, logger: logger}
}

var videoExtensions = map[string]string{
	"video/mp4":        ".mp4",
	"video/webm":       ".webm",
	"video/quicktime":  ".mov",
	"video/x-matroska": ".mkv",
}

// newVideoObjectKey 生成对象键：<prefix>/<ownerID>/<uuid><ext>
func newVideoObjectKey(prefix, ownerID, contentType string) (string, error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if !strings.HasPrefix(contentType, "video/") {
		return "", apperr.NewValidation("content_type", "只支持 video/* 类型")
	}
	return fmt.Sprintf("%s/%s/%s%s", prefix, ownerID, uuid.NewString(), videoExtensions[contentType]), nil
}

// ────────────────────── Exercise video ──────────────────────

func (s *mediaService) ExerciseVideoUploadURL(ctx context.Context, exerciseID, contentType string) (*dto.VideoUploadURLResponse, error) {
	if _, err := s.repo.Exercise.GetByID(ctx, exerciseID); err != nil {
		return nil, lookupError(s.logger, err, resourceExercise, exerciseID)
	}
	key, err := newVideoObjectKey("exercises", exerciseID, contentType)
	if err != nil {
		return nil, err
	}
	return s.presignUpload(ctx, key, contentType)
}

func (s *mediaService) SaveExerciseVideo(ctx context.Context, exerciseID string, req *dto.SaveExerciseVideoRequest) (*dto.ExerciseVideoResponse, error) {
	if _, err := s.repo.Exercise.GetByID(ctx, exerciseID); err != nil {
		return nil, lookupError(s.logger, err, resourceExercise, exerciseID)
	}
	if req.ObjectKey == "" && req.VideoURL == "" {
		return nil, apperr.NewValidation("object_key", "object_key 与 video_url 至少提供一个")
	}
	if req.ObjectKey != "" && !strings.HasPrefix(req.ObjectKey, "exercises/"+exerciseID+"/") {
		return nil, apperr.NewValidation("object_key", "不属于该动作")
	}

	video := &model.ExerciseVideo{
		ExerciseID:      exerciseID,
		ObjectKey:       req.ObjectKey,
		VideoURL:        req.VideoURL,
		ThumbnailURL:    req.ThumbnailURL,
		DurationSeconds: req.DurationSeconds,
		VideoTitle:      req.VideoTitle,
	}
	if err := s.repo.ExerciseVideo.Upsert(ctx, video); err != nil {
		s.logger.Error("保存动作视频失败", zap.String("exercise_id", exerciseID), zap.Error(err))
		return nil, err
	}

	return s.toExerciseVideoResponse(ctx, video), nil
}

func (s *mediaService) GetExerciseVideo(ctx context.Context, exerciseID string) (*dto.ExerciseVideoResponse, error) {
	video, err := s.repo.ExerciseVideo.GetByExercise(ctx, exerciseID)
	if err != nil {
		return nil, lookupError(s.logger, err, "exercise_video", exerciseID)
	}
	return s.toExerciseVideoResponse(ctx, video), nil
}

// toExerciseVideoResponse 优先为对象存储中的视频生成临时播放地址，否则使用外部 URL
func (s *mediaService) toExerciseVideoResponse(ctx context.Context, v *model.ExerciseVideo) *dto.ExerciseVideoResponse {
	resp := &dto.ExerciseVideoResponse{
		ExerciseID:      v.ExerciseID,
		ObjectKey:       v.ObjectKey,
		VideoURL:        v.VideoURL,
		ThumbnailURL:    v.ThumbnailURL,
		DurationSeconds: v.DurationSeconds,
		VideoTitle:      v.VideoTitle,
		PlaybackURL:     v.VideoURL,
	}
	if v.ObjectKey != "" {
		url, err := s.storage.PresignDownload(ctx, v.ObjectKey, s.expiry)
		if err == nil {
			resp.PlaybackURL = url
		} else if !errors.Is(err, storage.ErrStorageDisabled) {
			s.logger.Warn("生成视频播放地址失败", zap.String("object_key", v.ObjectKey), zap.Error(err))
		}
	}
	return resp
}

// ────────────────────── Lesson video ──────────────────────

func (s *mediaService) LessonVideoUploadURL(ctx context.Context, lessonID, contentType string) (*dto.VideoUploadURLResponse, error) {
	if _, err := s.repo.Lesson.GetByID(ctx, lessonID); err != nil {
		return nil, lookupError(s.logger, err, resourceLesson, lessonID)
	}
	key, err := newVideoObjectKey("lessons", lessonID, contentType)
	if err != nil {
		return nil, err
	}
	return s.presignUpload(ctx, key, contentType)
}

func (s *mediaService) AttachLessonVideo(ctx context.Context, lessonID string, req *dto.AttachLessonVideoRequest) (*dto.LessonResponse, error) {
	lesson, err := s.repo.Lesson.GetByID(ctx, lessonID)
	if err != nil {
		return nil, lookupError(s.logger, err, resourceLesson, lessonID)
	}
	if !strings.HasPrefix(req.ObjectKey, "lessons/"+lessonID+"/") {
		return nil, apperr.NewValidation("object_key", "不属于该课时")
	}

	previous := lesson.VideoObjectKey
	lesson.VideoObjectKey = req.ObjectKey
	if req.VideoDuration != nil {
		lesson.VideoDuration = req.VideoDuration
	}
	if err := s.repo.Lesson.Update(ctx, lesson); err != nil {
		s.logger.Error("绑定课时视频失败", zap.String("lesson_id", lessonID), zap.Error(err))
		return nil, err
	}

	// 替换后的旧对象尽力删除
	if previous != "" && previous != req.ObjectKey {
		if err := s.storage.DeleteObject(ctx, previous); err != nil {
			s.logger.Warn("删除旧课时视频失败", zap.String("object_key", previous), zap.Error(err))
		}
	}

	resp := toLessonResponse(lesson)
	return &resp, nil
}

func (s *mediaService) LessonVideoURL(ctx context.Context, lessonID string) (*dto.LessonVideoURLResponse, error) {
	lesson, err := s.repo.Lesson.GetByID(ctx, lessonID)
	if err != nil {
		return nil, lookupError(s.logger, err, resourceLesson, lessonID)
	}

	switch {
	case lesson.VideoObjectKey != "":
		url, err := s.storage.PresignDownload(ctx, lesson.VideoObjectKey, s.expiry)
		if err != nil {
			if !errors.Is(err, storage.ErrStorageDisabled) {
				s.logger.Error("生成课时播放地址失败", zap.String("lesson_id", lessonID), zap.Error(err))
			}
			return nil, err
		}
		return &dto.LessonVideoURLResponse{
			LessonID:    lessonID,
			PlaybackURL: url,
			ExpiresIn:   int(s.expiry.Seconds()),
		}, nil
	case lesson.VideoURL != "":
		return &dto.LessonVideoURLResponse{LessonID: lessonID, PlaybackURL: lesson.VideoURL}, nil
	}
	return nil, apperr.NewNotFound("lesson_video", lessonID)
}

func (s *mediaService) presignUpload(ctx context.Context, key, contentType string) (*dto.VideoUploadURLResponse, error) {
	url, err := s.storage.PresignUpload(ctx, key, contentType, s.expiry)
	if err != nil {
		if !errors.Is(err, storage.ErrStorageDisabled) {
			s.logger.Error("生成上传地址失败", zap.String("object_key", key), zap.Error(err))
		}
		return nil, err
	}
	return &dto.VideoUploadURLResponse{
		ObjectKey: key,
		UploadURL: url,
		ExpiresIn: int(s.expiry.Seconds()),
	}, nil
}
