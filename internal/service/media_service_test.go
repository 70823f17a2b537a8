package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"progress-hub/backend/config"
	"progress-hub/backend/internal/dto"
	"progress-hub/backend/internal/model"
	apperr "progress-hub/backend/pkg/errors"
	"progress-hub/backend/pkg/storage"
)

// fakeStorage 记录调用并返回可预测的 URL
type fakeStorage struct {
	deleted []string
}

func (f *fakeStorage) PresignUpload(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	return "https://upload.test/" + key, nil
}

func (f *fakeStorage) PresignDownload(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://cdn.test/" + key, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func setupTestMediaService(store storage.FileStorage) (MediaService, *memDB) {
	repo, db := newTestRepository()
	cfg := &config.StorageConfig{URLExpiry: 10 * time.Minute}
	return NewMediaService(cfg, repo, store, zap.NewNop()), db
}

func seedExercise(db *memDB) *model.Exercise {
	e := &model.Exercise{WorkoutID: "workout-x", ExerciseName: "Deadlift"}
	(&mockExerciseRepo{db: db}).Create(context.Background(), e)
	return e
}

func TestMediaService_UploadURL_StorageDisabled(t *testing.T) {
	svc, db := setupTestMediaService(storage.Disabled())
	e := seedExercise(db)

	if _, err := svc.ExerciseVideoUploadURL(context.Background(), e.ExerciseID, "video/mp4"); !errors.Is(err, storage.ErrStorageDisabled) {
		t.Fatalf("未启用存储应返回 ErrStorageDisabled，实际: %v", err)
	}
}

func TestMediaService_UploadURL_ObjectKey(t *testing.T) {
	svc, db := setupTestMediaService(&fakeStorage{})
	e := seedExercise(db)

	resp, err := svc.ExerciseVideoUploadURL(context.Background(), e.ExerciseID, "video/mp4")
	if err != nil {
		t.Fatalf("生成上传地址失败: %v", err)
	}
	if !strings.HasPrefix(resp.ObjectKey, "exercises/"+e.ExerciseID+"/") || !strings.HasSuffix(resp.ObjectKey, ".mp4") {
		t.Errorf("对象键格式不符: %s", resp.ObjectKey)
	}
	if resp.UploadURL != "https://upload.test/"+resp.ObjectKey || resp.ExpiresIn != 600 {
		t.Errorf("上传地址或有效期不符: %+v", resp)
	}

	if _, err := svc.ExerciseVideoUploadURL(context.Background(), e.ExerciseID, "image/png"); !apperr.IsValidation(err) {
		t.Errorf("非视频类型应校验失败，实际: %v", err)
	}
	if _, err := svc.ExerciseVideoUploadURL(context.Background(), "exercise-missing", "video/mp4"); !apperr.IsNotFound(err) {
		t.Errorf("动作不存在应返回 NotFoundError，实际: %v", err)
	}
}

func TestMediaService_SaveExerciseVideo(t *testing.T) {
	svc, db := setupTestMediaService(&fakeStorage{})
	e := seedExercise(db)
	ctx := context.Background()

	if _, err := svc.SaveExerciseVideo(ctx, e.ExerciseID, &dto.SaveExerciseVideoRequest{}); !apperr.IsValidation(err) {
		t.Errorf("缺少 object_key 与 video_url 应校验失败，实际: %v", err)
	}
	if _, err := svc.SaveExerciseVideo(ctx, e.ExerciseID, &dto.SaveExerciseVideoRequest{ObjectKey: "exercises/other/a.mp4"}); !apperr.IsValidation(err) {
		t.Errorf("不属于该动作的对象键应校验失败，实际: %v", err)
	}

	key := "exercises/" + e.ExerciseID + "/demo.mp4"
	resp, err := svc.SaveExerciseVideo(ctx, e.ExerciseID, &dto.SaveExerciseVideoRequest{ObjectKey: key, VideoTitle: "标准动作"})
	if err != nil {
		t.Fatalf("保存视频失败: %v", err)
	}
	if resp.PlaybackURL != "https://cdn.test/"+key {
		t.Errorf("应返回预签名播放地址，实际 %s", resp.PlaybackURL)
	}

	// 再次保存覆盖同一条记录
	svc.SaveExerciseVideo(ctx, e.ExerciseID, &dto.SaveExerciseVideoRequest{VideoURL: "https://youtube.test/v"})
	if len(db.videos) != 1 {
		t.Errorf("每个动作只应有一条视频记录，实际 %d", len(db.videos))
	}
	got, _ := svc.GetExerciseVideo(ctx, e.ExerciseID)
	if got.PlaybackURL != "https://youtube.test/v" {
		t.Errorf("无对象键时应使用外部 URL，实际 %s", got.PlaybackURL)
	}
}

func TestMediaService_GetExerciseVideo_DisabledFallsBack(t *testing.T) {
	svc, db := setupTestMediaService(storage.Disabled())
	e := seedExercise(db)
	db.videos[e.ExerciseID] = &model.ExerciseVideo{VideoID: "v-1", ExerciseID: e.ExerciseID, ObjectKey: "exercises/x/a.mp4", VideoURL: "https://fallback.test/a"}

	resp, err := svc.GetExerciseVideo(context.Background(), e.ExerciseID)
	if err != nil {
		t.Fatalf("查询视频失败: %v", err)
	}
	if resp.PlaybackURL != "https://fallback.test/a" {
		t.Errorf("存储未启用时应回退到外部 URL，实际 %s", resp.PlaybackURL)
	}
}

func TestMediaService_AttachLessonVideo_ReplacesPrevious(t *testing.T) {
	store := &fakeStorage{}
	svc, db := setupTestMediaService(store)
	_, _, lessons := seedCourse(db, "Go 入门", 1)
	lessonID := lessons[0].LessonID
	ctx := context.Background()

	if _, err := svc.LessonVideoURL(ctx, lessonID); !apperr.IsNotFound(err) {
		t.Errorf("无视频时应返回 NotFoundError，实际: %v", err)
	}

	first := "lessons/" + lessonID + "/a.mp4"
	resp, err := svc.AttachLessonVideo(ctx, lessonID, &dto.AttachLessonVideoRequest{ObjectKey: first, VideoDuration: intPtr(300)})
	if err != nil {
		t.Fatalf("绑定视频失败: %v", err)
	}
	if !resp.HasVideo || resp.VideoDuration == nil || *resp.VideoDuration != 300 {
		t.Errorf("绑定后应有视频与时长，实际 %+v", resp)
	}

	second := "lessons/" + lessonID + "/b.mp4"
	if _, err := svc.AttachLessonVideo(ctx, lessonID, &dto.AttachLessonVideoRequest{ObjectKey: second}); err != nil {
		t.Fatalf("替换视频失败: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != first {
		t.Errorf("替换后应删除旧对象，实际 %v", store.deleted)
	}

	url, err := svc.LessonVideoURL(ctx, lessonID)
	if err != nil || url.PlaybackURL != "https://cdn.test/"+second {
		t.Errorf("播放地址应指向新对象，实际 %+v err=%v", url, err)
	}

	if _, err := svc.AttachLessonVideo(ctx, lessonID, &dto.AttachLessonVideoRequest{ObjectKey: "lessons/other/c.mp4"}); !apperr.IsValidation(err) {
		t.Errorf("不属于该课时的对象键应校验失败，实际: %v", err)
	}
}

func TestMediaService_LessonVideoURL_Disabled(t *testing.T) {
	svc, db := setupTestMediaService(storage.Disabled())
	_, _, lessons := seedCourse(db, "Go 入门", 2)
	db.lessons[lessons[0].LessonID].VideoObjectKey = "lessons/" + lessons[0].LessonID + "/a.mp4"
	db.lessons[lessons[1].LessonID].VideoURL = "https://video.test/b"

	if _, err := svc.LessonVideoURL(context.Background(), lessons[0].LessonID); !errors.Is(err, storage.ErrStorageDisabled) {
		t.Errorf("存储未启用时应返回 ErrStorageDisabled，实际: %v", err)
	}
	resp, err := svc.LessonVideoURL(context.Background(), lessons[1].LessonID)
	if err != nil || resp.PlaybackURL != "https://video.test/b" {
		t.Errorf("外部视频地址应直接返回，实际 %+v err=%v", resp, err)
	}
}
