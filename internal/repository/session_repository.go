package repository

import (
	"golf_practice_backend/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) ListByUser(userID uint) ([]model.PracticeSession, error) {
	var sessions []model.PracticeSession
	err := r.DB.Preload("Drills").
		Where("user_id = ?", userID).
		Order("date desc").
		Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) ListPage(userID uint, page, limit int) ([]model.PracticeSession, int64, error) {
	var sessions []model.PracticeSession
	var total int64

	q := r.DB.Model(&model.PracticeSession{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.Preload("Drills").
		Where("user_id = ?", userID).
		Order("date desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&sessions).Error
	return sessions, total, err
}

func (r *SessionRepository) FindByID(userID uint, id string) (*model.PracticeSession, error) {
	var session model.PracticeSession
	err := r.DB.Preload("Drills").
		Where("user_id = ? AND id = ?", userID, id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Create(session *model.PracticeSession) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepository) Delete(userID uint, id string) error {
	res := r.DB.Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.PracticeSession{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SessionRepository) CountDrills(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Drill{}).
		Joins("JOIN practice_sessions ON practice_sessions.id = drills.session_id").
		Where("practice_sessions.user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// ForUser 返回绑定到单个用户的会话存取器，供导入流水线注入
func (r *SessionRepository) ForUser(userID uint) *UserSessionStore {
	return &UserSessionStore{repo: r, userID: userID}
}

// UserSessionStore 实现 service.SessionStore
type UserSessionStore struct {
	repo   *SessionRepository
	userID uint
}

func (s *UserSessionStore) ListAll() ([]model.PracticeSession, error) {
	return s.repo.ListByUser(s.userID)
}

func (s *UserSessionStore) Add(session *model.PracticeSession) error {
	session.UserID = s.userID
	return s.repo.Create(session)
}
