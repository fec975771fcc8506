package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	studentModel "baetelanshar_backend/internals/features/admissions/students/model"
)

func CreateStudent(db *gorm.DB, s *studentModel.StudentModel) error {
	return db.Create(s).Error
}

func FindStudentByID(db *gorm.DB, id uuid.UUID) (*studentModel.StudentModel, error) {
	var s studentModel.StudentModel
	if err := db.First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// ListStudents: daftar admin dengan pencarian nama.
func ListStudents(db *gorm.DB, search string, limit, offset int) ([]studentModel.StudentModel, int64, error) {
	query := db.Model(&studentModel.StudentModel{})
	if search != "" {
		query = query.Where("full_name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var students []studentModel.StudentModel
	err := query.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&students).Error
	return students, total, err
}

// FindStudentsByParent: semua santri milik satu wali, untuk dashboard.
func FindStudentsByParent(db *gorm.DB, parentID uuid.UUID) ([]studentModel.StudentModel, error) {
	var students []studentModel.StudentModel
	err := db.Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&students).Error
	return students, err
}
