package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/pskth/attendance-management-system/internal/app/models"
	"github.com/pskth/attendance-management-system/internal/app/models/dto"
	"github.com/pskth/attendance-management-system/internal/app/repositories"
	"github.com/pskth/attendance-management-system/internal/pkg/apperrors"
	"github.com/pskth/attendance-management-system/internal/pkg/dberrors"
	"github.com/pskth/attendance-management-system/internal/pkg/logger"
)

// UserService creates users together with their role profiles.
type UserService struct {
	store *repositories.Store
}

// NewUserService creates a new user service.
func NewUserService(store *repositories.Store) *UserService {
	return &UserService{store: store}
}

// Create inserts a user and its role profile. Students require a USN and a
// department; teachers require a code and a department.
func (s *UserService) Create(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	role := models.RoleType(req.RoleType)
	switch role {
	case models.RoleAdmin, models.RoleReportViewer:
	case models.RoleStudent:
		if req.USN == "" || req.DepartmentID == nil {
			return nil, apperrors.NewValidationError("student users require usn and departmentId")
		}
	case models.RoleTeacher:
		if req.Code == "" || req.DepartmentID == nil {
			return nil, apperrors.NewValidationError("teacher users require code and departmentId")
		}
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid role type %q", req.RoleType))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		CollegeID: req.CollegeID,
		Username:  req.Username,
		Password:  string(hashed),
		Name:      req.Name,
		RoleType:  role,
	}
	if err := s.store.InsertUser(ctx, user); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.NewCustomError(apperrors.ErrUsernameExists,
				fmt.Sprintf("Username %s already exists", req.Username))
		}
		return nil, err
	}

	switch role {
	case models.RoleAdmin:
		err = s.store.InsertAdminProfile(ctx, &models.Admin{UserID: user.ID, CollegeID: req.CollegeID})
	case models.RoleReportViewer:
		err = s.store.InsertReportViewerProfile(ctx, &models.ReportViewer{UserID: user.ID, CollegeID: req.CollegeID})
	case models.RoleTeacher:
		err = s.store.InsertTeacherProfile(ctx, &models.Teacher{
			UserID:       user.ID,
			CollegeID:    req.CollegeID,
			DepartmentID: *req.DepartmentID,
			Code:         req.Code,
		})
	case models.RoleStudent:
		semester := req.CurrentSemester
		if semester == 0 {
			semester = 1
		}
		err = s.store.InsertStudentProfile(ctx, &models.Student{
			UserID:          user.ID,
			CollegeID:       req.CollegeID,
			DepartmentID:    *req.DepartmentID,
			SectionID:       req.SectionID,
			USN:             req.USN,
			CurrentSemester: semester,
		})
	}
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists,
				"A profile with this identifier already exists")
		}
		return nil, err
	}

	logger.Info().Int64("userId", user.ID).Str("role", string(role)).Msg("User created")
	return user, nil
}

// GetByID fetches one user.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewResourceNotFoundError("User not found")
	}
	return user, nil
}
