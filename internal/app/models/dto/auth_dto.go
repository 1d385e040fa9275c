package dto

// LoginRequest carries username/password credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the issued token pair.
type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
	RoleType     string `json:"roleType"`
}

// CreateUserRequest creates a user together with its role profile.
type CreateUserRequest struct {
	CollegeID    int64  `json:"collegeId" binding:"required"`
	Username     string `json:"username" binding:"required"`
	Password     string `json:"password" binding:"required"`
	Name         string `json:"name" binding:"required"`
	RoleType     string `json:"roleType" binding:"required"`
	DepartmentID *int64 `json:"departmentId,omitempty"`
	SectionID    *int64 `json:"sectionId,omitempty"`
	// USN identifies a student profile; Code identifies a teacher profile.
	USN             string `json:"usn,omitempty"`
	Code            string `json:"code,omitempty"`
	CurrentSemester int    `json:"currentSemester,omitempty"`
}
