package models

import "time"

// AttendanceSession is one taught period of an offering on a given date.
type AttendanceSession struct {
	ID         int64     `json:"id" db:"id"`
	OfferingID int64     `json:"offeringId" db:"offering_id"`
	TeacherID  *int64    `json:"teacherId,omitempty" db:"teacher_id"`
	HeldOn     time.Time `json:"heldOn" db:"held_on"`
}

// AttendanceRecord is one student's state in one session.
type AttendanceRecord struct {
	ID        int64            `json:"id" db:"id"`
	SessionID int64            `json:"sessionId" db:"session_id"`
	StudentID int64            `json:"studentId" db:"student_id"`
	Status    AttendanceStatus `json:"status" db:"status"`
}
