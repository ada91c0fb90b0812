package domain

const (
	attendanceTotalClasses = 100
	attendanceTarget       = 75
)

// AttendanceSummary describes where a student stands against the attendance requirement.
type AttendanceSummary struct {
	Percentage       float64 `json:"attendance_percentage"`
	IsEligible       bool    `json:"is_eligible"`
	TotalClasses     int     `json:"total_classes"`
	AttendedClasses  int     `json:"attended_classes"`
	MissedClasses    int     `json:"missed_classes"`
	ClassesRemaining int     `json:"classes_remaining"`
	CanMiss          int     `json:"can_miss"`
	ClassesNeeded    int     `json:"classes_needed"`
	TargetPercentage int     `json:"target_percentage"`
}

// Attendance computes the attendance summary for a profile. A nil profile
// yields the default figures shown to accounts without academic records.
func Attendance(profile *StudentProfile) AttendanceSummary {
	s := AttendanceSummary{
		TotalClasses:     attendanceTotalClasses,
		TargetPercentage: attendanceTarget,
	}

	if profile == nil {
		s.Percentage = 85.0
		s.AttendedClasses = 85
		s.MissedClasses = 15
		s.ClassesRemaining = 15
		s.CanMiss = 10
	} else {
		s.Percentage = profile.AttendancePercentage
		s.AttendedClasses = int(s.Percentage / 100 * attendanceTotalClasses)
		s.MissedClasses = attendanceTotalClasses - s.AttendedClasses
		s.ClassesRemaining = attendanceTotalClasses - s.AttendedClasses
		maxMissable := attendanceTotalClasses * (100 - attendanceTarget) / 100
		s.CanMiss = max(0, maxMissable-s.MissedClasses)
	}

	s.IsEligible = s.Percentage >= attendanceTarget
	if s.Percentage < attendanceTarget {
		s.ClassesNeeded = max(0, attendanceTotalClasses*attendanceTarget/100-s.AttendedClasses)
	}
	return s
}
