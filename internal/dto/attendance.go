package dto

// AttendanceRequest registers one class occurrence for several students.
type AttendanceRequest struct {
	ClassID    int64   `json:"class_id" validate:"required"`
	ClassDate  string  `json:"class_date" validate:"required"`
	ClassTime  string  `json:"class_time"`
	StudentIDs []int64 `json:"student_ids" validate:"required,min=1"`
}

// AttendanceFailure describes one student whose record was rejected.
type AttendanceFailure struct {
	StudentID int64  `json:"student_id"`
	Error     string `json:"error"`
}

// AttendanceResult summarises a batch; Errors keeps input order.
type AttendanceResult struct {
	Inserted int                 `json:"inserted"`
	Failed   int                 `json:"failed"`
	Errors   []AttendanceFailure `json:"errors,omitempty"`
}

// Partial reports whether at least one student failed.
func (r AttendanceResult) Partial() bool {
	return r.Failed > 0
}
