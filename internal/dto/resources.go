package dto

import "github.com/noah-isme/tutoring-admin-api/internal/models"

// StudentRequest is the writable field set of a student.
type StudentRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Level string `json:"level"`
}

// StudentUpdated echoes an update, keyed by the path identifier.
type StudentUpdated struct {
	ID string `json:"id"`
	StudentRequest
}

// ClassSlotRequest is the writable field set of a class slot.
type ClassSlotRequest struct {
	Day   string `json:"day"`
	Time  string `json:"time"`
	Level string `json:"level"`
}

// ClassSlotUpdated echoes an update, keyed by the path identifier.
type ClassSlotUpdated struct {
	ID string `json:"id"`
	ClassSlotRequest
}

// PaymentRequest is the writable field set of a payment. A missing, null or
// zero num_classes falls back to models.DefaultNumClasses.
type PaymentRequest struct {
	StudentID   int64   `json:"student_id"`
	Amount      float64 `json:"amount"`
	NumClasses  *int    `json:"num_classes"`
	PaymentDate string  `json:"payment_date"`
}

// EffectiveNumClasses applies the default for absent values.
func (r PaymentRequest) EffectiveNumClasses() int {
	if r.NumClasses == nil || *r.NumClasses == 0 {
		return models.DefaultNumClasses
	}
	return *r.NumClasses
}

// PaymentUpdated echoes an update, keyed by the path identifier.
type PaymentUpdated struct {
	ID          string  `json:"id"`
	StudentID   int64   `json:"student_id"`
	Amount      float64 `json:"amount"`
	NumClasses  int     `json:"num_classes"`
	PaymentDate string  `json:"payment_date"`
}

// ConsumedClassRequest is the writable field set of a consumed class.
type ConsumedClassRequest struct {
	StudentID int64  `json:"student_id"`
	ClassID   int64  `json:"class_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}
