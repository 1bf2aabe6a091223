package models

// StudentStatistics aggregates payments and consumption for one student.
type StudentStatistics struct {
	StudentID            int64   `db:"student_id" json:"student_id"`
	StudentName          string  `db:"student_name" json:"student_name"`
	TotalPaidAmount      float64 `db:"total_paid_amount" json:"total_paid_amount"`
	TotalPaidClasses     int64   `db:"total_paid_classes" json:"total_paid_classes"`
	TotalPayments        int64   `db:"total_payments" json:"total_payments"`
	TotalConsumedClasses int64   `db:"total_consumed_classes" json:"total_consumed_classes"`
	BalanceClasses       int64   `db:"balance_classes" json:"balance_classes"`
}

// ConsumedHistoryEntry is a consumed class joined with its slot details.
type ConsumedHistoryEntry struct {
	ID         int64  `db:"id" json:"id"`
	ClassID    int64  `db:"class_id" json:"class_id"`
	Date       string `db:"date" json:"date"`
	Time       string `db:"time" json:"time"`
	Day        string `db:"day" json:"day"`
	ClassTime  string `db:"class_time" json:"class_time"`
	ClassLevel string `db:"class_level" json:"class_level"`
}
