package models

// Course is immutable reference data created by an administrator.
type Course struct {
	ID       string `db:"id" json:"id"`
	Code     string `db:"code" json:"code"`
	Name     string `db:"name" json:"name"`
	Branch   string `db:"branch" json:"branch"`
	Semester int    `db:"semester" json:"semester"`
}

// LectureHall is a bookable room.
type LectureHall struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
