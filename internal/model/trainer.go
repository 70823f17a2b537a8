package model

// Trainer 教练表，对应 trainers
type Trainer struct {
	TrainerID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"trainer_id"`
	Name           string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email          string `gorm:"type:varchar(120);not null;uniqueIndex"         json:"email"`
	Specialization string `gorm:"type:varchar(100)"                              json:"specialization,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Trainer) TableName() string { return "trainers" }
