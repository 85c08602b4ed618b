package models

import (
	"github.com/fixora-app/fixora/internal/shared/constants"
)

// UserModel is the persistence shape of a user account
type UserModel struct {
	ID           uint   `gorm:"primarykey"`
	SID          string `gorm:"column:sid;not null;size:32;uniqueIndex:idx_user_sid"`
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	Name         string `gorm:"not null;size:100"`
	PasswordHash string `gorm:"not null;size:255"`
	Role         string `gorm:"not null;size:20;index:idx_user_role"`
	Hostel       string `gorm:"size:50"`
	Room         string `gorm:"size:20"`
	HostelGender string `gorm:"not null;size:16;default:undefined"`
	Department   string `gorm:"size:50"`
	Version      int    `gorm:"not null;default:1"`
	CreatedAt    int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt    int64  `gorm:"autoUpdateTime:milli;not null"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}
