package repository

import (
	"context"

	"farewatch-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormGroupRepository implements the GroupRepository interface
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGormGroupRepository creates a new GORM group repository
func NewGormGroupRepository(db *gorm.DB) repository.GroupRepository {
	return &GormGroupRepository{
		db: db,
	}
}

// GroupMembers GORM model for database mapping
type GroupMembers struct {
	gorm.Model
	GroupID string `gorm:"column:group_id"`
	ChatID  string `gorm:"column:chat_id"`
	Name    string `gorm:"column:name"`
}

// TableName overrides the default table name
func (GroupMembers) TableName() string {
	return "group_members"
}

// GetMembers returns the chat ids of all members of a group
func (r *GormGroupRepository) GetMembers(ctx context.Context, groupID string) ([]string, error) {
	var members []GroupMembers
	result := r.db.WithContext(ctx).Where("group_id = ?", groupID).Find(&members)
	if result.Error != nil {
		return nil, result.Error
	}

	var chatIDs []string
	for _, member := range members {
		chatIDs = append(chatIDs, member.ChatID)
	}
	return chatIDs, nil
}
