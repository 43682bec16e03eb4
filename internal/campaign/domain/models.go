package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Campaign struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id"`
	Title           string       `gorm:"not null" json:"title"`
	Description     string       `gorm:"not null" json:"description"`
	FullDescription string       `gorm:"column:full_description" json:"fullDescription"`
	Category        string       `gorm:"not null" json:"category"`
	GoalAmount      float64      `gorm:"not null" json:"goalAmount"`
	RaisedAmount    float64      `gorm:"not null;default:0" json:"raisedAmount"`
	DonorCount      int64        `gorm:"not null;default:0" json:"donorCount"`
	DaysLeft        int          `gorm:"not null" json:"daysLeft"`
	ImageURL        string       `gorm:"column:image_url" json:"imageUrl"`
	Featured        bool         `gorm:"not null;default:false" json:"featured"`
	CreatedAt       time.Time    `gorm:"not null" json:"createdAt"`
	UpdatedAt       time.Time    `gorm:"not null" json:"updatedAt"`
}

func (Campaign) TableName() string { return "campaigns" }
