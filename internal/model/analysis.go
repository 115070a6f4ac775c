package model

import "time"

// AnalysisSnippet 分析文案池（建库时按静态表灌入，组稿器按项目随机取一条）
type AnalysisSnippet struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Sport     Sport     `gorm:"column:sport;type:varchar(16);index;not null;comment:体育项目"`
	Content   string    `gorm:"column:content;type:text;not null;comment:分析文案"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
}

func (AnalysisSnippet) TableName() string { return "analysis_snippets" }
