package feedback

// Type is the category a user filed feedback under.
type Type int

const (
	TypeFeatureSuggestion Type = 1
	TypeExperienceIssue   Type = 2
	TypeProductRelated    Type = 3
	TypeLogisticsRelated  Type = 4
	TypeOther             Type = 5
)

// Desc returns the label the console shows for t.
func (t Type) Desc() string {
	switch t {
	case TypeFeatureSuggestion:
		return "功能建议"
	case TypeExperienceIssue:
		return "体验问题"
	case TypeProductRelated:
		return "商品相关"
	case TypeLogisticsRelated:
		return "物流相关"
	case TypeOther:
		return "其他"
	default:
		return "未知"
	}
}

// Status is the handling state of a feedback item.
type Status int

const (
	StatusUnprocessed Status = 0
	StatusProcessing  Status = 1
	StatusProcessed   Status = 2
)

// Desc returns the label the console shows for s.
func (s Status) Desc() string {
	switch s {
	case StatusUnprocessed:
		return "未处理"
	case StatusProcessing:
		return "处理中"
	case StatusProcessed:
		return "已处理"
	default:
		return "未知"
	}
}

// Tone returns the display tone for s.
func (s Status) Tone() string {
	switch s {
	case StatusUnprocessed:
		return "warning"
	case StatusProcessing:
		return "primary"
	case StatusProcessed:
		return "success"
	default:
		return "info"
	}
}

// Priority is the urgency an administrator assigned.
type Priority int

const (
	PriorityNormal    Priority = 0
	PriorityImportant Priority = 1
	PriorityUrgent    Priority = 2
)

// Desc returns the label the console shows for p.
func (p Priority) Desc() string {
	switch p {
	case PriorityNormal:
		return "普通"
	case PriorityImportant:
		return "重要"
	case PriorityUrgent:
		return "紧急"
	default:
		return "未知"
	}
}

// Tone returns the display tone for p.
func (p Priority) Tone() string {
	switch p {
	case PriorityImportant:
		return "warning"
	case PriorityUrgent:
		return "danger"
	default:
		return "info"
	}
}
