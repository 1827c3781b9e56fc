package models

// 变体选项的价格/重量增量模式
const (
	VariantModeAdd      = "+"
	VariantModeSubtract = "-"
)

// VariantOption 变体选项：属性组内的单个取值及其增量
type VariantOption struct {
	Name        string  `json:"name"`
	PriceDelta  float64 `json:"price_delta"`
	WeightDelta float64 `json:"weight_delta"`
	Mode        string  `json:"mode"` // "+" 或 "-"
}

// VariantGroup 变体属性组：组名映射到有序的选项集合
type VariantGroup struct {
	Name    string          `json:"name"`
	Options []VariantOption `json:"options"`
}

// VariantTask 变体生成子协议任务：指示调用方对单个商品驱动独立的组合子循环
type VariantTask struct {
	ArticleID string         `json:"article_id"` // 源侧商品ID
	Groups    []VariantGroup `json:"groups"`
	Offset    int            `json:"offset"`
	Count     int            `json:"count"` // 组合总数
}
