/*
 * @module service/models/cursor
 * @description 导入游标模型：每实体类型的断点续传状态，随请求往返于调用方
 * @architecture 数据模型层 - 临时值对象
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 调用方回传上次游标 -> 服务端校验 -> 引擎推进 -> 返回更新后的游标
 * @rules 游标不在服务端持久化，每次请求必须重新校验 offset 与实体类型
 * @dependencies 无
 * @refs service/progress, service/importengine
 */

package models

// SourceIDField 规范化行中源侧自然主键的固定字段名
const SourceIDField = "_sourceId"

// ImportCursor 导入游标：单个实体类型的可恢复进度状态
// 通过调用方原样往返，服务端不保存
type ImportCursor struct {
	EntityType                string                 `json:"entity_type"`
	Offset                    int64                  `json:"offset"`
	TotalEstimate             int64                  `json:"total_estimate"` // -1 表示未知
	Done                      bool                   `json:"done"`
	Error                     bool                   `json:"error"`
	Message                   string                 `json:"message,omitempty"`
	EstimatedSecondsRemaining int64                  `json:"estimated_seconds_remaining,omitempty"`
	ExtraParams               map[string]interface{} `json:"extra_params,omitempty"`
}

// NewImportCursor 创建指定实体类型的初始游标
func NewImportCursor(entityType string) ImportCursor {
	return ImportCursor{
		EntityType:    entityType,
		Offset:        0,
		TotalEstimate: -1,
	}
}

// StepError 步骤级结构化错误，返回给调用方用于诊断配置问题
type StepError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
	Trace   string `json:"trace,omitempty"`
}
