/*
 * @module service/source/adapter
 * @description 源库适配器：按 Profile 能力表对旧平台数据库执行分页抽取和元数据查询
 * @architecture 数据访问层 - 适配器模式
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 构造时校验能力 -> FetchPage 分页抽取 -> 键值附加行按父ID页对齐抓取
 * @rules 相同 offset 的两次抽取必须返回相同的行；键值行永不跨页
 * @dependencies database/sql, github.com/go-sql-driver/mysql, github.com/lib/pq, github.com/spf13/cast
 * @refs service/importengine, service/normalizer
 */

package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"

	"migration-service/service/utils"
)

// ConnectionConfig 源库连接配置
type ConnectionConfig struct {
	Profile  string `json:"profile"`
	Driver   string `json:"driver,omitempty"` // 为空时使用 Profile 默认驱动
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	Prefix   string `json:"prefix,omitempty"` // 为空时使用 Profile 默认前缀
	DSN      string `json:"dsn,omitempty"`    // 直接给出 DSN 时优先使用（测试场景）
}

// Adapter 源库适配器
type Adapter struct {
	db        *sql.DB
	def       *ProfileDefinition
	prefix    string
	converter *utils.DataConverter
}

// NewAdapter 按连接配置创建源库适配器
func NewAdapter(cfg ConnectionConfig) (*Adapter, error) {
	def, err := GetProfileDefinition(cfg.Profile)
	if err != nil {
		return nil, err
	}

	driver := cfg.Driver
	if driver == "" {
		driver = def.Driver
	}

	dsn := cfg.DSN
	if dsn == "" {
		dsn, err = buildDSN(driver, cfg)
		if err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(5 * time.Minute)

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = def.DefaultPrefix
	}

	return &Adapter{
		db:        db,
		def:       def,
		prefix:    prefix,
		converter: utils.NewDataConverter(),
	}, nil
}

// NewAdapterWithDB 用已有连接创建适配器（测试场景）
func NewAdapterWithDB(db *sql.DB, def *ProfileDefinition, prefix string) *Adapter {
	return &Adapter{
		db:        db,
		def:       def,
		prefix:    prefix,
		converter: utils.NewDataConverter(),
	}
}

// buildDSN 按驱动构建连接串
func buildDSN(driver string, cfg ConnectionConfig) (string, error) {
	switch driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName), nil
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName), nil
	default:
		return "", fmt.Errorf("不支持的源库驱动: %s", driver)
	}
}

// Close 关闭源库连接
func (a *Adapter) Close() error {
	return a.db.Close()
}

// Profile 返回适配器绑定的 Profile 名称
func (a *Adapter) Profile() string {
	return a.def.Name
}

// Definition 返回适配器绑定的能力表
func (a *Adapter) Definition() *ProfileDefinition {
	return a.def
}

// FetchPage 抽取指定实体类型从 offset 开始的一页原始行
// 主行后紧跟其键值附加行（若能力表定义了 Attributes），保证一个逻辑实体不被页边界切开
func (a *Adapter) FetchPage(ctx context.Context, entityType string, offset int64, pageSize int) ([]map[string]interface{}, error) {
	query, exists := a.def.Entities[entityType]
	if !exists || query == nil {
		return nil, fmt.Errorf("%w: profile=%s entity=%s", ErrCapabilityMissing, a.def.Name, entityType)
	}

	baseSQL := a.expandPrefix(query.SQL) + fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, offset)
	baseRows, err := a.queryRows(ctx, baseSQL)
	if err != nil {
		return nil, err
	}
	if query.Attributes == nil || len(baseRows) == 0 {
		return baseRows, nil
	}

	// 收集本页父ID，按页对齐抓取键值附加行
	ids := make([]interface{}, 0, len(baseRows))
	for _, row := range baseRows {
		ids = append(ids, row[query.IDField])
	}
	attrRows, err := a.fetchAttributeRows(ctx, query, ids)
	if err != nil {
		return nil, err
	}

	// 按父ID聚簇合并：主行后紧跟其键值行
	byParent := make(map[string][]map[string]interface{}, len(baseRows))
	for _, attr := range attrRows {
		key := cast.ToString(attr[query.IDField])
		byParent[key] = append(byParent[key], attr)
	}

	merged := make([]map[string]interface{}, 0, len(baseRows)+len(attrRows))
	for _, row := range baseRows {
		merged = append(merged, row)
		merged = append(merged, byParent[cast.ToString(row[query.IDField])]...)
	}
	return merged, nil
}

// fetchAttributeRows 抓取一组父ID的键值附加行
// 结果行形如 {IDField: 父ID, "_metaKey": 键, "_metaValue": 值}
func (a *Adapter) fetchAttributeRows(ctx context.Context, query *EntityQuery, ids []interface{}) ([]map[string]interface{}, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	attrSQL := strings.ReplaceAll(a.expandPrefix(query.Attributes.SQL), "{ids}", placeholders)

	rows, err := a.db.QueryContext(ctx, attrSQL, ids...)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	var result []map[string]interface{}
	for rows.Next() {
		var parentID, key, value interface{}
		if err := rows.Scan(&parentID, &key, &value); err != nil {
			return nil, classifyError(err)
		}
		result = append(result, map[string]interface{}{
			query.IDField: a.converter.ToCanonicalValue(parentID),
			"_metaKey":    a.converter.ToString(a.converter.ToCanonicalValue(key)),
			"_metaValue":  a.converter.ToCanonicalValue(value),
		})
	}
	return result, rows.Err()
}

// EstimateCount 估算实体类型的总行数，仅用于进度展示，失败时返回 -1
func (a *Adapter) EstimateCount(ctx context.Context, entityType string) (int64, error) {
	query, exists := a.def.Entities[entityType]
	if !exists || query == nil {
		return -1, fmt.Errorf("%w: profile=%s entity=%s", ErrCapabilityMissing, a.def.Name, entityType)
	}

	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM (%s) AS cnt", a.expandPrefix(query.SQL))
	var count int64
	if err := a.db.QueryRowContext(ctx, countSQL).Scan(&count); err != nil {
		return -1, classifyError(err)
	}
	return count, nil
}

// ListMetadata 执行元数据查询，返回 sourceKey -> displayName
func (a *Adapter) ListMetadata(ctx context.Context, group string) (map[string]string, error) {
	query, exists := a.def.Metadata[group]
	if !exists || query == nil {
		return nil, fmt.Errorf("%w: profile=%s metadata=%s", ErrCapabilityMissing, a.def.Name, group)
	}

	rows, err := a.db.QueryContext(ctx, a.expandPrefix(query.SQL))
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var key, name interface{}
		if err := rows.Scan(&key, &name); err != nil {
			return nil, classifyError(err)
		}
		result[a.converter.ToString(a.converter.ToCanonicalValue(key))] =
			a.converter.ToString(a.converter.ToCanonicalValue(name))
	}
	return result, rows.Err()
}

// Ping 测试源库连通性
func (a *Adapter) Ping(ctx context.Context) error {
	if err := a.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	return nil
}

// queryRows 执行查询并把结果集转为规范值的 map 行
func (a *Adapter) queryRows(ctx context.Context, sqlText string) ([]map[string]interface{}, error) {
	rows, err := a.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, classifyError(err)
	}

	var result []map[string]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, classifyError(err)
		}

		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			row[col] = a.converter.ToCanonicalValue(values[i])
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// expandPrefix 替换 SQL 中的表前缀占位符
func (a *Adapter) expandPrefix(sqlText string) string {
	return strings.ReplaceAll(sqlText, "{prefix}", a.prefix)
}
