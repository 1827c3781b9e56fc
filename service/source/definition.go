/*
 * @module service/source/definition
 * @description Profile 能力表定义：每个源平台声明一组查询描述符，缺失的能力为 nil
 * @architecture 策略映射 - 以数据表代替深继承
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 启动时注册 -> 适配器构造时选择 -> 运行期只读
 * @rules 查询必须带确定性 ORDER BY；{prefix} 占位符在执行前替换为配置的表前缀
 * @dependencies 无
 * @refs registry.go, adapter.go
 */

package source

// EntityQuery 单实体类型的分页查询描述符
type EntityQuery struct {
	// SQL 基础查询，必须以自然主键确定性排序；{prefix} 替换为表前缀
	SQL string
	// IDField 结果集中自然主键的列名
	IDField string
	// Attributes 可选的键值附加行查询：一个逻辑实体分散在 N 条物理行时使用
	Attributes *AttributeQuery
	// Renames 旧字段名到规范字段名的静态改名表
	Renames map[string]string
}

// AttributeQuery 键值附加行查询描述符
// 按父实体ID页对齐抓取，保证一个逻辑实体不会被页边界切开
type AttributeQuery struct {
	// SQL 查询模板，必须包含 {ids} 占位符并按父ID排序，
	// 结果集固定三列：父ID、键、值
	SQL string
}

// MetadataQuery 元数据查询：返回 sourceKey -> displayName 两列
type MetadataQuery struct {
	SQL string
}

// ProfileDefinition 源平台能力表
// 未定义的实体查询或元数据查询为 nil/缺失，构造适配器时检查一次
type ProfileDefinition struct {
	Name          string
	Driver        string // 默认数据库驱动：mysql / postgres
	DefaultPrefix string
	Entities      map[string]*EntityQuery
	Metadata      map[string]*MetadataQuery // 以值映射分组名为键
}

// HasEntity 判断 Profile 是否支持指定实体类型
func (d *ProfileDefinition) HasEntity(entityType string) bool {
	q, exists := d.Entities[entityType]
	return exists && q != nil
}
