/*
 * @module service/source/errors
 * @description 源库错误分类，区分模式不匹配（选错 Profile）与一般连接错误
 * @architecture 数据访问层 - 错误分类
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 驱动错误 -> 分类 -> 哨兵错误包装
 * @rules 模式不匹配必须可与连接错误区分，调用方据此展示不同的提示
 * @dependencies github.com/go-sql-driver/mysql, github.com/lib/pq
 * @refs service/importengine
 */

package source

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

var (
	// ErrSchemaMismatch 平台特定的表或列不存在，通常是 Profile 选择错误
	ErrSchemaMismatch = errors.New("源库模式不匹配")
	// ErrConnectivity 无法连接源库
	ErrConnectivity = errors.New("源库连接失败")
	// ErrCapabilityMissing 当前 Profile 未定义请求的查询能力
	ErrCapabilityMissing = errors.New("Profile 未定义该查询能力")
)

// MySQL 模式错误码
const (
	mysqlErrNoSuchTable  = 1146
	mysqlErrBadFieldName = 1054
	mysqlErrNoSuchDB     = 1049
)

// classifyError 将驱动错误归类为哨兵错误
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlErrNoSuchTable, mysqlErrBadFieldName, mysqlErrNoSuchDB:
			return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
		}
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "42P01", "42703", "3D000": // undefined_table, undefined_column, invalid_catalog_name
			return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
		}
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	// sqlite（测试环境）只能按消息判断
	msg := err.Error()
	if strings.Contains(msg, "no such table") || strings.Contains(msg, "no such column") {
		return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}

	return fmt.Errorf("%w: %v", ErrConnectivity, err)
}
