/*
 * @module service/normalizer/transform_script
 * @description 用户自定义行转换脚本：以 yaegi 解释执行 Go 片段，对规范行做最后加工
 * @architecture 数据处理层 - 脚本钩子
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 脚本编译一次 -> 逐行调用 Run -> 返回改写后的行
 * @rules 脚本必须定义 Transform(row map[string]interface{}) (map[string]interface{}, error)
 * @dependencies github.com/traefik/yaegi
 * @refs normalizer.go
 */

package normalizer

import (
	"fmt"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// TransformScript 编译后的行转换脚本
type TransformScript struct {
	fn func(map[string]interface{}) (map[string]interface{}, error)
}

// CompileTransformScript 编译用户脚本
// 脚本体是一个 Go 源码片段，必须提供 Transform 入口函数
func CompileTransformScript(script string) (*TransformScript, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("加载标准库符号失败: %w", err)
	}

	if _, err := i.Eval(script); err != nil {
		return nil, fmt.Errorf("脚本编译失败: %w", err)
	}

	v, err := i.Eval("Transform")
	if err != nil {
		return nil, fmt.Errorf("脚本缺少 Transform 入口函数: %w", err)
	}

	fn, ok := v.Interface().(func(map[string]interface{}) (map[string]interface{}, error))
	if !ok {
		return nil, fmt.Errorf("Transform 函数签名不符: 期望 func(map[string]interface{}) (map[string]interface{}, error)")
	}

	return &TransformScript{fn: fn}, nil
}

// Run 对单行执行转换
func (s *TransformScript) Run(row map[string]interface{}) (map[string]interface{}, error) {
	out, err := s.fn(row)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return row, nil
	}
	return out, nil
}
