package logger

import (
	"context"
	"sort"
)

// Fields 需要随上下文传递的日志字段
type Fields map[string]interface{}

type fieldsKey struct{}

// InjectFields 将字段合并进上下文，后续 *Context 日志方法会自动携带。
// 同名字段以后注入的为准，原上下文中的字段不会被修改。
func InjectFields(ctx context.Context, fields Fields) context.Context {
	if len(fields) == 0 {
		return ctx
	}

	merged := make(Fields, len(fields))
	for k, v := range FieldsFrom(ctx) {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return context.WithValue(ctx, fieldsKey{}, merged)
}

// FieldsFrom 读取上下文中已注入的字段
func FieldsFrom(ctx context.Context) Fields {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(fieldsKey{}).(Fields)
	return fields
}

// withContextFields 把上下文字段追加到调用方参数之后，按键名排序保证输出稳定
func withContextFields(ctx context.Context, args []interface{}) []interface{} {
	fields := FieldsFrom(ctx)
	if len(fields) == 0 {
		return args
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]interface{}, 0, len(args)+2*len(keys))
	out = append(out, args...)
	for _, k := range keys {
		out = append(out, k, fields[k])
	}
	return out
}
