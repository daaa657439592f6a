package common

import (
	"encoding/json"
	"strings"
)

// Kind 不可信 JSON 值的型別
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value 包裝模型輸出解析後的任意 JSON 值。
// 所有存取方法都是全函數：型別不符時回傳 (零值, false)，絕不 panic。
type Value struct {
	raw interface{}
}

// Object JSON 物件的唯讀視圖
type Object struct {
	fields map[string]interface{}
}

// NewValue 以 encoding/json 解出的原始值建立 Value
func NewValue(raw interface{}) Value {
	return Value{raw: raw}
}

// ParseValue 解析一段文字為 Value，空白或非 JSON 皆回傳錯誤
func ParseValue(text string) (Value, error) {
	var raw interface{}
	if err := ParseJSON(text, &raw); err != nil {
		return Value{}, err
	}
	return Value{raw: raw}, nil
}

// Kind 回傳值的型別
func (v Value) Kind() Kind {
	switch v.raw.(type) {
	case bool:
		return KindBool
	case json.Number, float64:
		return KindNumber
	case string:
		return KindString
	case []interface{}:
		return KindArray
	case map[string]interface{}:
		return KindObject
	default:
		return KindNull
	}
}

// AsObject 取得物件視圖
func (v Value) AsObject() (Object, bool) {
	m, ok := v.raw.(map[string]interface{})
	if !ok {
		return Object{}, false
	}
	return Object{fields: m}, true
}

// AsArray 取得陣列元素
func (v Value) AsArray() ([]Value, bool) {
	arr, ok := v.raw.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]Value, len(arr))
	for i, item := range arr {
		out[i] = Value{raw: item}
	}
	return out, true
}

// AsString 取得字串
func (v Value) AsString() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok
}

// Field 等同 AsObject 後 Get
func (v Value) Field(key string) (Value, bool) {
	obj, ok := v.AsObject()
	if !ok {
		return Value{}, false
	}
	return obj.Get(key)
}

// Strings 回傳陣列中的字串元素；非陣列時回傳空切片（非 nil）。
// 非字串元素會被略過。
func (v Value) Strings() []string {
	out := []string{}
	arr, ok := v.AsArray()
	if !ok {
		return out
	}
	for _, item := range arr {
		if s, ok := item.AsString(); ok {
			out = append(out, s)
		}
	}
	return out
}

// Has 檢查鍵是否存在（值為 null 也算存在）
func (o Object) Has(key string) bool {
	_, ok := o.fields[key]
	return ok
}

// Get 取得欄位值
func (o Object) Get(key string) (Value, bool) {
	raw, ok := o.fields[key]
	if !ok {
		return Value{}, false
	}
	return Value{raw: raw}, true
}

// HasAll 檢查所有鍵是否都存在
func (o Object) HasAll(keys ...string) bool {
	for _, k := range keys {
		if !o.Has(k) {
			return false
		}
	}
	return true
}

// UnwrapCodeFence 去掉模型常見的 ```json ... ``` 包裹
func UnwrapCodeFence(text string) string {
	txt := strings.TrimSpace(text)
	if !strings.HasPrefix(txt, "```") {
		return txt
	}
	txt = strings.TrimPrefix(txt, "```json")
	txt = strings.TrimPrefix(txt, "```JSON")
	txt = strings.TrimPrefix(txt, "```")
	txt = strings.TrimSuffix(txt, "```")
	return strings.TrimSpace(txt)
}
