package contract

import (
	"regexp"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var integerText = regexp.MustCompile(`^-?[0-9]+$`)

// payload gives typed, strict access to an action's JSON parameters.
type payload struct {
	jsoniter.Any
}

func parsePayload(raw []byte) (payload, bool) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	v := jsoniter.Get(raw)
	if v.LastError() != nil || v.ValueType() != jsoniter.ObjectValue {
		return payload{}, false
	}
	return payload{v}, true
}

func (p payload) has(key string) bool {
	return p.Get(key).ValueType() != jsoniter.InvalidValue
}

func (p payload) objectField(key string) (payload, bool) {
	v := p.Get(key)
	if v.ValueType() != jsoniter.ObjectValue {
		return payload{}, false
	}
	return payload{v}, true
}

func (p payload) stringField(key string) (string, bool) {
	return asString(p.Get(key))
}

func (p payload) intField(key string) (int64, bool) {
	return asInt(p.Get(key))
}

func (p payload) boolField(key string) (bool, bool) {
	v := p.Get(key)
	if v.ValueType() != jsoniter.BoolValue {
		return false, false
	}
	return v.ToBool(), true
}

func (p payload) arrayField(key string) ([]jsoniter.Any, bool) {
	return asArray(p.Get(key))
}

func asString(v jsoniter.Any) (string, bool) {
	if v.ValueType() != jsoniter.StringValue {
		return "", false
	}
	return v.ToString(), true
}

// asInt accepts JSON numbers written without fraction or exponent.
func asInt(v jsoniter.Any) (int64, bool) {
	if v.ValueType() != jsoniter.NumberValue {
		return 0, false
	}
	text := v.ToString()
	if !integerText.MatchString(text) {
		return 0, false
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func asArray(v jsoniter.Any) ([]jsoniter.Any, bool) {
	if v.ValueType() != jsoniter.ArrayValue {
		return nil, false
	}
	items := make([]jsoniter.Any, v.Size())
	for i := range items {
		items[i] = v.Get(i)
	}
	return items, true
}
