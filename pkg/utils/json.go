package utils

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJson serializa um valor com indentação para logs de depuração
func PrettyJson(in any) string {
	if raw, ok := in.([]byte); ok {
		var obj interface{}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return string(raw)
		}
		in = obj
	}

	buf, err := json.MarshalIndent(in, "", "\t")
	if err != nil {
		return ""
	}

	return string(buf)
}
