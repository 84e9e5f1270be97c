// internal/websocket/utils.go
package websocket

import "encoding/json"

// mapToStruct converts a decoded JSON value into target
func mapToStruct(data any, target any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonData, target)
}
