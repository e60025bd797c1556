package service

import "encoding/json"

func decodeJSON(data []byte, dest interface{}) error {
	return json.Unmarshal(data, dest)
}
