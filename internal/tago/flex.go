package tago

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexString decodes a JSON string or number into its text form.
// Timestamps like depPlandTime arrive either way.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(data)
	return nil
}

func (f FlexString) String() string {
	return strings.TrimSpace(string(f))
}

// FlexInt decodes a JSON number or numeric string. Anything else is 0.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var text FlexString
	if err := text.UnmarshalJSON(data); err != nil {
		*f = 0
		return nil
	}

	s := text.String()
	if n, err := strconv.Atoi(s); err == nil {
		*f = FlexInt(n)
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		*f = FlexInt(int(v))
		return nil
	}
	*f = 0
	return nil
}
