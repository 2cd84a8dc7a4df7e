package subtext

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"napi/internal/services"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Normalize returns subtitle text as UTF-8. Payloads that already decode as
// UTF-8 (with or without a BOM) pass through unchanged; anything else is
// treated as windows-1250, the legacy encoding both Polish services serve.
func Normalize(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}
	if bytes.HasPrefix(data, utf8BOM) || utf8.Valid(data) {
		return data, nil
	}
	decoded, err := charmap.Windows1250.NewDecoder().Bytes(data)
	if err != nil {
		return nil, services.Wrap(services.ErrProtocol, "subtext", "decode windows-1250", "", err)
	}
	return decoded, nil
}
