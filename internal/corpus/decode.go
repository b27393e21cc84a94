package corpus

import (
	"fmt"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"textpurge/internal/config"
)

type decodeFunc func([]byte) string

func decoderFor(mode string) (decodeFunc, error) {
	switch mode {
	case "", config.InvalidUTF8Drop:
		return func(data []byte) string {
			return strings.ToValidUTF8(string(data), "")
		}, nil
	case config.InvalidUTF8Replace:
		return func(data []byte) string {
			out, _, err := transform.Bytes(runes.ReplaceIllFormed(), data)
			if err != nil {
				return strings.ToValidUTF8(string(data), "\uFFFD")
			}
			return string(out)
		}, nil
	default:
		return nil, fmt.Errorf("unsupported invalid UTF-8 mode %q", mode)
	}
}
