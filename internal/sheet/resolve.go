package sheet

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/CalKK/campaignmessaging/internal/core"
)

// ForFilename picks a codec by file extension. Unknown or missing
// extensions are tried as XLSX, which fails with a DecodeError if the bytes
// are not a workbook. Legacy binary .xls is rejected outright.
func ForFilename(name string) (core.SpreadsheetCodec, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return CSV{}, nil
	case ".xls":
		return nil, core.NewDecodeError(name, fmt.Errorf("%w: legacy .xls", core.ErrUnsupportedFormat))
	default:
		return XLSX{}, nil
	}
}

// Resolver adapts ForFilename to core.CodecResolver.
var Resolver core.CodecResolver = ForFilename
