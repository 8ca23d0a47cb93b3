package dictionary

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents the dataset file formats the loaders understand
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatCSV                // raw id,clue,answer rows
	FormatJSON               // word list artifact
)

// FormatInfo contains metadata about a dataset file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatCSV: {
		Format:      FormatCSV,
		Description: "Clue CSV",
		Extensions:  []string{".csv"},
		MinSize:     1,
	},
	FormatJSON: {
		Format:      FormatJSON,
		Description: "Word List JSON",
		Extensions:  []string{".json"},
		MinSize:     2, // []
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("%s is a directory", filename)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("unknown format: %v", expectedFormat)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	validExt := false
	for _, validExtension := range formatInfo.Extensions {
		if ext == validExtension {
			validExt = true
			break
		}
	}
	if !validExt {
		return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
			filename, ext, formatInfo.Description, formatInfo.Extensions)
	}

	if expectedFormat == FormatJSON {
		return validateJSONFormat(filename)
	}
	return nil
}

// validateJSONFormat checks the artifact starts with an array
func validateJSONFormat(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	r := bufio.NewReader(file)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return fmt.Errorf("failed to read from %s: %w", filename, err)
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '[':
			log.Debugf("Word list %s validated", filename)
			return nil
		default:
			return fmt.Errorf("file %s is not a word list: starts with %q", filename, b)
		}
	}
}

// DetectFileFormat works out the format of a dataset file from its extension
// and validates it.
func DetectFileFormat(filename string) (FileFormat, error) {
	var format FileFormat
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		format = FormatCSV
	case ".json":
		format = FormatJSON
	default:
		return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
	}
	if err := ValidateFileFormat(filename, format); err != nil {
		return FormatUnknown, err
	}
	return format, nil
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}
