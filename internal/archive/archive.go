package archive

import (
	"archive/zip"
	"bytes"
	"io"

	"napi/internal/services"
)

// maxSubtitleSize caps how much a single archive member may inflate to.
// Subtitle files are tiny; anything near this limit is not a subtitle.
const maxSubtitleSize = 16 << 20

// ExtractFirst opens an in-memory ZIP archive and returns the contents of its
// first file member. NAPISY24 ships exactly one subtitle per archive.
func ExtractFirst(data []byte) ([]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, services.Wrap(services.ErrExtraction, "archive", "open zip", "", err)
	}
	for _, member := range reader.File {
		if member.FileInfo().IsDir() {
			continue
		}
		file, err := member.Open()
		if err != nil {
			return nil, services.Wrap(services.ErrExtraction, "archive", "open member", member.Name, err)
		}
		content, err := io.ReadAll(io.LimitReader(file, maxSubtitleSize+1))
		file.Close()
		if err != nil {
			return nil, services.Wrap(services.ErrExtraction, "archive", "read member", member.Name, err)
		}
		if len(content) > maxSubtitleSize {
			return nil, services.Wrap(services.ErrExtraction, "archive", "read member", member.Name+": member exceeds size limit", nil)
		}
		if len(content) == 0 {
			return nil, services.Wrap(services.ErrExtraction, "archive", "read member", member.Name+": empty subtitle", nil)
		}
		return content, nil
	}
	return nil, services.Wrap(services.ErrExtraction, "archive", "open zip", "archive has no file members", nil)
}
