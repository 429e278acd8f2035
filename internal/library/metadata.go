package library

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/aohmcareer/ArtReferenceAPI/internal/logging"
	"github.com/aohmcareer/ArtReferenceAPI/internal/metrics"

	"gopkg.in/yaml.v3"
)

// TagFileSuffix marks a folder's sidecar metadata file. Any immediate child
// whose name ends in this suffix (case-insensitive) is a candidate; when
// several match, the first in directory enumeration order wins. os.ReadDir
// returns entries sorted by name, so the tie-break is lexicographic and
// deterministic.
const TagFileSuffix = "tags.yaml"

// ReadFolderTags locates and parses the tag metadata file directly inside
// folderPath. The file holds a flat YAML sequence of tag strings (a JSON
// array parses too). A missing or malformed file degrades the folder to
// untagged: the result is nil and no error is ever returned.
func ReadFolderTags(folderPath string) []string {
	entries, err := os.ReadDir(folderPath)
	if err != nil {
		logging.Warn("Failed to read folder %s for metadata: %v", folderPath, err)
		metrics.ScannerMetadataFailures.Inc()
		return nil
	}

	var tagFile string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), TagFileSuffix) {
			tagFile = filepath.Join(folderPath, entry.Name())
			break
		}
	}

	if tagFile == "" {
		return nil
	}

	data, err := os.ReadFile(tagFile)
	if err != nil {
		logging.Warn("Failed to read tag file %s: %v", tagFile, err)
		metrics.ScannerMetadataFailures.Inc()
		return nil
	}

	var raw []string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		logging.Warn("Malformed tag file %s, treating folder as untagged: %v", tagFile, err)
		metrics.ScannerMetadataFailures.Inc()
		return nil
	}

	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}

	if len(tags) == 0 {
		return nil
	}
	return tags
}
