package imaging

import (
	"fmt"
	"os"

	"github.com/bep/imagemeta"
)

// Metadata carries the authorship tags surfaced by the inspect command.
// Fields stay empty when the image does not record them.
type Metadata struct {
	Artist    string
	Copyright string
	Software  string
	Created   string
}

// Empty reports whether no metadata fields were found.
func (m Metadata) Empty() bool {
	return m == Metadata{}
}

// metadataTags maps (source, tag-name) to true for every tag ReadMetadata
// extracts.
var metadataTags = map[imagemeta.Source]map[string]bool{
	imagemeta.EXIF: {
		"Artist":           true,
		"Copyright":        true,
		"Software":         true,
		"DateTime":         true,
		"DateTimeOriginal": true,
	},
	imagemeta.IPTC: {
		"Byline":          true,
		"CopyrightNotice": true,
	},
}

// ReadMetadata extracts authorship tags from the image at path. Images
// without any of the wanted tags yield an empty Metadata and no error.
func ReadMetadata(path string) (Metadata, error) {
	file, err := os.Open(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	var meta Metadata
	_, err = imagemeta.Decode(imagemeta.Options{
		R:       file,
		Sources: imagemeta.EXIF | imagemeta.IPTC,
		ShouldHandleTag: func(ti imagemeta.TagInfo) bool {
			if tags, ok := metadataTags[ti.Source]; ok {
				return tags[ti.Tag]
			}
			return false
		},
		HandleTag: func(ti imagemeta.TagInfo) error {
			handleMetadataTag(&meta, ti)
			return nil
		},
	})
	if err != nil {
		return Metadata{}, fmt.Errorf("decode image metadata: %w", err)
	}
	return meta, nil
}

// handleMetadataTag stores one tag value, preferring EXIF fields over their
// IPTC counterparts and DateTimeOriginal over DateTime.
func handleMetadataTag(meta *Metadata, ti imagemeta.TagInfo) {
	value := tagValueString(ti.Value)
	if value == "" {
		return
	}

	switch ti.Source {
	case imagemeta.EXIF:
		switch ti.Tag {
		case "Artist":
			meta.Artist = value
		case "Copyright":
			meta.Copyright = value
		case "Software":
			meta.Software = value
		case "DateTimeOriginal":
			meta.Created = value
		case "DateTime":
			if meta.Created == "" {
				meta.Created = value
			}
		}
	case imagemeta.IPTC:
		switch ti.Tag {
		case "Byline":
			if meta.Artist == "" {
				meta.Artist = value
			}
		case "CopyrightNotice":
			if meta.Copyright == "" {
				meta.Copyright = value
			}
		}
	}
}

// tagValueString extracts a string from a tag value. Values may arrive as
// string, []string, or []any depending on the source.
func tagValueString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []string:
		if len(val) > 0 {
			return val[0]
		}
		return ""
	case []any:
		if len(val) > 0 {
			if s, ok := val[0].(string); ok {
				return s
			}
		}
		return ""
	default:
		return ""
	}
}
