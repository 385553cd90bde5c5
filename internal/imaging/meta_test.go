package imaging

import (
	"testing"

	"github.com/bep/imagemeta"
)

func TestHandleMetadataTagPrecedence(t *testing.T) {
	var meta Metadata

	handleMetadataTag(&meta, imagemeta.TagInfo{Source: imagemeta.IPTC, Tag: "Byline", Value: "Agency Desk"})
	handleMetadataTag(&meta, imagemeta.TagInfo{Source: imagemeta.EXIF, Tag: "Artist", Value: "Ian McQue"})
	handleMetadataTag(&meta, imagemeta.TagInfo{Source: imagemeta.EXIF, Tag: "DateTime", Value: "2024:01:02 10:00:00"})
	handleMetadataTag(&meta, imagemeta.TagInfo{Source: imagemeta.EXIF, Tag: "DateTimeOriginal", Value: "2023:12:31 09:00:00"})
	handleMetadataTag(&meta, imagemeta.TagInfo{Source: imagemeta.IPTC, Tag: "CopyrightNotice", Value: "(c) 2023"})
	handleMetadataTag(&meta, imagemeta.TagInfo{Source: imagemeta.EXIF, Tag: "Software", Value: "darktable"})

	if meta.Artist != "Ian McQue" {
		t.Fatalf("Artist = %q, want EXIF value to win", meta.Artist)
	}
	if meta.Created != "2023:12:31 09:00:00" {
		t.Fatalf("Created = %q, want DateTimeOriginal to win", meta.Created)
	}
	if meta.Copyright != "(c) 2023" {
		t.Fatalf("Copyright = %q", meta.Copyright)
	}
	if meta.Software != "darktable" {
		t.Fatalf("Software = %q", meta.Software)
	}
	if meta.Empty() {
		t.Fatal("metadata with fields should not be empty")
	}
}

func TestHandleMetadataTagKeepsExistingArtist(t *testing.T) {
	var meta Metadata
	handleMetadataTag(&meta, imagemeta.TagInfo{Source: imagemeta.EXIF, Tag: "Artist", Value: "Sparth"})
	handleMetadataTag(&meta, imagemeta.TagInfo{Source: imagemeta.IPTC, Tag: "Byline", Value: "Agency Desk"})

	if meta.Artist != "Sparth" {
		t.Fatalf("Artist = %q, IPTC must not override EXIF", meta.Artist)
	}
}

func TestTagValueString(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "hello", "hello"},
		{"string slice", []string{"first", "second"}, "first"},
		{"empty string slice", []string{}, ""},
		{"any slice", []any{"first", 2}, "first"},
		{"any slice non-string head", []any{42}, ""},
		{"unsupported", 3.14, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tagValueString(tc.value); got != tc.want {
				t.Fatalf("tagValueString(%v) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestMetadataEmpty(t *testing.T) {
	if !(Metadata{}).Empty() {
		t.Fatal("zero metadata should report empty")
	}
	if (Metadata{Software: "gimp"}).Empty() {
		t.Fatal("populated metadata should not report empty")
	}
}
