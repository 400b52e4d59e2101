package e621

import (
	"reflect"
	"strings"
	"testing"
)

func TestConstructURLFromMD5(t *testing.T) {
	cases := []struct {
		md5     string
		ext     string
		preview bool
		want    string
	}{
		{
			md5:  "aabbccddeeff00112233445566778899",
			ext:  "png",
			want: "https://static1.e621.net/data/aa/bb/aabbccddeeff00112233445566778899.png",
		},
		{
			md5:  "0123456789abcdef0123456789abcdef",
			ext:  "webm",
			want: "https://static1.e621.net/data/01/23/0123456789abcdef0123456789abcdef.webm",
		},
		{
			// empty ext defaults to png
			md5:  "ffeeddccbbaa99887766554433221100",
			want: "https://static1.e621.net/data/ff/ee/ffeeddccbbaa99887766554433221100.png",
		},
		{
			md5:     "aabbccddeeff00112233445566778899",
			ext:     "jpg",
			preview: true,
			want:    "https://static1.e621.net/data/preview/aa/bb/aabbccddeeff00112233445566778899.jpg",
		},
	}
	for _, tc := range cases {
		got := ConstructURLFromMD5(tc.md5, tc.ext, tc.preview)
		if got != tc.want {
			t.Errorf("ConstructURLFromMD5(%q, %q, %v) = %q, want %q", tc.md5, tc.ext, tc.preview, got, tc.want)
		}
	}
}

func TestConstructURLFromMD5PreviewSegmentPlacement(t *testing.T) {
	u := ConstructURLFromMD5("aabbccddeeff00112233445566778899", "png", true)
	if !strings.HasPrefix(u, "https://static1.e621.net/data/preview/") {
		t.Fatalf("preview URL missing /preview after /data: %q", u)
	}
	if strings.Count(u, "/preview") != 1 {
		t.Fatalf("expected exactly one /preview segment in %q", u)
	}
}

func TestFixPostURLsFillsNilURLs(t *testing.T) {
	p := Post{
		File: File{MD5: "aabbccddeeff00112233445566778899", Ext: "gif"},
	}
	fixed := FixPostURLs(p)

	if fixed.File.URL == nil || fixed.Preview.URL == nil || fixed.Sample.URL == nil {
		t.Fatalf("expected every URL to be non-nil after fixing: %+v", fixed)
	}
	if want := ConstructURLFromMD5(p.File.MD5, "gif", false); *fixed.File.URL != want {
		t.Errorf("file URL = %q, want %q", *fixed.File.URL, want)
	}
	if want := ConstructURLFromMD5(p.File.MD5, "png", true); *fixed.Preview.URL != want {
		t.Errorf("preview URL = %q, want %q", *fixed.Preview.URL, want)
	}
	if want := ConstructURLFromMD5(p.File.MD5, "gif", false); *fixed.Sample.URL != want {
		t.Errorf("sample URL = %q, want %q", *fixed.Sample.URL, want)
	}
}

func TestFixPostURLsIdempotent(t *testing.T) {
	fileURL := "https://static1.e621.net/data/aa/bb/aabbccddeeff00112233445566778899.gif"
	previewURL := "https://static1.e621.net/data/preview/aa/bb/aabbccddeeff00112233445566778899.png"
	p := Post{
		File:    File{MD5: "aabbccddeeff00112233445566778899", Ext: "gif", URL: &fileURL},
		Preview: Preview{URL: &previewURL},
		Sample:  Sample{URL: &fileURL},
	}

	once := FixPostURLs(p)
	if !reflect.DeepEqual(once, p) {
		t.Fatalf("fixing an already-fixed post changed it:\n got %+v\nwant %+v", once, p)
	}

	nilURLs := Post{File: File{MD5: "aabbccddeeff00112233445566778899", Ext: "gif"}}
	twice := FixPostURLs(FixPostURLs(nilURLs))
	if !reflect.DeepEqual(twice, FixPostURLs(nilURLs)) {
		t.Fatalf("double application diverged from single application")
	}
}
