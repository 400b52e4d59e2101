package e621

import "fmt"

// staticHost serves reconstructed media URLs.
const staticHost = "https://static1.e621.net"

// ConstructURLFromMD5 rebuilds the canonical static URL of a media file from
// its content hash. The layout is
// https://static1.e621.net/data[/preview]/{md5[0:2]}/{md5[2:4]}/{md5}.{ext};
// ext defaults to "png" when empty. Pure string assembly, no I/O.
func ConstructURLFromMD5(md5, ext string, preview bool) string {
	if ext == "" {
		ext = "png"
	}
	dir := "/data"
	if preview {
		dir = "/data/preview"
	}
	return fmt.Sprintf("%s%s/%s/%s/%s.%s", staticHost, dir, md5[0:2], md5[2:4], md5, ext)
}

// FixPostURLs returns a copy of p in which every nil media URL has been
// replaced by a URL reconstructed from the post's own md5 and extension.
// Previews are re-encoded server-side, so their URL rebuilds as .png under
// the /preview segment. Idempotent: a post whose URLs are already set comes
// back unchanged.
func FixPostURLs(p Post) Post {
	if p.File.URL == nil {
		u := ConstructURLFromMD5(p.File.MD5, p.File.Ext, false)
		p.File.URL = &u
	}
	if p.Preview.URL == nil {
		u := ConstructURLFromMD5(p.File.MD5, "png", true)
		p.Preview.URL = &u
	}
	if p.Sample.URL == nil {
		u := ConstructURLFromMD5(p.File.MD5, p.File.Ext, false)
		p.Sample.URL = &u
	}
	return p
}
