package deploy

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// fakeS3 records PutObject calls.
type fakeS3 struct {
	objects map[string]string
	fail    bool
}

func (f *fakeS3) PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.fail {
		return nil, fmt.Errorf("access denied")
	}
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	if f.objects == nil {
		f.objects = make(map[string]string)
	}
	f.objects[*input.Key] = string(body)
	return &s3.PutObjectOutput{}, nil
}

func writeExport(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"index.html":       "<html>root</html>",
		"about/index.html": "<html>about</html>",
		"about/page.css":   "h1{}",
		"sitemap.txt":      "urls",
	}
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestUpload(t *testing.T) {
	dir := writeExport(t)
	fake := &fakeS3{}

	var uploaded []string
	u := New(fake, Options{
		Bucket:   "my-bucket",
		OnUpload: func(key string) { uploaded = append(uploaded, key) },
	})

	n, err := u.Upload(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Errorf("Upload = %d, want 4", n)
	}

	sort.Strings(uploaded)
	want := []string{"about/index.html", "about/page.css", "index.html", "sitemap.txt"}
	for i, k := range want {
		if uploaded[i] != k {
			t.Errorf("uploaded[%d] = %q, want %q", i, uploaded[i], k)
		}
	}
	if fake.objects["about/index.html"] != "<html>about</html>" {
		t.Errorf("object body = %q", fake.objects["about/index.html"])
	}
}

func TestUploadPrefix(t *testing.T) {
	dir := writeExport(t)
	fake := &fakeS3{}

	u := New(fake, Options{Bucket: "b", Prefix: "/site/"})
	if _, err := u.Upload(context.Background(), dir); err != nil {
		t.Fatal(err)
	}
	if _, ok := fake.objects["site/index.html"]; !ok {
		t.Errorf("prefixed key missing, got %v", keys(fake.objects))
	}
}

func TestUploadNoBucket(t *testing.T) {
	u := New(&fakeS3{}, Options{})
	if _, err := u.Upload(context.Background(), t.TempDir()); err == nil {
		t.Error("missing bucket must error")
	}
}

func TestUploadFailure(t *testing.T) {
	dir := writeExport(t)
	u := New(&fakeS3{fail: true}, Options{Bucket: "b"})
	if _, err := u.Upload(context.Background(), dir); err == nil {
		t.Error("put failure must surface")
	}
}

func TestContentType(t *testing.T) {
	// The mime package may merge system tables, so match on the base type.
	tests := []struct {
		path string
		want string
	}{
		{"index.html", "text/html"},
		{"style.css", "text/css"},
		{"unknown.zzz", "application/octet-stream"},
	}
	for _, tt := range tests {
		if got := contentType(tt.path); !strings.HasPrefix(got, tt.want) {
			t.Errorf("contentType(%q) = %q, want prefix %q", tt.path, got, tt.want)
		}
	}
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
