package filename

import (
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain", raw: "test.pdf", want: "test.pdf"},
		{name: "accents stripped", raw: "résumé.pdf", want: "resume.pdf"},
		{name: "ligature decomposed", raw: "ﬁle.txt", want: "file.txt"},
		{name: "whitespace to underscore", raw: "my file (1).txt", want: "my_file_1.txt"},
		{name: "path traversal", raw: "../../etc/passwd", want: "etc_passwd"},
		{name: "windows path", raw: `C:\Users\x\report.pdf`, want: "C_Users_x_report.pdf"},
		{name: "only unrepresentable", raw: "日本語", want: Fallback},
		{name: "emoji only", raw: "🙂🙂", want: Fallback},
		{name: "empty", raw: "", want: Fallback},
		{name: "bare dot", raw: ".", want: Fallback},
		{name: "bare separator", raw: "/", want: Fallback},
		{name: "hidden file", raw: ".env", want: "env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.raw))
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ext  string
		want string
	}{
		{name: "plain", raw: "test.pdf", ext: "pdf", want: "test.pdf"},
		{name: "extension lower-cased", raw: "Résumé Final.DOCX", ext: "docx", want: "Resume_Final.docx"},
		{name: "unicode stem", raw: "日本.pdf", ext: "pdf", want: "document.pdf"},
		{name: "extension only", raw: ".pdf", ext: "pdf", want: "document.pdf"},
		{name: "dot stem", raw: "..txt", ext: "txt", want: "document.txt"},
		{name: "multi dot", raw: "report.tar.gz", ext: "gz", want: "report.tar.gz"},
		{name: "no extension", raw: "notes", ext: "", want: "notes"},
		{name: "no extension unrepresentable", raw: "日本", ext: "", want: Fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.raw, tt.ext))
		})
	}
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "pdf", Extension("a.PDF"))
	assert.Equal(t, "gz", Extension("a.tar.gz"))
	assert.Equal(t, "", Extension("README"))
	assert.Equal(t, "", Extension("trailing."))
	assert.Equal(t, "txt", Extension("日本.txt"))
}

var storageNameRe = regexp.MustCompile(`^[0-9a-f]{32}(\.[a-z0-9]+)?$`)

func TestStorageName(t *testing.T) {
	t.Run("keeps lower-cased extension", func(t *testing.T) {
		name := StorageName("Report.PDF")
		assert.Regexp(t, `^[0-9a-f]{32}\.pdf$`, name)
	})

	t.Run("no extension has no trailing dot", func(t *testing.T) {
		name := StorageName("README")
		assert.Regexp(t, `^[0-9a-f]{32}$`, name)
	})

	t.Run("unsafe extension characters dropped", func(t *testing.T) {
		name := StorageName("x.p/d\\f")
		assert.Regexp(t, storageNameRe, name)
	})

	t.Run("unicode name", func(t *testing.T) {
		assert.Regexp(t, `^[0-9a-f]{32}\.txt$`, StorageName("日本.txt"))
	})
}

func TestStorageName_UniqueUnderConcurrency(t *testing.T) {
	const n = 200
	names := make([]string, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			names[i] = StorageName("same.pdf")
		}(i)
	}
	wg.Wait()

	seen := make(map[string]struct{}, n)
	for _, name := range names {
		require.Regexp(t, storageNameRe, name)
		seen[name] = struct{}{}
	}
	assert.Len(t, seen, n)
}
