package urbandash

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// writePNG writes a w×h opaque PNG to dir/name.
func writePNG(t testing.TB, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// newTestApp builds an initialized App over a temporary asset root holding
// the given PNG files.
func newTestApp(t testing.TB, mutate func(*Config), present ...string) *App {
	t.Helper()
	root := t.TempDir()
	for _, name := range present {
		writePNG(t, root, name, 200, 100)
	}
	cfg := Config{
		AssetRoot:     root,
		SessionSecret: testSecret,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	app := New(cfg, WithLogger(zap.NewNop()))
	require.NoError(t, app.Init())
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func serve(app *App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)
	return rec
}

func get(app *App, target string) *httptest.ResponseRecorder {
	return serve(app, httptest.NewRequest(http.MethodGet, target, nil))
}

func parseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	require.NoError(t, err, "parse html")
	return doc
}
