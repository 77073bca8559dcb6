package urbandash

import (
	"errors"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/h2non/filetype"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/urbandash/planner"
)

// sniffLen is how many bytes filetype needs to recognise any image format.
const sniffLen = 261

// cleanAssetPath normalizes the wildcard of /assets/* to a manifest path.
// escaped is true when the router matched on the raw path, so raw still
// needs decoding. It returns "" for anything that could leave the asset root.
func cleanAssetPath(raw string, escaped bool) string {
	if escaped {
		p, err := url.PathUnescape(raw)
		if err != nil {
			return ""
		}
		raw = p
	}
	if raw == "" || strings.Contains(raw, `\`) || strings.HasPrefix(raw, "/") {
		return ""
	}
	clean := path.Clean(raw)
	if clean != raw || clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return ""
	}
	return clean
}

// handleAsset serves a chart registered in the manifest. ?w=N returns a PNG
// preview of a static image instead of the original bytes.
func (a *App) handleAsset(c echo.Context) error {
	rel := cleanAssetPath(c.Param("*"), c.Request().URL.RawPath != "")
	if rel == "" || !a.Manifest.Has(rel) {
		return echo.ErrNotFound
	}
	full := filepath.Join(a.Planner.Root(), filepath.FromSlash(rel))

	if w := c.QueryParam("w"); w != "" && planner.KindOf(rel) == planner.Image {
		width, err := strconv.Atoi(w)
		if err != nil || width < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid width")
		}
		return a.serveThumbnail(c, full, width)
	}

	f, err := os.Open(full)
	if err != nil {
		return assetError(err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return assetError(err)
	}
	if !info.Mode().IsRegular() {
		return echo.ErrNotFound
	}

	ctype, err := sniffContentType(f, rel)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, ctype)
	http.ServeContent(c.Response(), c.Request(), info.Name(), info.ModTime(), f)
	return nil
}

func (a *App) serveThumbnail(c echo.Context, full string, width int) error {
	if !a.thumbLimiter.Allow(c.RealIP()) {
		return echo.ErrTooManyRequests
	}
	data, err := a.Thumbs.Get(full, width)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return echo.ErrNotFound
		}
		a.Logger.Warn("thumbnail failed", zap.String("path", full), zap.Error(err))
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "cannot preview asset").SetInternal(err)
	}
	return c.Blob(http.StatusOK, "image/png", data)
}

// sniffContentType detects the MIME type from the file header, falling back
// to the extension. f is rewound before returning.
func sniffContentType(f io.ReadSeeker, name string) (string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	if kind, err := filetype.Match(head[:n]); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value, nil
	}
	if ctype := mime.TypeByExtension(path.Ext(name)); ctype != "" {
		return ctype, nil
	}
	return echo.MIMEOctetStream, nil
}

func assetError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return echo.ErrNotFound
	}
	return err
}
