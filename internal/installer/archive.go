package installer

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDownloadURL is the Graphviz release archive for Windows.
const DefaultDownloadURL = "https://gitlab.com/api/v4/projects/4207231/packages/generic/graphviz-releases/9.0.0/windows_10_msbuild_Release_graphviz-9.0.0-win32.zip"

// Archive downloads and extracts a Graphviz release archive.
type Archive struct {
	opts Options
}

// Name implements Installer.
func (a *Archive) Name() string { return "archive" }

// BinDir is the directory holding the extracted dot executable.
func (a *Archive) BinDir() string {
	return filepath.Join(a.opts.BaseDir, "Graphviz", "bin")
}

func (a *Archive) bundledDot() string {
	return filepath.Join(a.BinDir(), "dot.exe")
}

// Install downloads the archive into BaseDir, extracts it and checks the bundled dot.
func (a *Archive) Install(ctx context.Context) error {
	if probe(ctx, a.opts, "dot") || probe(ctx, a.opts, a.bundledDot()) {
		return ErrAlreadyInstalled
	}

	if err := os.MkdirAll(a.opts.BaseDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", a.opts.BaseDir, err)
	}

	archivePath := filepath.Join(a.opts.BaseDir, "Graphviz.zip")
	if err := a.download(ctx, archivePath); err != nil {
		return fmt.Errorf("could not download Graphviz archive: %w", err)
	}
	defer os.Remove(archivePath)

	if err := extract(archivePath, a.opts.BaseDir); err != nil {
		return fmt.Errorf("could not extract Graphviz archive: %w", err)
	}
	a.opts.Logger.Info("Graphviz extracted", "dir", a.opts.BaseDir)

	if !probe(ctx, a.opts, a.bundledDot()) {
		return fmt.Errorf("graphviz was extracted to %s but dot does not run", a.BinDir())
	}
	return nil
}

func (a *Archive) download(ctx context.Context, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.opts.DownloadURL, nil)
	if err != nil {
		return err
	}
	resp, err := a.opts.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request to %s returned status code %d", a.opts.DownloadURL, resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	n, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	a.opts.Logger.Info("Graphviz downloaded", "url", a.opts.DownloadURL, "bytes", n)
	return nil
}

// extract unpacks the zip at src into dir, refusing entries that escape dir.
func extract(src, dir string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	root, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	for _, f := range r.File {
		target := filepath.Join(root, filepath.FromSlash(f.Name))
		if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry %q escapes %s", f.Name, dir)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o755)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
